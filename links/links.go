// Package links builds the public URLs the workflows hand out: invited-signup
// links carrying the invitee email plus invitation token, and QR profile
// links resolving a person's public profile page.
package links

import (
	"net/url"
	"os"
	"strings"
)

const (
	// EnvBaseURL overrides the configured site base URL.
	EnvBaseURL = "TRAINOPS_BASE_URL"

	defaultBaseURL = "http://localhost:3000"

	signupPath    = "/auth/invited-signup"
	qrProfilePath = "/personnel-profile/"
)

// Config controls link construction.
type Config struct {
	// BaseURL is the site base, e.g. https://training.example.me. Falls back
	// to TRAINOPS_BASE_URL, then a local placeholder.
	BaseURL string
}

// Builder renders the two link formats from a configured base URL.
type Builder struct {
	base string
}

// NewBuilder constructs a Builder, applying environment and default
// fallbacks for the base URL.
func NewBuilder(cfg Config) *Builder {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = strings.TrimSpace(os.Getenv(EnvBaseURL))
	}
	if base == "" {
		base = defaultBaseURL
	}
	return &Builder{base: strings.TrimRight(base, "/")}
}

// SignupLink renders <base>/auth/invited-signup?email=<email>&token=<token>.
func (b *Builder) SignupLink(email, token string) string {
	q := url.Values{}
	q.Set("email", email)
	q.Set("token", token)
	return b.base + signupPath + "?" + q.Encode()
}

// QrProfileLink renders <base>/personnel-profile/<token>.
func (b *Builder) QrProfileLink(token string) string {
	return b.base + qrProfilePath + url.PathEscape(token)
}

// BaseURL exposes the resolved base for hosts that render their own routes.
func (b *Builder) BaseURL() string {
	return b.base
}
