package types

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes used across command failures so transports can branch without
// string matching messages.
const (
	TextCodeNotAdmin          = "ACTOR_NOT_ADMIN"
	TextCodeNotAuthenticated  = "ACTOR_NOT_AUTHENTICATED"
	TextCodeEmailTaken        = "EMAIL_ALREADY_REGISTERED"
	TextCodeProgramCodeTaken  = "PROGRAM_CODE_ALREADY_USED"
	TextCodeCertNumberTaken   = "CERTIFICATE_NUMBER_ALREADY_USED"
	TextCodeBlockedByChildren = "BLOCKED_BY_DEPENDENT_RECORDS"
)

// Forbidden builds an authorization failure for the given reason.
func Forbidden(msg string) error {
	return goerrors.New(msg, goerrors.CategoryAuthz).
		WithCode(goerrors.CodeForbidden).
		WithTextCode(TextCodeNotAdmin)
}

// NotAuthenticated builds an authorization failure for anonymous actors.
func NotAuthenticated() error {
	return goerrors.New("go-trainops: authentication required", goerrors.CategoryAuthz).
		WithCode(goerrors.CodeForbidden).
		WithTextCode(TextCodeNotAuthenticated)
}

// InvalidInput builds a validation failure naming the violated field.
func InvalidInput(field, msg string) error {
	return goerrors.New(fmt.Sprintf("go-trainops: %s: %s", field, msg), goerrors.CategoryValidation).
		WithCode(goerrors.CodeBadRequest).
		WithTextCode(fmt.Sprintf("INVALID_%s", toScreaming(field)))
}

// Conflict builds a uniqueness or blocked-by-dependency failure.
func Conflict(msg, textCode string) error {
	return goerrors.New(msg, goerrors.CategoryConflict).
		WithCode(goerrors.CodeConflict).
		WithTextCode(textCode)
}

// AuthFailure wraps an identity provider rejection verbatim.
func AuthFailure(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryAuth, "go-trainops: identity provider rejected the operation")
}

// DependencyFailure wraps store or provider outages unrelated to caller input.
func DependencyFailure(err error, subsystem string) error {
	return goerrors.Wrap(err, goerrors.CategoryExternal,
		fmt.Sprintf("go-trainops: %s unavailable", subsystem)).
		WithCode(goerrors.CodeInternal)
}

// IsConflict reports whether err carries the conflict category.
func IsConflict(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.Category == goerrors.CategoryConflict
}

// IsForbidden reports whether err carries the authorization category.
func IsForbidden(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.Category == goerrors.CategoryAuthz
}

func toScreaming(field string) string {
	out := make([]rune, 0, len(field))
	for _, r := range field {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r-('a'-'A'))
		case r == ' ' || r == '-' || r == '.':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
