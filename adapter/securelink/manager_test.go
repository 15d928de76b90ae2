package securelink

import (
	"errors"
	"testing"

	"github.com/goliatone/go-trainops/pkg/types"
)

func TestNewManagerRequiresConfigurator(t *testing.T) {
	if _, err := NewManager(nil); err == nil {
		t.Fatalf("expected missing configurator to be rejected")
	}
}

func TestWrapManagerNilInner(t *testing.T) {
	if WrapManager(nil) != nil {
		t.Fatalf("expected nil inner manager to yield nil adapter")
	}
}

func TestUnconfiguredManagerReturnsSentinel(t *testing.T) {
	var manager *Manager

	if _, err := manager.Generate("invited-signup"); !errors.Is(err, types.ErrMissingSecureLinkManager) {
		t.Fatalf("expected missing manager sentinel, got %v", err)
	}
	if _, err := manager.Validate("token"); !errors.Is(err, types.ErrMissingSecureLinkManager) {
		t.Fatalf("expected missing manager sentinel, got %v", err)
	}
	if _, err := manager.GetAndValidate(func(string) string { return "token" }); !errors.Is(err, types.ErrMissingSecureLinkManager) {
		t.Fatalf("expected missing manager sentinel, got %v", err)
	}
	if got := manager.GetExpiration(); got != 0 {
		t.Fatalf("expected zero expiration, got %v", got)
	}
}
