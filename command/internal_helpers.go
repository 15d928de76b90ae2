package command

import (
	"context"
	"time"

	"github.com/goliatone/go-trainops/guard"
	"github.com/goliatone/go-trainops/pkg/types"
)

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func safeHooks(hooks types.Hooks) types.Hooks {
	return hooks
}

func safeAuditSink(sink types.AuditSink) types.AuditSink {
	return sink
}

func safeGuard(g guard.Guard) guard.Guard {
	return guard.Ensure(g)
}

func safeIDGen(idGen types.IDGenerator) types.IDGenerator {
	if idGen != nil {
		return idGen
	}
	return types.UUIDGenerator{}
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

func logAudit(ctx context.Context, sink types.AuditSink, record types.AuditRecord) {
	if sink == nil {
		return
	}
	_ = sink.Log(ctx, record)
}

func emitAuditHook(ctx context.Context, hooks types.Hooks, record types.AuditRecord) {
	if hooks.AfterAudit == nil {
		return
	}
	hooks.AfterAudit(ctx, record)
}

func emitOnboardHook(ctx context.Context, hooks types.Hooks, event types.PersonEvent) {
	if hooks.AfterOnboard == nil {
		return
	}
	hooks.AfterOnboard(ctx, event)
}

func emitSignupLinkHook(ctx context.Context, hooks types.Hooks, event types.PersonEvent) {
	if hooks.AfterSignupLink == nil {
		return
	}
	hooks.AfterSignupLink(ctx, event)
}

func emitQrRotationHook(ctx context.Context, hooks types.Hooks, event types.PersonEvent) {
	if hooks.AfterQrRotation == nil {
		return
	}
	hooks.AfterQrRotation(ctx, event)
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
