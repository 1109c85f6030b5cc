package replica

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for replica events.
var (
	SignalCloneStart     = capitan.NewSignal("replica.clone.start", "Clone operation beginning")
	SignalCloneComplete  = capitan.NewSignal("replica.clone.complete", "Clone operation finished")
	SignalFutureSettled  = capitan.NewSignal("replica.future.settled", "Cloned future settled from its source")
	SignalInviteStart    = capitan.NewSignal("replica.invite.start", "Invite candidate search beginning")
	SignalInviteComplete = capitan.NewSignal("replica.invite.complete", "Invite candidate search finished")
)

// Keys for typed event data.
var (
	KeyOperation  = capitan.NewStringKey("operation")
	KeyCloner     = capitan.NewStringKey("cloner")
	KeyKind       = capitan.NewStringKey("kind")
	KeyTypeName   = capitan.NewStringKey("type_name")
	KeyNodes      = capitan.NewIntKey("nodes")
	KeyOutcome    = capitan.NewStringKey("outcome")
	KeySource     = capitan.NewStringKey("source")
	KeyOffices    = capitan.NewIntKey("offices")
	KeyCandidates = capitan.NewIntKey("candidates")
	KeyCode       = capitan.NewStringKey("code")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

// emitCloneStart emits an event when a clone begins.
func emitCloneStart(ctx context.Context, op, cloner string, kind Kind, typeName string) {
	capitan.Emit(ctx, SignalCloneStart,
		KeyOperation.Field(op),
		KeyCloner.Field(cloner),
		KeyKind.Field(kind.String()),
		KeyTypeName.Field(typeName),
	)
}

// emitCloneComplete emits an event when a clone finishes.
func emitCloneComplete(ctx context.Context, op, cloner string, kind Kind, typeName string, nodes int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyOperation.Field(op),
		KeyCloner.Field(cloner),
		KeyKind.Field(kind.String()),
		KeyTypeName.Field(typeName),
		KeyNodes.Field(nodes),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		if code, ok := CodeOf(err); ok {
			fields = append(fields, KeyCode.Field(code))
		}
		capitan.Error(ctx, SignalCloneComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalCloneComplete, fields...)
	}
}

// emitFutureSettled emits an event when a cloned future settles.
func emitFutureSettled(ctx context.Context, op string, outcome FutureState, err error) {
	fields := []capitan.Field{
		KeyOperation.Field(op),
		KeyOutcome.Field(outcome.String()),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalFutureSettled, fields...)
	} else {
		capitan.Emit(ctx, SignalFutureSettled, fields...)
	}
}

// EmitInviteStart emits an event when an invite search begins.
func EmitInviteStart(ctx context.Context, source string) {
	capitan.Emit(ctx, SignalInviteStart,
		KeySource.Field(source),
	)
}

// EmitInviteComplete emits an event when an invite search finishes.
func EmitInviteComplete(ctx context.Context, source string, offices, candidates int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeySource.Field(source),
		KeyOffices.Field(offices),
		KeyCandidates.Field(candidates),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		if code, ok := CodeOf(err); ok {
			fields = append(fields, KeyCode.Field(code))
		}
		capitan.Error(ctx, SignalInviteComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalInviteComplete, fields...)
	}
}
