package utils

import (
	"context"

	"ticket-ledger/pkg/address"
)

type contextKey string

const CallerKey contextKey = "caller"

// GetCallerFromContext returns the caller identity placed in the request
// context by the identity middleware.
func GetCallerFromContext(ctx context.Context) (address.Address, bool) {
	callerVal := ctx.Value(CallerKey)
	if callerVal == nil {
		return address.Zero, false
	}

	caller, ok := callerVal.(address.Address)
	if !ok || caller.IsZero() {
		return address.Zero, false
	}

	return caller, true
}

// SetCallerContext stores the caller identity on the context.
func SetCallerContext(ctx context.Context, caller address.Address) context.Context {
	return context.WithValue(ctx, CallerKey, caller)
}
