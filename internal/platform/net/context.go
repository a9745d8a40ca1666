// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyUserID   ctxKey = "user_id"
	keyUserTier ctxKey = "user_tier"
)

// WithRequest annotates context with the request id so chimw.GetReqID can retrieve it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithUser annotates context with the caller identity from the session provider
// tier is the raw tier string; parsing to the access.Tier enum happens in core
func WithUser(ctx context.Context, userID, tier string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	if tier != "" {
		ctx = context.WithValue(ctx, keyUserTier, tier)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// UserID returns the user id on the context if present
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserID).(string); ok {
		return v
	}
	return ""
}

// UserTier returns the raw tier string on the context if present
func UserTier(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserTier).(string); ok {
		return v
	}
	return ""
}
