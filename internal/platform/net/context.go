// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keyClientKey ctxKey = "client_key"
	keyAdmin     ctxKey = "admin"
)

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, clientKey string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if clientKey != "" {
		ctx = context.WithValue(ctx, keyClientKey, clientKey)
	}
	return ctx
}

// WithAdmin marks the context as carrying a valid admin session
func WithAdmin(ctx context.Context, username string) context.Context {
	if username != "" {
		ctx = context.WithValue(ctx, keyAdmin, username)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// ClientKey returns the submitting client's key on the context if present
func ClientKey(ctx context.Context) string {
	if v, ok := ctx.Value(keyClientKey).(string); ok {
		return v
	}
	return ""
}

// AdminUser returns the authenticated admin username on the context if present
func AdminUser(ctx context.Context) string {
	if v, ok := ctx.Value(keyAdmin).(string); ok {
		return v
	}
	return ""
}
