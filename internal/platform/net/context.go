// Package net carries request scoped identity and the response envelope shared by transports
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	keyOrgID  ctxKey = "org_id"
	keyUserID ctxKey = "user_id"
)

// WithRequest annotates ctx with the request id and the caller's organization
func WithRequest(ctx context.Context, reqID, orgID string) context.Context {
	if reqID != "" {
		// chimw.GetReqID reads this key
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if orgID != "" {
		ctx = context.WithValue(ctx, keyOrgID, orgID)
	}
	return ctx
}

// WithUser annotates ctx with the authenticated user id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// RequestID returns the request id or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// OrgID returns the organization every document access is scoped to, or ""
func OrgID(ctx context.Context) string {
	v, _ := ctx.Value(keyOrgID).(string)
	return v
}

// UserID returns the user id or ""
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(keyUserID).(string)
	return v
}
