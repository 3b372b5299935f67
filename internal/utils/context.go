// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and ID generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user's ID in the
// context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, "0190c3e4-...")
var UserIDCtxKey = contextKey("userID")

// TokenCtxKey is the key used to store the raw session token the request
// was authenticated with. Logout revokes exactly this token.
var TokenCtxKey = contextKey("token")

// WithAuth returns a copy of ctx carrying the authenticated user ID and the
// token that proved it.
func WithAuth(ctx context.Context, userID, token string) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, TokenCtxKey, token)
}

// GetUserIDFromContext retrieves the user identifier from the context.
//
// ok is false when the value is missing, empty or of an unexpected type.
//
// Example usage:
//
//	userID, ok := utils.GetUserIDFromContext(ctx)
//	if !ok {
//	    // handle missing user in context
//	}
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// GetTokenFromContext retrieves the raw session token from the context.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenCtxKey).(string)
	return token, ok && token != ""
}
