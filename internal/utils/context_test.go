// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestCtxKeyNames(t *testing.T) {
	if UserIDCtxKey.String() != "userID" {
		t.Errorf("expected 'userID', got '%s'", UserIDCtxKey.String())
	}
	if TokenCtxKey.String() != "token" {
		t.Errorf("expected 'token', got '%s'", TokenCtxKey.String())
	}
}

func TestWithAuth(t *testing.T) {
	ctx := WithAuth(context.Background(), "user-1", "tok-1")

	userID, ok := GetUserIDFromContext(ctx)
	if !ok || userID != "user-1" {
		t.Fatalf("expected user-1/true, got %q/%v", userID, ok)
	}

	token, ok := GetTokenFromContext(ctx)
	if !ok || token != "tok-1" {
		t.Fatalf("expected tok-1/true, got %q/%v", token, ok)
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	userID, ok := GetUserIDFromContext(context.Background())

	if ok {
		t.Error("expected ok=false for missing value")
	}
	if userID != "" {
		t.Errorf("expected empty userID, got %q", userID)
	}
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, int64(42))

	if _, ok := GetUserIDFromContext(ctx); ok {
		t.Error("expected ok=false for non-string value")
	}
}

func TestGetUserIDFromContext_Empty(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, "")

	if _, ok := GetUserIDFromContext(ctx); ok {
		t.Error("expected ok=false for empty user ID")
	}
}

func TestGetUserIDFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), "user-1")

	if _, ok := GetUserIDFromContext(ctx); ok {
		t.Error("expected ok=false when value is stored under a different key")
	}
}

func TestGetTokenFromContext_Missing(t *testing.T) {
	if _, ok := GetTokenFromContext(context.Background()); ok {
		t.Error("expected ok=false for missing token")
	}
}
