// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AuthResponse is returned by registration and login. The token is also
// sent in the Authorization header.
type AuthResponse struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}

// ErrorResponse is the JSON error body. Fields is set only for validation
// failures and maps a field name to the reason it was rejected.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// VersionResponse describes the running server build.
type VersionResponse struct {
	Version     string `json:"version"`
	BuildDate   string `json:"build_date"`
	BuildCommit string `json:"build_commit"`
}
