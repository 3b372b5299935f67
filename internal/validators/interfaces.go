// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides abstractions for input validation and
// enforcement of business rules across the application.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - EmailChecker: lookup used for the early, field-attributed uniqueness
//     check of an email address.
//
// Failures are reported as *ValidationError, which carries one reason per
// offending field and matches ErrValidation.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validators_mock.go -package=mock

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}

// EmailChecker reports whether an account with the given normalized email
// already exists.
type EmailChecker interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
