// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest carries the fields a client supplies when creating an
// account. Password is plaintext and is discarded once hashed.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,max=50,email"`
	Password string `json:"password" validate:"required,min=7,max=72,nopassword"`
	Age      int    `json:"age" validate:"gte=0"`
}

// Credentials is an (email, plaintext password) pair presented at login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate represents a partial update of the caller's own profile.
// Only non-nil fields are applied.
type ProfileUpdate struct {
	// Name replaces the display name when set.
	Name *string `json:"name,omitempty" validate:"omitnil,min=3,max=20"`

	// Email replaces the address when set. It is normalized and checked for
	// uniqueness like on registration.
	Email *string `json:"email,omitempty" validate:"omitnil,max=50,email"`

	// Age replaces the age when set.
	Age *int `json:"age,omitempty" validate:"omitnil,gte=0"`

	// Password is a new plaintext password. The stored hash is recomputed
	// only when this field is present.
	Password *string `json:"password,omitempty" validate:"omitnil,min=7,max=72,nopassword"`
}

// IsEmpty reports whether the update carries no fields at all.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Age == nil && p.Password == nil
}

// UserTypeChange is the body of the moderation endpoint.
type UserTypeChange struct {
	UserType UserType `json:"user_type" validate:"usertype"`
}
