// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"strings"
	"time"
)

// DefaultAvatarURL is assigned to every newly registered account until the
// user uploads an avatar of their own.
const DefaultAvatarURL = "https://t3.ftcdn.net/jpg/05/87/76/66/360_F_587766653_PkBNyGx7mQh9l1XXPtCAq1lBgOsLl6xH.jpg"

// UserType classifies the standing of an account. Transitions between the
// values are owned by moderation; the identity core only stores the value.
type UserType string

const (
	UserTypeUser           UserType = "user"
	UserTypeAuthor         UserType = "author"
	UserTypeRejectedUser   UserType = "rejectedUser"
	UserTypeRejectedAuthor UserType = "rejectedAuthor"
)

// UserTypes lists every valid [UserType] value.
var UserTypes = []UserType{
	UserTypeUser,
	UserTypeAuthor,
	UserTypeRejectedUser,
	UserTypeRejectedAuthor,
}

// Valid reports whether t is one of the four known account types.
func (t UserType) Valid() bool {
	return slices.Contains(UserTypes, t)
}

// User is the identity and credential aggregate persisted in the "users"
// table together with its token list and follow edges.
//
// PasswordHash and Tokens are credentials: they must never leave the server.
// Use [ToPublic] before encoding a User for a client.
type User struct {
	// ID is a server-assigned UUID. Immutable after creation.
	ID string `json:"id"`

	// Name is the display name, 3 to 20 characters.
	Name string `json:"name" validate:"required,min=3,max=20"`

	// Email is unique across all users and always stored lowercased.
	Email string `json:"email" validate:"required,max=50,email"`

	// UserType is changed only by moderation.
	UserType UserType `json:"user_type" validate:"usertype"`

	Age        int  `json:"age" validate:"gte=0"`
	IsAdmin    bool `json:"is_admin"`
	IsVerified bool `json:"is_verified"`

	// PasswordHash is the bcrypt representation of the password.
	PasswordHash string `json:"-" validate:"required"`

	// Tokens holds the active session tokens in issue order.
	Tokens []string `json:"-"`

	AvatarURL string `json:"-"`

	// Followers and Following hold user IDs with set semantics.
	Followers []string `json:"followers"`
	Following []string `json:"following"`

	// Version is incremented by every successful save and is used for
	// optimistic concurrency control.
	Version int64 `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasToken reports whether token is among the user's active tokens.
func (u User) HasToken(token string) bool {
	return slices.Contains(u.Tokens, token)
}

// NormalizeEmail trims surrounding whitespace and lowercases the address so
// that uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser builds a not-yet-persisted account with the defaults applied.
func NewUser(name, email string, age int) User {
	return User{
		Name:      name,
		Email:     NormalizeEmail(email),
		UserType:  UserTypeUser,
		Age:       age,
		AvatarURL: DefaultAvatarURL,
		Followers: []string{},
		Following: []string{},
		Tokens:    []string{},
	}
}
