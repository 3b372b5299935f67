// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a signed session token bound to a single user.
//
// It embeds [jwt.RegisteredClaims] so it can be handed directly to
// jwt.ParseWithClaims; the subject ("sub") claim carries the user ID and the
// "jti" claim makes every issued token unique, even when two are minted for
// the same user within the same second.
type Token struct {
	jwt.RegisteredClaims

	// SignedString is the compact JWS form (header.payload.signature).
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID string `json:"-"`
}

// GetUserID returns the owner of the token taken from the "sub" claim.
func (t *Token) GetUserID() (string, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("token has no subject")
	}

	return sub, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
