// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"time"
)

// PublicUser is the outward projection of a [User]. It has no fields for the
// password hash, the session tokens or the avatar, so they can never be
// encoded into a response.
type PublicUser struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	UserType       UserType  `json:"user_type"`
	Age            int       `json:"age"`
	IsAdmin        bool      `json:"is_admin"`
	IsVerified     bool      `json:"is_verified"`
	Followers      []string  `json:"followers"`
	Following      []string  `json:"following"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	Version        int64     `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToPublic projects u into a [PublicUser].
//
// The avatar is dropped along with the credentials; this mirrors the
// behavior clients already depend on.
func ToPublic(u User) PublicUser {
	followers := slices.Clone(u.Followers)
	if followers == nil {
		followers = []string{}
	}
	following := slices.Clone(u.Following)
	if following == nil {
		following = []string{}
	}

	return PublicUser{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		UserType:       u.UserType,
		Age:            u.Age,
		IsAdmin:        u.IsAdmin,
		IsVerified:     u.IsVerified,
		Followers:      followers,
		Following:      following,
		FollowersCount: len(followers),
		FollowingCount: len(following),
		Version:        u.Version,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
