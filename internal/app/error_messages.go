// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-shelf-auth server handlers, middleware and CLI client.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies. The client maps them back to sentinel errors, so the
// wording is part of the wire contract.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgValidationFailed accompanies the per-field reasons of a rejected
	// registration or profile update.
	MsgValidationFailed = "validation failed"

	// MsgUnableToLogin is returned for every failed login, whether the email
	// is unknown or the password is wrong.
	MsgUnableToLogin = "unable to login"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired,
	// cannot be verified or has been revoked.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a handler requires the
	// authenticated user ID but none is present in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgInvalidUserID is returned when a path parameter is not a user ID.
	MsgInvalidUserID = "invalid user id"

	// MsgAccessDenied is returned when a non-admin calls a moderation
	// endpoint.
	MsgAccessDenied = "access denied"

	// MsgEmailAlreadyExists is returned when the email belongs to another
	// account.
	MsgEmailAlreadyExists = "email already exists"

	// MsgUserNotFound is returned when the targeted user does not exist.
	MsgUserNotFound = "user not found"

	// MsgVersionConflict is returned when a profile update kept losing the
	// optimistic-locking race.
	MsgVersionConflict = "version conflict, please retry"

	// MsgNothingToUpdate is returned for a profile update with no fields.
	MsgNothingToUpdate = "nothing to update"

	MsgAlreadyFollowing = "already following"
	MsgNotFollowing     = "not following"
	MsgSelfFollow       = "cannot follow yourself"

	// MsgVersionIsNotSpecified is returned when the server was started
	// without a version string.
	MsgVersionIsNotSpecified = "version is not specified"
)
