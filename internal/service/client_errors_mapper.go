// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-shelf-auth/internal/adapter"
	"github.com/MKhiriev/go-shelf-auth/internal/app"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/internal/validators"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	var respErr *adapter.ResponseError
	if !errors.As(err, &respErr) {
		return err
	}
	msg := respErr.Message

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		if len(respErr.Fields) > 0 {
			return &validators.ValidationError{Fields: respErr.Fields}
		}
		switch msg {
		case app.MsgNothingToUpdate:
			return ErrNothingToUpdate
		case app.MsgSelfFollow:
			return store.ErrSelfFollow
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgUnableToLogin:
			return ErrInvalidCredentials
		case app.MsgTokenIsExpiredOrInvalid:
			return ErrTokenIsExpiredOrInvalid
		}

	case errors.Is(err, adapter.ErrForbidden):
		return ErrForbidden

	case errors.Is(err, adapter.ErrNotFound):
		if msg == app.MsgNotFollowing {
			return store.ErrNotFollowing
		}
		return store.ErrUserNotFound

	case errors.Is(err, adapter.ErrConflict):
		switch msg {
		case app.MsgEmailAlreadyExists:
			return store.ErrEmailAlreadyExists
		case app.MsgVersionConflict:
			return store.ErrVersionConflict
		case app.MsgAlreadyFollowing:
			return store.ErrAlreadyFollowing
		}
	}

	return err
}
