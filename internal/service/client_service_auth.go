package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shelf-auth/internal/adapter"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/models"
)

type clientAuthService struct {
	sessions store.SessionStore
	adapter  adapter.ServerAdapter

	// server is recorded with the session so that a later run can tell
	// which server the token belongs to.
	server string
}

func NewClientAuthService(sessions store.SessionStore, serverAdapter adapter.ServerAdapter, server string) ClientAuthService {
	return &clientAuthService{sessions: sessions, adapter: serverAdapter, server: server}
}

func (a *clientAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.Session, error) {
	resp, err := a.adapter.Register(ctx, req)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAdapterError(err))
	}

	return a.remember(ctx, resp)
}

func (a *clientAuthService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	resp, err := a.adapter.Login(ctx, creds)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	return a.remember(ctx, resp)
}

func (a *clientAuthService) remember(ctx context.Context, resp models.AuthResponse) (models.Session, error) {
	session := models.Session{
		UserID:  resp.User.ID,
		Name:    resp.User.Name,
		Email:   resp.User.Email,
		Token:   resp.Token,
		Server:  a.server,
		SavedAt: time.Now().UTC(),
	}

	if err := a.sessions.Save(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}

	return session, nil
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (models.Session, error) {
	session, err := a.sessions.Load(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Session{}, ErrNotLoggedIn
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	if session.Server != "" && a.server != "" && session.Server != a.server {
		logger.FromContext(ctx).Warn().
			Str("session_server", session.Server).
			Str("server", a.server).
			Msg("stored session belongs to a different server")
	}

	a.adapter.SetToken(session.Token)
	return session, nil
}

// Logout forgets the local session even when the server already considers
// the token invalid.
func (a *clientAuthService) Logout(ctx context.Context, all bool) error {
	if _, err := a.RestoreSession(ctx); err != nil {
		return err
	}

	var err error
	if all {
		err = a.adapter.LogoutAll(ctx)
	} else {
		err = a.adapter.Logout(ctx)
	}
	if err = mapAdapterError(err); err != nil && !errors.Is(err, ErrTokenIsExpiredOrInvalid) {
		return fmt.Errorf("logout: %w", err)
	}

	a.adapter.SetToken("")
	if err = a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}
