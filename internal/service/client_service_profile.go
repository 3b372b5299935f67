package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shelf-auth/internal/adapter"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
	"github.com/MKhiriev/go-shelf-auth/models"
)

type clientProfileService struct {
	sessions store.SessionStore
	adapter  adapter.ServerAdapter
}

func NewClientProfileService(sessions store.SessionStore, serverAdapter adapter.ServerAdapter) ClientProfileService {
	return &clientProfileService{sessions: sessions, adapter: serverAdapter}
}

func (p *clientProfileService) Me(ctx context.Context) (models.PublicUser, error) {
	user, err := p.adapter.Me(ctx)
	return user, mapAdapterError(err)
}

func (p *clientProfileService) Update(ctx context.Context, upd models.ProfileUpdate) (models.PublicUser, error) {
	if upd.IsEmpty() {
		return models.PublicUser{}, ErrNothingToUpdate
	}

	user, err := p.adapter.UpdateProfile(ctx, upd)
	if err != nil {
		return models.PublicUser{}, mapAdapterError(err)
	}

	// keep the remembered name and email in step with the server
	if session, loadErr := p.sessions.Load(ctx); loadErr == nil {
		session.Name = user.Name
		session.Email = user.Email
		_ = p.sessions.Save(ctx, session)
	}

	return user, nil
}

func (p *clientProfileService) Get(ctx context.Context, userID string) (models.PublicUser, error) {
	user, err := p.adapter.GetUser(ctx, userID)
	return user, mapAdapterError(err)
}

func (p *clientProfileService) Follow(ctx context.Context, userID string) error {
	return mapAdapterError(p.adapter.Follow(ctx, userID))
}

func (p *clientProfileService) Unfollow(ctx context.Context, userID string) error {
	return mapAdapterError(p.adapter.Unfollow(ctx, userID))
}

func (p *clientProfileService) DeleteAccount(ctx context.Context) error {
	if err := p.adapter.DeleteAccount(ctx); err != nil {
		return mapAdapterError(err)
	}

	p.adapter.SetToken("")
	if err := p.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}

func (p *clientProfileService) SetUserType(ctx context.Context, userID string, userType models.UserType) error {
	return mapAdapterError(p.adapter.SetUserType(ctx, userID, userType))
}

func (p *clientProfileService) ServerVersion(ctx context.Context) (models.VersionResponse, error) {
	version, err := p.adapter.Version(ctx)
	return version, mapAdapterError(err)
}
