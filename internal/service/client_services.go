package service

import (
	"github.com/MKhiriev/go-shelf-auth/internal/adapter"
	"github.com/MKhiriev/go-shelf-auth/internal/store"
)

type ClientServices struct {
	AuthService    ClientAuthService
	ProfileService ClientProfileService
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, server string) *ClientServices {
	return &ClientServices{
		AuthService:    NewClientAuthService(storages.SessionStore, serverAdapter, server),
		ProfileService: NewClientProfileService(storages.SessionStore, serverAdapter),
	}
}
