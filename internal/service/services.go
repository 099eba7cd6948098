package service

import (
	"github.com/MKhiriev/go-account-service/internal/config"
	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/internal/store"
)

// Services aggregates every business-logic service of the application.
type Services struct {
	AuthService
	UserService
}

// NewServices wires the service layer on top of the storage layer.
func NewServices(storages *store.Storages, cfg config.App, log *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg, log),
		UserService: NewUserService(storages.UserRepository, log),
	}
}
