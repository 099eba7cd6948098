package http

import (
	"github.com/MKhiriev/go-account-service/internal/config"
	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/internal/service"
	"github.com/MKhiriev/go-account-service/internal/utils"
)

type Handler struct {
	services *service.Services

	allowedOrigins []string
	traceIDs       *utils.UUIDGenerator
	logger         *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		allowedOrigins: cfg.AllowedOrigins,
		traceIDs:       utils.NewUUIDGenerator(),
		logger:         logger,
	}
}
