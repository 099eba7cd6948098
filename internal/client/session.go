package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-account-service/internal/adapter"
	"github.com/MKhiriev/go-account-service/internal/config"
	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/models"
)

type session struct {
	adapter adapter.ServerAdapter
	ttl     time.Duration
	logger  *logger.Logger

	// now is swappable in tests.
	now func() time.Time

	mu        sync.Mutex
	user      *models.User
	fetchedAt time.Time
}

// NewSession builds a Session on top of the given server adapter. The cache
// TTL comes from cfg.TTL; a non-positive value disables caching entirely so
// that every CurrentUser call hits the server.
func NewSession(serverAdapter adapter.ServerAdapter, cfg config.ClientSession, logger *logger.Logger) Session {
	return &session{
		adapter: serverAdapter,
		ttl:     cfg.TTL,
		logger:  logger,
		now:     time.Now,
	}
}

// Login implements [Session]. Any previously cached profile is discarded
// before the new credentials are tried, so a failed re-login never leaves a
// stale identity behind.
func (s *session) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	s.dropCache()

	if _, err := s.adapter.Login(ctx, req); err != nil {
		s.adapter.ClearToken()
		return models.User{}, fmt.Errorf("session login: %w", err)
	}

	user, err := s.Refresh(ctx)
	if err != nil {
		return models.User{}, err
	}

	s.logger.Debug().Int64("id", user.ID).Msg("session established")
	return user, nil
}

// Logout implements [Session].
func (s *session) Logout() {
	s.adapter.ClearToken()
	s.dropCache()
	s.logger.Debug().Msg("session closed")
}

// CurrentUser implements [Session].
func (s *session) CurrentUser(ctx context.Context) (models.User, error) {
	if s.adapter.Token() == "" {
		return models.User{}, ErrNotAuthenticated
	}

	s.mu.Lock()
	if s.user != nil && s.ttl > 0 && s.now().Sub(s.fetchedAt) < s.ttl {
		user := *s.user
		s.mu.Unlock()
		return user, nil
	}
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Refresh implements [Session].
func (s *session) Refresh(ctx context.Context) (models.User, error) {
	if s.adapter.Token() == "" {
		return models.User{}, ErrNotAuthenticated
	}

	user, err := s.adapter.Me(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("session refresh: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.fetchedAt = s.now()
	s.mu.Unlock()

	return user, nil
}

// Invalidate implements [Session].
func (s *session) Invalidate() {
	s.mu.Lock()
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

func (s *session) dropCache() {
	s.mu.Lock()
	s.user = nil
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}
