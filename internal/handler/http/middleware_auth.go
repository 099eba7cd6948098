package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/internal/service"
	"github.com/MKhiriev/go-account-service/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], loads the current state
// of the token's account, and — on success — stores the account in the
// request context under [utils.UserCtxKey] (and its ID under
// [utils.UserIDCtxKey]) before delegating to the next handler.
//
// The middleware rejects requests in the following cases:
//   - HTTP 401 — the "Authorization" header is absent
//     ([ErrEmptyAuthorizationHeader]), cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader] or [ErrEmptyToken]), carries an
//     expired or otherwise invalid token, or the token's account no longer
//     exists.
//   - HTTP 403 — the account exists but has been deactivated since the token
//     was issued.
//
// Loading the account on every request means a deactivation or deletion takes
// effect immediately, not at token expiry.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			h.writeError(w, r, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			h.writeError(w, r, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("token rejected")
			h.writeError(w, r, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
			return
		}

		user, err := h.services.UserService.GetUser(ctx, token.UserID)
		if errors.Is(err, service.ErrUserNotFound) {
			log.Warn().Int64("id", token.UserID).Msg("token subject no longer exists")
			h.writeError(w, r, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
			return
		}
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		if !user.IsActive {
			log.Warn().Int64("id", user.ID).Msg("inactive account rejected")
			h.writeError(w, r, service.ErrInactiveUser.Error(), http.StatusForbidden)
			return
		}

		// Store the caller in the context so that downstream handlers can
		// retrieve it without re-parsing the token or hitting the database.
		ctx = context.WithValue(ctx, utils.UserCtxKey, user)
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, user.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly gates administration routes. It must run after [Handler.auth];
// a non-admin caller is rejected with HTTP 403.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := utils.GetUserFromContext(r.Context())
		if !ok {
			h.writeError(w, r, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if !caller.IsAdmin {
			logger.FromRequest(r).Warn().Int64("id", caller.ID).Msg("admin route rejected for non-admin")
			h.writeError(w, r, "admin privileges required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
