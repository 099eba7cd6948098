package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-account-service/internal/config"
	"github.com/MKhiriev/go-account-service/internal/logger"
	"github.com/MKhiriev/go-account-service/internal/utils"
	"github.com/MKhiriev/go-account-service/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// ClearToken implements [ServerAdapter].
func (h *httpServerAdapter) ClearToken() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = ""
}

// Register implements [ServerAdapter]. It POSTs the registration payload to
// POST /auth/register and decodes the created account from the response
// body. No token is issued by this endpoint.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Post("/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /auth/login and decodes the token response. On success the access
// token is stored via SetToken for subsequent authenticated requests.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.TokenResponse, error) {
	var tokenResp models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&tokenResp).
		Post("/auth/login")
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenResponse{}, err
	}
	if tokenResp.AccessToken == "" {
		return models.TokenResponse{}, fmt.Errorf("login response carries no access token")
	}

	h.SetToken(tokenResp.AccessToken)
	if userID, err := utils.ParseUserIDFromJWT(tokenResp.AccessToken); err == nil {
		h.logger.Debug().Int64("user_id", userID).Msg("logged in")
	}
	return tokenResp, nil
}

// Me implements [ServerAdapter]. It GETs /users/me with the stored bearer
// token and decodes the caller's profile.
func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get("/users/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// UpdateMe implements [ServerAdapter]. It PATCHes /users/me with the partial
// update and decodes the updated profile.
func (h *httpServerAdapter) UpdateMe(ctx context.Context, update models.UserUpdate) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&user).
		Patch("/users/me")
	if err != nil {
		return models.User{}, fmt.Errorf("update me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// ListUsers implements [ServerAdapter]. It GETs /users with paging query
// parameters and decodes the paginated listing.
func (h *httpServerAdapter) ListUsers(ctx context.Context, page, pageSize int) (models.UserListResponse, error) {
	var list models.UserListResponse

	req := h.authedRequest(ctx).SetResult(&list)
	if page > 0 {
		req.SetQueryParam("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		req.SetQueryParam("pageSize", strconv.Itoa(pageSize))
	}

	resp, err := req.Get("/users")
	if err != nil {
		return models.UserListResponse{}, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserListResponse{}, err
	}

	return list, nil
}

// GetUser implements [ServerAdapter]. It GETs /users/{id} and decodes the
// account view.
func (h *httpServerAdapter) GetUser(ctx context.Context, id int64) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get(fmt.Sprintf("/users/%d", id))
	if err != nil {
		return models.User{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// UpdateUser implements [ServerAdapter]. It PATCHes /users/{id} with the
// partial update and decodes the updated account.
func (h *httpServerAdapter) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&user).
		Patch(fmt.Sprintf("/users/%d", id))
	if err != nil {
		return models.User{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// DeleteUser implements [ServerAdapter]. It sends DELETE /users/{id}; the
// server answers 204 on success.
func (h *httpServerAdapter) DeleteUser(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).
		Delete(fmt.Sprintf("/users/%d", id))
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
