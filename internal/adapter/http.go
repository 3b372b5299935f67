package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-shelf-auth/internal/config"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
	"github.com/MKhiriev/go-shelf-auth/internal/utils"
	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/go-resty/resty/v2"
)

// ErrEmptyAddress is returned by NewHTTPServerAdapter when no server address
// is configured.
var ErrEmptyAddress = errors.New("empty server address")

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter] for the server at cfg.HTTPAddress.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	address := strings.TrimSpace(cfg.HTTPAddress)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	u, err := url.Parse(utils.BaseURL(address))
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid adapter http address %q", cfg.HTTPAddress)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(strings.TrimRight(u.String(), "/"), cfg.RequestTimeout),
		logger: logger,
	}, nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs req to
// POST /api/users/register.
func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/users/register", req)
}

// Login implements [ServerAdapter]. It POSTs creds to POST /api/users/login.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/users/login", creds)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, body any) (models.AuthResponse, error) {
	var out models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&out).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	// the header wins over the body when both are present
	if header := resp.Header().Get("Authorization"); header != "" {
		token, err := utils.ParseBearerToken(header)
		if err != nil {
			return models.AuthResponse{}, fmt.Errorf("%s parse bearer token: %w", path, err)
		}
		out.Token = token
	}
	if out.Token == "" {
		return models.AuthResponse{}, fmt.Errorf("%s: server returned no token", path)
	}

	h.SetToken(out.Token)
	return out, nil
}

// Logout implements [ServerAdapter].
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	return h.send(ctx, http.MethodPost, "/api/users/logout", nil, nil)
}

// LogoutAll implements [ServerAdapter].
func (h *httpServerAdapter) LogoutAll(ctx context.Context) error {
	return h.send(ctx, http.MethodPost, "/api/users/logout/all", nil, nil)
}

// Me implements [ServerAdapter].
func (h *httpServerAdapter) Me(ctx context.Context) (models.PublicUser, error) {
	var out models.PublicUser
	err := h.send(ctx, http.MethodGet, "/api/users/me", nil, &out)
	return out, err
}

// UpdateProfile implements [ServerAdapter].
func (h *httpServerAdapter) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.PublicUser, error) {
	var out models.PublicUser
	err := h.send(ctx, http.MethodPatch, "/api/users/me", upd, &out)
	return out, err
}

// DeleteAccount implements [ServerAdapter].
func (h *httpServerAdapter) DeleteAccount(ctx context.Context) error {
	return h.send(ctx, http.MethodDelete, "/api/users/me", nil, nil)
}

// GetUser implements [ServerAdapter].
func (h *httpServerAdapter) GetUser(ctx context.Context, userID string) (models.PublicUser, error) {
	var out models.PublicUser
	err := h.send(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID), nil, &out)
	return out, err
}

// Follow implements [ServerAdapter].
func (h *httpServerAdapter) Follow(ctx context.Context, userID string) error {
	return h.send(ctx, http.MethodPost, "/api/users/"+url.PathEscape(userID)+"/follow", nil, nil)
}

// Unfollow implements [ServerAdapter].
func (h *httpServerAdapter) Unfollow(ctx context.Context, userID string) error {
	return h.send(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(userID)+"/follow", nil, nil)
}

// SetUserType implements [ServerAdapter].
func (h *httpServerAdapter) SetUserType(ctx context.Context, userID string, userType models.UserType) error {
	body := models.UserTypeChange{UserType: userType}
	return h.send(ctx, http.MethodPut, "/api/admin/users/"+url.PathEscape(userID)+"/type", body, nil)
}

// Version implements [ServerAdapter]. The endpoint needs no token.
func (h *httpServerAdapter) Version(ctx context.Context) (models.VersionResponse, error) {
	var out models.VersionResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/version")
	if err != nil {
		return models.VersionResponse{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionResponse{}, err
	}

	return out, nil
}

// send performs an authenticated request. body and result may be nil.
func (h *httpServerAdapter) send(ctx context.Context, method, path string, body, result any) error {
	req := h.authedRequest(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "httpServerAdapter.send").Str("path", path).Msg("request failed")
		return fmt.Errorf("%s %s request: %w", method, path, err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
