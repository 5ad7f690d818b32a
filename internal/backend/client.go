package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spec-kit/astro-booking/internal/config"
	"github.com/spec-kit/astro-booking/internal/domain"
)

// ErrMissingConfig is returned when the backend URL or service key is absent.
var ErrMissingConfig = errors.New("backend url and service role key are required")

// IdentityAdmin manages auth identities on the hosted backend.
type IdentityAdmin interface {
	CreateUser(ctx context.Context, params CreateIdentityParams) (*domain.AuthIdentity, error)
	DeleteUser(ctx context.Context, id string) error
}

// CreateIdentityParams describes a new auth identity.
type CreateIdentityParams struct {
	Email    string
	Password string
	Metadata map[string]any
}

// Client is a service-role client for the backend's admin API. It bypasses
// row level checks and must only be used server side.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewServiceClient builds a privileged client from configuration.
func NewServiceClient(cfg config.BackendConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	key := strings.TrimSpace(cfg.ServiceRoleKey)
	if base == "" || key == "" {
		return nil, ErrMissingConfig
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid url %q", ErrMissingConfig, cfg.URL)
	}

	return &Client{
		baseURL:    base,
		serviceKey: key,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

type createUserRequest struct {
	Email        string         `json:"email"`
	Password     string         `json:"password"`
	EmailConfirm bool           `json:"email_confirm"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUser registers a confirmed auth identity.
func (c *Client) CreateUser(ctx context.Context, params CreateIdentityParams) (*domain.AuthIdentity, error) {
	body, err := json.Marshal(createUserRequest{
		Email:        params.Email,
		Password:     params.Password,
		EmailConfirm: true,
		UserMetadata: params.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal create user: %w", err)
	}

	var out userResponse
	if err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", body, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("backend returned user without id")
	}
	return &domain.AuthIdentity{ID: out.ID, Email: out.Email, CreatedAt: out.CreatedAt}, nil
}

// DeleteUser removes an auth identity.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("identity id required")
	}
	return c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp.StatusCode, payload)
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
