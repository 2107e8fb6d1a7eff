// Package httpauth implements the identity provider against the backend's
// token endpoints, with the session persisted in the local SQLite store so a
// restarted client resumes its signed-in identity.
package httpauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dkrasnova/brandkit/internal/client/identity"
	"github.com/dkrasnova/brandkit/internal/common"
)

const defaultTimeout = 15 * time.Second

// Client calls the backend's auth endpoints. Unlike the API client it never
// attaches a bearer credential; these endpoints authenticate by password or
// refresh token.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type resetRequest struct {
	Email string `json:"email"`
}

// tokenPair is the data payload of every successful auth response.
type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UID          string `json:"uid"`
	Email        string `json:"email"`
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*tokenPair, error) {
	return c.tokens(ctx, "/api/auth/login", credentials{Email: email, Password: password})
}

func (c *Client) Register(ctx context.Context, email, password string) (*tokenPair, error) {
	return c.tokens(ctx, "/api/auth/register", credentials{Email: email, Password: password})
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*tokenPair, error) {
	return c.tokens(ctx, "/api/auth/refresh", refreshRequest{RefreshToken: refreshToken})
}

func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, "/api/auth/logout", refreshRequest{RefreshToken: refreshToken}, nil)
}

func (c *Client) PasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, "/api/auth/password-reset", resetRequest{Email: email}, nil)
}

func (c *Client) tokens(ctx context.Context, path string, body any) (*tokenPair, error) {
	var pair tokenPair
	if err := c.do(ctx, path, body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// do POSTs body and decodes the envelope. Failures come back as
// *identity.Error so the store can map them to user-facing categories;
// transport-level failures carry the network-failure code.
func (c *Client) do(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &identity.Error{Code: common.CodeNetworkFailure, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		provErr := &identity.Error{}
		if decodeErr == nil && env.Error != nil {
			provErr.Code = env.Error.Code
			provErr.Err = fmt.Errorf("%s", env.Error.Message)
		} else {
			provErr.Err = fmt.Errorf("auth request failed: %s", resp.Status)
		}
		return provErr
	}

	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
