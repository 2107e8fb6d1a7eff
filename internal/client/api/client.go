package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dkrasnova/brandkit/internal/client/cards"
	"github.com/dkrasnova/brandkit/internal/client/profile"
)

const defaultTimeout = 15 * time.Second

// Client is the typed SDK for the backend REST API. Construct it with an
// *http.Client whose transport is the AuthTransport so every call carries
// the session credential and participates in 401 invalidation.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
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

// ---- profile ----

func (c *Client) GetProfile(ctx context.Context) (*profile.Profile, error) {
	var p profile.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, patch profile.Patch) (*profile.Profile, error) {
	var p profile.Profile
	if err := c.do(ctx, http.MethodPatch, "/api/profile", patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

type onboardRequest struct {
	Step int              `json:"step"`
	Data *profile.Profile `json:"data"`
}

func (c *Client) CompleteOnboarding(ctx context.Context, step int, snapshot *profile.Profile) (*profile.Profile, error) {
	var p profile.Profile
	if err := c.do(ctx, http.MethodPost, "/api/profile/onboard", onboardRequest{Step: step, Data: snapshot}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GenerateInstructions asks the backend to derive AI writing instructions
// from the profile and returns the updated record.
func (c *Client) GenerateInstructions(ctx context.Context) (*profile.Profile, error) {
	var p profile.Profile
	if err := c.do(ctx, http.MethodPost, "/api/profile/ai-instructions", struct{}{}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ---- cards ----

func (c *Client) ListCards(ctx context.Context) ([]cards.Card, error) {
	var out []cards.Card
	if err := c.do(ctx, http.MethodGet, "/api/cards", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GenerateCards(ctx context.Context) ([]cards.Card, error) {
	var out []cards.Card
	if err := c.do(ctx, http.MethodPost, "/api/cards/generate", struct{}{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegenerateCard(ctx context.Context, cardID string) (*cards.Card, error) {
	var out cards.Card
	if err := c.do(ctx, http.MethodPost, "/api/cards/"+cardID+"/regenerate", struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCard(ctx context.Context, cardID string, patch cards.Patch) (*cards.Card, error) {
	var out cards.Card
	if err := c.do(ctx, http.MethodPatch, "/api/cards/"+cardID, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- linkedin ----

type linkedInStatus struct {
	Connected bool `json:"connected"`
}

func (c *Client) LinkedInStatus(ctx context.Context) (bool, error) {
	var out linkedInStatus
	if err := c.do(ctx, http.MethodGet, "/api/auth/linkedin/status", nil, &out); err != nil {
		return false, err
	}
	return out.Connected, nil
}

type linkedInCallback struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

func (c *Client) LinkedInConnect(ctx context.Context, code, state string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/linkedin/callback", linkedInCallback{Code: code, State: state}, nil)
}

func (c *Client) LinkedInDisconnect(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/auth/linkedin", nil, nil)
}
