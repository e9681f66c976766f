package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenSource supplies the bearer credential for authenticated calls.
// A source reporting no token causes auth-gated requests to be sent
// without an Authorization header; callers gate such requests themselves.
type TokenSource interface {
	Token() (string, bool)
}

// Client is a typed client for the OrderHai REST API. All responses are
// decoded and validated before being returned, so consumers only ever see
// contract-conforming payloads.
type Client struct {
	baseURL string
	http    *http.Client
	creds   TokenSource
	logger  zerolog.Logger
}

// New creates a new API client.
func New(baseURL string, httpClient *http.Client, creds TokenSource, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		creds:   creds,
		logger:  logger.With().Str("component", "api-client").Logger(),
	}
}

// validatable is implemented by response payloads that carry their own
// schema checks.
type validatable interface {
	Validate() error
}

// do issues a single JSON request. A nil out discards the response body.
// Non-2xx responses become *StatusError; payloads failing validation
// become *DecodeError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token, ok := c.creds.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// Best effort: pull the server message out of the error body.
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&payload)
		message := payload.Message
		if message == "" {
			message = payload.Error
		}

		c.logger.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", res.StatusCode).
			Str("message", message).
			Msg("request rejected")

		return &StatusError{StatusCode: res.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if v, ok := out.(validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return nil
}
