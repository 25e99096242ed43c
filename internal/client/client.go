// Package client calls the task backend's REST API.
package client

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

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "taskdesk.com/taskdesk/internal/errors"
)

// ErrUnexpectedPayload means the server answered 2xx with a body that does
// not have the expected shape.
var ErrUnexpectedPayload = errors.New("unexpected response payload")

// TokenSource supplies the bearer token for each request. An empty token
// sends no Authorization header.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	logger  *log.Logger
}

// New builds a client for the API rooted at baseURL, for example
// http://localhost:8080/api. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client, tokens TokenSource, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q: must be absolute", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: u,
		http:    httpClient,
		tokens:  tokens,
		logger:  logger,
	}, nil
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	schema *jsonschema.Schema
	out    any
}

func (c *Client) do(ctx context.Context, r request) error {
	endpoint := c.baseURL.JoinPath(r.path)
	if len(r.query) > 0 {
		endpoint.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint.String(), body)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("api request", "method", r.method, "url", endpoint.String(), "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", r.method, r.path, err)
	}

	c.logger.Debug("api response", "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.New(resp.StatusCode, errorMessage(resp.StatusCode, payload))
	}

	if r.out == nil {
		return nil
	}

	if err := decode(payload, r.schema, r.out); err != nil {
		c.logger.Error("unexpected payload", "method", r.method, "path", r.path, "request_id", requestID, "err", err)
		return err
	}
	return nil
}

func decode(payload []byte, schema *jsonschema.Schema, out any) error {
	if schema != nil {
		dec := json.NewDecoder(bytes.NewReader(payload))
		dec.UseNumber()
		var doc any
		if err := dec.Decode(&doc); err != nil {
			return fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
		}
		if err := schema.Validate(doc); err != nil {
			return fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
		}
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}
	return nil
}

// errorMessage prefers a message or error field of a JSON body and falls
// back to the body text, then the status text.
func errorMessage(status int, payload []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}

	if text := strings.TrimSpace(string(payload)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	return http.StatusText(status)
}
