// Package client mirrors the help center card collection on the consumer
// side: an HTTP client for the card API plus the UI state it feeds.
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
)

type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// APIError represents a non-2xx reply from the card API.
type APIError struct {
	StatusCode int
	// Message is the server's {"error": ...} text, if any.
	Message string
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// NotFound reports whether the server answered 404.
func (e *APIError) NotFound() bool {
	return e != nil && e.StatusCode == http.StatusNotFound
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// Client talks to the card API. Failed calls are never retried.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("client: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL: %w", err)
	}
	c := &Client{baseURL: parsed, httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) List(ctx context.Context) ([]Card, error) {
	var cards []Card
	if err := c.do(ctx, http.MethodGet, "cards", nil, &cards); err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []Card{}
	}
	return cards, nil
}

func (c *Client) GetByTitle(ctx context.Context, title string) (Card, error) {
	var card Card
	err := c.do(ctx, http.MethodGet, "cards/"+url.PathEscape(title), nil, &card)
	return card, err
}

func (c *Client) Create(ctx context.Context, title, description string) (Card, error) {
	var card Card
	err := c.do(ctx, http.MethodPost, "cards", cardBody(title, description), &card)
	return card, err
}

func (c *Client) Update(ctx context.Context, id, title, description string) (Card, error) {
	var card Card
	err := c.do(ctx, http.MethodPut, "cards/"+url.PathEscape(id), cardBody(title, description), &card)
	return card, err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "cards/"+url.PathEscape(id), nil, nil)
}

type cardPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func cardBody(title, description string) *cardPayload {
	return &cardPayload{Title: title, Description: description}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("client: invalid path %q: %w", path, err)
	}
	base := *c.baseURL
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	target := base.ResolveReference(ref)

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(data) > 0 {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Error
		}
	}
	return apiErr
}
