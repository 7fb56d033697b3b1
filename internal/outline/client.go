package outline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Source provides the documents and collections shown by the UI.
// It is implemented by *Client and *Fixture.
type Source interface {
	ListDocuments(ctx context.Context) ([]Document, error)
	ListCollections(ctx context.Context) ([]Collection, error)
}

var _ Source = (*Client)(nil)

// ErrUnauthorized is returned when the API rejects the token.
var ErrUnauthorized = errors.New("api token rejected")

// Client talks to the wiki HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
	pageSize  int
}

const (
	defaultUserAgent = "folio/0.1"
	defaultPageSize  = 100
	maxPages         = 50
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the API at apiURL authenticating with token.
func NewClient(apiURL, token string) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		token:     strings.TrimSpace(token),
		userAgent: defaultUserAgent,
		pageSize:  defaultPageSize,
	}, nil
}

// ListDocuments fetches every document visible to the token.
func (c *Client) ListDocuments(ctx context.Context) ([]Document, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var out []Document
	for page := 0; page < maxPages; page++ {
		var payload DocumentListResponse
		req := ListRequest{Limit: c.pageSize, Offset: page * c.pageSize}
		if err := c.post(ctx, "/api/documents.list", req, &payload); err != nil {
			return nil, err
		}
		out = append(out, payload.Data...)
		if len(payload.Data) < c.pageSize {
			break
		}
	}
	return out, nil
}

// ListCollections fetches every collection visible to the token.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var out []Collection
	for page := 0; page < maxPages; page++ {
		var payload CollectionListResponse
		req := ListRequest{Limit: c.pageSize, Offset: page * c.pageSize}
		if err := c.post(ctx, "/api/collections.list", req, &payload); err != nil {
			return nil, err
		}
		out = append(out, payload.Data...)
		if len(payload.Data) < c.pageSize {
			break
		}
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("api %s: %w", path, ErrUnauthorized)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
