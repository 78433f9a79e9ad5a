// Package client is a typed HTTP client for the mokshamaa inquiry API,
// used by the form wizard and the admin dashboard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mokshamaa/internal/domain"
	"mokshamaa/internal/services"
)

// DefaultTimeout bounds every API round trip. Requests that exceed it are
// reported as a TimeoutError, not a NetworkError.
const DefaultTimeout = 15 * time.Second

// Config holds settings for the inquiry API client.
type Config struct {
	// BaseURL is the HTTP endpoint of the API, e.g. http://localhost:8000
	BaseURL string
	// Token is the bearer token for the admin endpoints; empty for the
	// public submission path.
	Token string
	// Timeout is the per-request timeout; DefaultTimeout when zero.
	Timeout time.Duration
}

// Client calls the inquiry API.
type Client struct {
	cfg  Config
	http *http.Client
}

// New creates a new API client. httpClient may be nil.
func New(cfg Config, httpClient *http.Client) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, http: httpClient}, nil
}

// ListResult is one page of inquiries with pagination totals.
type ListResult struct {
	Inquiries []domain.Inquiry `json:"inquiries"`
	Total     int64            `json:"total"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
}

// ListParams filter the admin list fetch. Empty or "all" means unfiltered.
type ListParams struct {
	Status   string
	Category string
	Priority string
	Limit    int
	Offset   int
}

type mutationEnvelope struct {
	Success bool           `json:"success"`
	Inquiry domain.Inquiry `json:"inquiry"`
	Message string         `json:"message"`
	Error   string         `json:"error"`
}

// CreateInquiry submits a new inquiry through the public endpoint.
func (c *Client) CreateInquiry(ctx context.Context, in *services.CreateInquiryInput) (*domain.Inquiry, error) {
	var env mutationEnvelope
	if err := c.do(ctx, http.MethodPost, "/inquiries", nil, in, &env); err != nil {
		return nil, err
	}
	return &env.Inquiry, nil
}

// ListInquiries fetches a filtered page, newest first.
func (c *Client) ListInquiries(ctx context.Context, p ListParams) (*ListResult, error) {
	q := url.Values{}
	if p.Status != "" && p.Status != "all" {
		q.Set("status", p.Status)
	}
	if p.Category != "" && p.Category != "all" {
		q.Set("category", p.Category)
	}
	if p.Priority != "" && p.Priority != "all" {
		q.Set("priority", p.Priority)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}

	var result ListResult
	if err := c.do(ctx, http.MethodGet, "/inquiries", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetInquiry fetches one inquiry by id.
func (c *Client) GetInquiry(ctx context.Context, id string) (*domain.Inquiry, error) {
	var env struct {
		Inquiry domain.Inquiry `json:"inquiry"`
	}
	if err := c.do(ctx, http.MethodGet, "/inquiries/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Inquiry, nil
}

// UpdateInquiry applies a merge-patch of allow-listed fields and returns the
// server's view of the updated row.
func (c *Client) UpdateInquiry(ctx context.Context, id string, fields map[string]any) (*domain.Inquiry, error) {
	var env mutationEnvelope
	if err := c.do(ctx, http.MethodPatch, "/inquiries/"+url.PathEscape(id), nil, fields, &env); err != nil {
		return nil, err
	}
	return &env.Inquiry, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &TimeoutError{Method: method, Path: path, Timeout: c.cfg.Timeout}
		}
		return &NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &NetworkError{Method: method, Path: path, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}
	return nil
}
