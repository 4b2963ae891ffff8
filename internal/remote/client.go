package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultHTTPTimeout = 30 * time.Second

var (
	// ErrNoRemote is returned when no sync URL is configured
	ErrNoRemote = errors.New("no sync url configured")
	// ErrNoSnapshot is returned when the remote holds nothing yet
	ErrNoSnapshot = errors.New("remote has no snapshot")
)

// Client pushes and pulls snapshots against a remote endpoint
type Client struct {
	url    string
	apiKey string
	client *http.Client
	logger *zap.SugaredLogger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the default http client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// WithClientLogger sets the logger used for request diagnostics
func WithClientLogger(l *zap.SugaredLogger) ClientOption {
	return func(c *Client) { c.logger = l }
}

type errorBody struct {
	Error string `json:"error"`
}

// NewClient creates a client for the snapshot endpoint at url
func NewClient(url, apiKey string, opts ...ClientOption) (*Client, error) {
	if url == "" {
		return nil, ErrNoRemote
	}
	c := &Client{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: defaultHTTPTimeout},
		logger: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Push uploads snap, replacing whatever the remote held
func (c *Client) Push(ctx context.Context, snap *Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("push failed: %w", statusError(resp))
	}

	c.logger.Infow("snapshot pushed", "id", snap.ID, "tasks", len(snap.Tasks), "learning", len(snap.Learning))
	return nil
}

// Pull downloads the latest snapshot held by the remote
func (c *Client) Pull(ctx context.Context) (*Snapshot, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pull failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoSnapshot
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pull failed: %w", statusError(resp))
	}

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	c.logger.Infow("snapshot pulled", "id", snap.ID, "tasks", len(snap.Tasks), "learning", len(snap.Learning))
	return &snap, nil
}

func (c *Client) newRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var e errorBody
	if err := json.Unmarshal(raw, &e); err == nil && e.Error != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, e.Error)
	}
	return fmt.Errorf("status %d", resp.StatusCode)
}
