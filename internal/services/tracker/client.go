package tracker

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
	"sync"
	"time"
)

// Shot is a tracked shot entity.
type Shot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Sequence string `json:"sequence_name"`
	Project  string `json:"project_name"`
}

// Version is a published plate version.
type Version struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ShotID     string `json:"shot_id"`
	FirstFrame int    `json:"first_frame"`
	LastFrame  int    `json:"last_frame"`
}

// PublishRequest carries the data needed to register a plate version.
type PublishRequest struct {
	ShotID     string `json:"shot_id"`
	Name       string `json:"name"`
	TaskType   string `json:"task_type"`
	FirstFrame int    `json:"first_frame"`
	LastFrame  int    `json:"last_frame"`
	PlatePath  string `json:"plate_path"`
	ProxyPath  string `json:"proxy_path,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

// Service defines the tracker operations used by the register stage.
type Service interface {
	FindShot(ctx context.Context, project, shotName string) (*Shot, error)
	PublishVersion(ctx context.Context, req PublishRequest) (*Version, error)
}

// ErrShotNotFound is returned when a shot does not exist in the tracker.
var ErrShotNotFound = errors.New("shot not found in tracker")

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client provides access to the tracker REST API. The access token is
// fetched lazily on the first request and refreshed on 401.
type Client struct {
	baseURL    string
	email      string
	password   string
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

var _ Service = (*Client)(nil)

// New creates a tracker client.
func New(baseURL, email, password string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tracker base url required")
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, errors.New("tracker credentials required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FindShot looks up one shot by project and shot name.
func (c *Client) FindShot(ctx context.Context, project, shotName string) (*Shot, error) {
	query := url.Values{}
	query.Set("project", project)
	query.Set("name", shotName)

	var shots []Shot
	if err := c.do(ctx, http.MethodGet, "/data/shots?"+query.Encode(), nil, &shots); err != nil {
		return nil, err
	}
	if len(shots) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrShotNotFound, project, shotName)
	}
	return &shots[0], nil
}

// PublishVersion registers a new plate version against a shot.
func (c *Client) PublishVersion(ctx context.Context, req PublishRequest) (*Version, error) {
	if req.ShotID == "" {
		return nil, errors.New("publish: shot id required")
	}
	if req.Name == "" {
		return nil, errors.New("publish: version name required")
	}
	var version Version
	if err := c.do(ctx, http.MethodPost, "/data/shots/"+req.ShotID+"/versions", req, &version); err != nil {
		return nil, err
	}
	return &version, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, method, path, body, token)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		token, err = c.refreshToken(ctx)
		if err != nil {
			return err
		}
		resp, err = c.send(ctx, method, path, body, token)
		if err != nil {
			return err
		}
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		return fmt.Errorf("tracker %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tracker %s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracker request: %w", err)
	}
	return resp, nil
}

func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		return token, nil
	}
	return c.refreshToken(ctx)
}

func (c *Client) refreshToken(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": c.email, "password": c.password})
	if err != nil {
		return "", fmt.Errorf("encode login: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tracker login: %w", err)
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tracker login: status %d", resp.StatusCode)
	}

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("tracker login: decode response: %w", err)
	}
	if auth.AccessToken == "" {
		return "", errors.New("tracker login: empty access token")
	}

	c.mu.Lock()
	c.token = auth.AccessToken
	c.mu.Unlock()
	return auth.AccessToken, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
