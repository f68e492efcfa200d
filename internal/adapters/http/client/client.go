// Package client is a typed HTTP client for the leaderboard API.
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
	"strconv"
	"strings"
	"time"

	"github.com/okian/podium/internal/domain/importer"
	"github.com/okian/podium/internal/domain/model"
)

const defaultTimeout = 30 * time.Second

// Client talks to a running leaderboard server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string { return c.baseURL }

// Rankings is the body of GET /rankings.
type Rankings struct {
	Students []model.RankedStudent `json:"students"`
	Settings model.Settings        `json:"settings"`
}

// Roster returns the students without ranks, in ranked order.
func (r Rankings) Roster() model.Roster {
	students := make([]model.Student, len(r.Students))
	for i, s := range r.Students {
		students[i] = s.Student
	}
	return model.Roster{Students: students, Settings: r.Settings}
}

// Load fetches the ranked roster and settings.
func (c *Client) Load(ctx context.Context) (Rankings, error) {
	var out Rankings
	err := c.do(ctx, http.MethodGet, "/rankings", nil, &out)
	return out, err
}

type saveRequest struct {
	Students *[]model.Student    `json:"students,omitempty"`
	Settings *model.SettingsPatch `json:"settings,omitempty"`
}

// Save replaces the roster and/or merges settings. A nil students slice
// keeps the server roster. The error matches ErrNotPersisted when the server
// applied the change but could not store it.
func (c *Client) Save(ctx context.Context, students []model.Student, patch *model.SettingsPatch) error {
	req := saveRequest{Settings: patch}
	if students != nil {
		req.Students = &students
	}
	var ack struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, http.MethodPost, "/rankings", req, &ack); err != nil {
		return err
	}
	if !ack.Success {
		return fmt.Errorf("%w: save not acknowledged", ErrUnexpected)
	}
	return nil
}

// UpdateSettings sends a partial settings update and returns the merged
// settings.
func (c *Client) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error) {
	var out model.Settings
	err := c.do(ctx, http.MethodPatch, "/settings", patch, &out)
	return out, err
}

// Leaderboard fetches up to limit entries. A limit of zero asks for the
// server maximum.
func (c *Client) Leaderboard(ctx context.Context, limit int) ([]model.RankedStudent, error) {
	path := "/leaderboard"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	var out []model.RankedStudent
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Rank fetches the ranked entry of one student.
func (c *Client) Rank(ctx context.Context, id string) (model.RankedStudent, error) {
	var out model.RankedStudent
	err := c.do(ctx, http.MethodGet, "/rank/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Import asks the server to parse text. Text the server rejects as too short
// yields importer.ErrTextTooShort.
func (c *Client) Import(ctx context.Context, text string) (importer.Result, error) {
	var out importer.Result
	status, body, err := c.roundTrip(ctx, http.MethodPost, "/import", map[string]string{"text": text})
	if err != nil {
		return out, err
	}
	if status == http.StatusBadRequest && !isErrorBody(body) {
		return out, importer.ErrTextTooShort
	}
	if err := decodeResponse(status, body, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Health checks that the server answers /healthz.
func (c *Client) Health(ctx context.Context) error {
	status, _, err := c.roundTrip(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: healthz status %d", ErrUnexpected, status)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	status, body, err := c.roundTrip(ctx, method, path, in)
	if err != nil {
		return err
	}
	return decodeResponse(status, body, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, in any) (int, []byte, error) {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: marshal %s %s: %w", ErrRequest, method, path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %w", ErrRequest, method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %w", ErrRequest, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read %s %s: %w", ErrRequest, method, path, err)
	}
	return resp.StatusCode, body, nil
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func isErrorBody(body []byte) bool {
	var e errorBody
	return json.Unmarshal(body, &e) == nil && e.Code != ""
}

func decodeResponse(status int, body []byte, out any) error {
	if status < 200 || status > 299 {
		var e errorBody
		if err := json.Unmarshal(body, &e); err != nil || e.Code == "" {
			return &StatusError{Status: status, Code: "unknown", Message: strings.TrimSpace(string(body))}
		}
		return &StatusError{Status: status, Code: e.Code, Message: e.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Join(ErrUnexpected, err)
	}
	return nil
}
