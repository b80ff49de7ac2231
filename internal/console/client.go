// Package console implements the operator side of the admin portal: a typed
// API client, the connectivity monitor, and the login/list/mutate state
// machine driven by cmd/bloomctl.
package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bloomview/bloomview-api/internal/entity"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// NetworkError marks a transport-level failure (refused connection, timeout),
// as opposed to an error the server reported. The console surfaces these as
// offline state, never as a crash.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient takes the API base URL, e.g. "http://127.0.0.1:5000/api".
// The data calls use the transport's default timeout; only the health probe
// is separately bounded (see Monitor).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Health reports whether GET /health answered 200. Used by the monitor.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: "health probe", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) ListLeads(ctx context.Context, passcode string) ([]entity.Lead, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/leads", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+passcode)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "list leads", Err: err}
	}
	defer resp.Body.Close()

	if err := statusErr(resp.StatusCode); err != nil {
		return nil, err
	}

	var leads []entity.Lead
	if err := json.NewDecoder(resp.Body).Decode(&leads); err != nil {
		return nil, fmt.Errorf("decoding leads: %w", err)
	}
	return leads, nil
}

func (c *Client) UpdateLeadStatus(ctx context.Context, passcode, id, status string) error {
	body, _ := json.Marshal(map[string]string{"status": status})

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/leads/"+id, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+passcode)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: "update lead status", Err: err}
	}
	defer resp.Body.Close()

	return statusErr(resp.StatusCode)
}

func (c *Client) DeleteLead(ctx context.Context, passcode, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/leads/"+id, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+passcode)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: "delete lead", Err: err}
	}
	defer resp.Body.Close()

	return statusErr(resp.StatusCode)
}

// SubmitInquiry posts to the public intake endpoint. Dev helper for seeding
// a local backend, not an admin operation.
func (c *Client) SubmitInquiry(ctx context.Context, name, email, service, message string) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"name":    name,
		"email":   email,
		"service": service,
		"message": message,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/leads", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &NetworkError{Op: "submit inquiry", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return out.ID, nil
}

func statusErr(code int) error {
	switch {
	case code >= 200 && code <= 299:
		return nil
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("server returned status %d", code)
	}
}
