// Package remote syncs the learner profile with an optional HTTP endpoint.
// Sync is opportunistic: the local profile stays authoritative and every
// failure leaves it untouched and usable offline.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tmakino/kotoba/internal/profile"
)

const maxBodySize = 8 << 20

// Client talks to a profile sync endpoint. The endpoint stores a single
// opaque profile document per token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a sync client for the given endpoint. The token is sent
// as a bearer credential on every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Push uploads the full profile, replacing the remote copy.
func (c *Client) Push(ctx context.Context, p *profile.Profile) error {
	data, err := profile.Encode(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/profile", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("push profile: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push profile: unexpected status %s", resp.Status)
	}
	return nil
}

// Pull downloads the remote profile. A 404 means no profile has ever been
// pushed and is reported as (nil, nil), not an error.
func (c *Client) Pull(ctx context.Context) (*profile.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/profile", nil)
	if err != nil {
		return nil, fmt.Errorf("build pull request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pull profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pull profile: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read profile body: %w", err)
	}
	p, err := profile.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("pull profile: %w", err)
	}
	return p, nil
}

// Sync pulls the remote profile, merges it with the local one, and pushes
// the merged result back. The merged profile is returned so the caller can
// adopt it; on any failure the local profile is returned unchanged along
// with the error.
func (c *Client) Sync(ctx context.Context, local *profile.Profile) (*profile.Profile, error) {
	remote, err := c.Pull(ctx)
	if err != nil {
		return local, err
	}

	merged := local
	if remote != nil {
		merged = profile.Merge(local, remote)
	}

	if err := c.Push(ctx, merged); err != nil {
		return local, err
	}
	return merged, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
