// Package segments implements the SegmentDirectory port against the
// external segment lookup service.
package segments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"bulkmailer/internal/config/configs"
)

// Client resolves named segments to member addresses.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg configs.Segments) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type membersResponse struct {
	Addresses []string `json:"addresses"`
}

// Members fetches the addresses of one segment. Errors propagate to the
// resolver, which wraps them as a ResolutionError.
func (c *Client) Members(ctx context.Context, tenantID, segmentName string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/tenants/%s/segments/%s/members",
		c.baseURL, url.PathEscape(tenantID), url.PathEscape(segmentName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("segment directory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("segment directory returned %d: %s", resp.StatusCode, snippet)
	}

	var parsed membersResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding segment directory response: %w", err)
	}
	return parsed.Addresses, nil
}
