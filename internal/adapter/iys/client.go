// Package iys implements the ConsentRegistry port against the İleti
// Yönetim Sistemi multi-recipient status API.
package iys

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"bulkmailer/internal/config/configs"
	"bulkmailer/internal/core/port"
)

// Client queries the registry's consent/multiple/status endpoint. One call
// covers a full dispatch run's recipient batch.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg configs.IYS) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type statusRequest struct {
	Recipients    []string `json:"recipients"`
	RecipientType string   `json:"recipientType"`
	Type          string   `json:"type"`
	IYSCode       int      `json:"iysCode"`
	BrandCode     int      `json:"brandCode"`
}

type statusResponse struct {
	Data struct {
		List []string `json:"list"`
	} `json:"data"`
}

// ConsentedSubset returns the recipients the registry reports as opted in.
// Non-2xx responses and malformed payloads are errors; the caller decides
// whether and when to retry.
func (c *Client) ConsentedSubset(ctx context.Context, q port.ConsentQuery, recipients []string) ([]string, error) {
	recipientType := q.RecipientType
	if recipientType == "" {
		recipientType = "BIREYSEL"
	}
	body, err := json.Marshal(statusRequest{
		Recipients:    recipients,
		RecipientType: recipientType,
		Type:          "EPOSTA",
		IYSCode:       q.IYSCode,
		BrandCode:     q.BrandCode,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/consent/multiple/status", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("IYS-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consent registry request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("consent registry returned %d: %s", resp.StatusCode, snippet)
	}

	var parsed statusResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding consent registry response: %w", err)
	}
	return parsed.Data.List, nil
}
