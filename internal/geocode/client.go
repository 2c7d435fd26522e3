// Package geocode proxies forward-geocoding to the ArcGIS World Geocoding
// service. The proxy is best-effort: provider failures become diagnostic
// payloads rather than request failures, and an unconfigured key yields a
// predictable fallback shape.
package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rms-demo/rms-backend/config"
)

const (
	geocodePath    = "/arcgis/rest/services/World/Geocoding/geocodeAddresses"
	defaultTimeout = 10 * time.Second
)

// Client calls the ArcGIS geocoding REST endpoint with a shared http.Client.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(cfg config.GeocodeConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type geocodeRequest struct {
	Records []geocodeRecord `json:"records"`
}

type geocodeRecord struct {
	Attributes geocodeAttributes `json:"attributes"`
}

type geocodeAttributes struct {
	ObjectID   int    `json:"OBJECTID"`
	SingleLine string `json:"SingleLine"`
}

// Geocode forward-geocodes a single address. The returned payload is passed
// through to the caller verbatim:
//   - no configured key: {"address": ..., "status": "...not configured"}
//   - provider reached:  {"ok": <2xx>, "json": <provider body>}
//   - provider failed:   {"error": <detail>}
//
// Only failures outside the provider call itself (request construction)
// surface as a non-nil error.
func (c *Client) Geocode(ctx context.Context, address string) (map[string]any, error) {
	if c.apiKey == "" {
		// Predictable payload for demo setups without a key.
		return map[string]any{
			"address": address,
			"status":  "ArcGIS API key not configured",
		}, nil
	}

	body, err := json.Marshal(geocodeRequest{
		Records: []geocodeRecord{
			{Attributes: geocodeAttributes{ObjectID: 1, SingleLine: address}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode geocode request: %w", err)
	}

	reqURL := c.baseURL + geocodePath + "?f=json&token=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create geocode request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("[geocode] provider call failed: %v", err)
		return map[string]any{"error": err.Error()}, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[geocode] reading provider response failed: %v", err)
		return map[string]any{"error": err.Error()}, nil
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok {
		log.Printf("[geocode] provider returned status %d", resp.StatusCode)
	}
	return map[string]any{"ok": ok, "json": string(raw)}, nil
}
