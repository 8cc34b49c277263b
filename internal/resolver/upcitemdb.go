package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"barcode-scanner/internal/model"
)

// DefaultUPCItemDBURL is the public endpoint of the generic UPC catalog.
const DefaultUPCItemDBURL = "https://api.upcitemdb.com"

type upcItem struct {
	Title       string `json:"title"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type upcResponse struct {
	Items []upcItem `json:"items"`
}

// UPCItemDB is the generic catalog fallback. It carries no nutrition data,
// only name, brand, category and description; the first matching item wins.
type UPCItemDB struct {
	baseURL string
	client  *http.Client
}

// NewUPCItemDB creates the generic-catalog source. An empty baseURL selects
// the public endpoint; a nil client falls back to http.DefaultClient.
func NewUPCItemDB(baseURL string, client *http.Client) *UPCItemDB {
	if baseURL == "" {
		baseURL = DefaultUPCItemDBURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &UPCItemDB{baseURL: baseURL, client: client}
}

// Name identifies the source in logs.
func (s *UPCItemDB) Name() string { return "upcitemdb" }

// Lookup fetches and maps one lookup result. An empty items list is a
// well-formed miss, reported as (nil, nil).
func (s *UPCItemDB) Lookup(ctx context.Context, code string) (*model.ProductInfo, error) {
	endpoint := fmt.Sprintf("%s/prod/trial/lookup?upc=%s", s.baseURL, url.QueryEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body upcResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(body.Items) == 0 {
		return nil, nil
	}

	item := body.Items[0]
	return &model.ProductInfo{
		Code:        code,
		Found:       true,
		Name:        item.Title,
		Brand:       item.Brand,
		Category:    item.Category,
		Description: item.Description,
	}, nil
}
