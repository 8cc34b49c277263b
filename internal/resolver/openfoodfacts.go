package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"barcode-scanner/internal/model"
)

// DefaultOpenFoodFactsURL is the public endpoint of the food catalog.
const DefaultOpenFoodFactsURL = "https://world.openfoodfacts.org"

// offNumber tolerates the catalog serving nutriment values as either JSON
// numbers or quoted strings; anything unparseable defaults to zero rather
// than failing the whole record.
type offNumber float64

func (n *offNumber) UnmarshalJSON(data []byte) error {
	*n = 0
	if len(data) == 0 {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*n = offNumber(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*n = offNumber(v)
	}
	return nil
}

type offNutriments struct {
	EnergyKcal offNumber `json:"energy-kcal_100g"`
	Fat        offNumber `json:"fat_100g"`
	Carbs      offNumber `json:"carbohydrates_100g"`
	Protein    offNumber `json:"proteins_100g"`
}

type offProduct struct {
	ProductName     string        `json:"product_name"`
	Brands          string        `json:"brands"`
	Categories      string        `json:"categories"`
	Countries       string        `json:"countries"`
	IngredientsText string        `json:"ingredients_text"`
	Nutriments      offNutriments `json:"nutriments"`
	ImageURL        string        `json:"image_url"`
}

type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

// OpenFoodFacts resolves codes against the community food-product catalog.
// It is the richest source in the chain, contributing nutrition, ingredients
// and origin, so it is consulted first.
type OpenFoodFacts struct {
	baseURL string
	client  *http.Client
}

// NewOpenFoodFacts creates the food-catalog source. An empty baseURL selects
// the public endpoint; a nil client falls back to http.DefaultClient.
func NewOpenFoodFacts(baseURL string, client *http.Client) *OpenFoodFacts {
	if baseURL == "" {
		baseURL = DefaultOpenFoodFactsURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenFoodFacts{baseURL: baseURL, client: client}
}

// Name identifies the source in logs.
func (s *OpenFoodFacts) Name() string { return "openfoodfacts" }

// Lookup fetches and maps one product record. status != 1 is a well-formed
// miss, reported as (nil, nil).
func (s *OpenFoodFacts) Lookup(ctx context.Context, code string) (*model.ProductInfo, error) {
	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json", s.baseURL, code)
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

	var body offResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if body.Status != 1 {
		return nil, nil
	}

	p := body.Product
	return &model.ProductInfo{
		Code:        code,
		Found:       true,
		Name:        p.ProductName,
		Brand:       p.Brands,
		Category:    p.Categories,
		Origin:      p.Countries,
		Ingredients: p.IngredientsText,
		Nutrition: &model.Nutrition{
			Energy:  float64(p.Nutriments.EnergyKcal),
			Fat:     float64(p.Nutriments.Fat),
			Carbs:   float64(p.Nutriments.Carbs),
			Protein: float64(p.Nutriments.Protein),
		},
		ImageURL: p.ImageURL,
	}, nil
}
