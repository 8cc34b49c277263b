package model

// Nutrition holds per-100g macronutrient values from the food catalog.
type Nutrition struct {
	Energy  float64 `json:"energy"`
	Fat     float64 `json:"fat"`
	Carbs   float64 `json:"carbs"`
	Protein float64 `json:"protein"`
}

// ProductInfo is the resolved metadata for a scanned code. It is immutable
// once constructed. Found=false is a valid terminal value, not an error, and
// implies every optional field is empty.
type ProductInfo struct {
	Code        string     `json:"code"`
	Found       bool       `json:"found"`
	Name        string     `json:"name,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	Category    string     `json:"category,omitempty"`
	Origin      string     `json:"origin,omitempty"`
	Ingredients string     `json:"ingredients,omitempty"`
	Nutrition   *Nutrition `json:"nutrition,omitempty"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
}

// NotFound returns the terminal value for a code no source could resolve.
func NotFound(code string) ProductInfo {
	return ProductInfo{Code: code}
}
