package models

// Recommendation is one LLM-suggested product model for a user query.
type Recommendation struct {
	Model    string `json:"model"`
	PriceINR string `json:"price_inr"`
	Why      string `json:"why"`
}

type RecommendationResponse struct {
	Query string           `json:"query"`
	Items []Recommendation `json:"items"`
}
