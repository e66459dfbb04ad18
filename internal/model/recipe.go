package model

// Recipe is one meal returned by the random recipe endpoint.
// Values are replaced wholesale on every fetch and never mutated.
type Recipe struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ImageURL     string `json:"imageUrl"`
	Instructions string `json:"instructions"`
}
