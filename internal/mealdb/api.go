package mealdb

// randomResponse models the top-level structure of the random.php response.
type randomResponse struct {
	Meals []mealItem `json:"meals"`
}

// mealItem holds the fields of a meal the viewer needs. Pointers separate
// absent or null fields from present ones.
type mealItem struct {
	IDMeal          *string `json:"idMeal"`
	StrMeal         *string `json:"strMeal"`
	StrMealThumb    *string `json:"strMealThumb"`
	StrInstructions *string `json:"strInstructions"`
}
