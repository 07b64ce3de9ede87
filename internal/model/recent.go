package model

// RecentSelection remembers the last quantity and unit used for a food
// within one meal slot, for pre-filling the next entry. Last write wins.
type RecentSelection struct {
	ID       string   `json:"id"` // mealType + "_" + foodId
	MealType MealType `json:"mealType"`
	FoodID   string   `json:"foodId"`
	Quantity float64  `json:"quantity"`
	Unit     Unit     `json:"unit"`
	LastUsed int64    `json:"lastUsed"`
}

// RecentSelectionID builds the composite primary key for a meal slot and food.
func RecentSelectionID(mealType MealType, foodID string) string {
	return string(mealType) + "_" + foodID
}
