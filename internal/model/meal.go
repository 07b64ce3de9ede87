package model

// MealType is the meal slot an entry was logged under.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// ValidMealType reports whether t is one of the four meal slots.
func ValidMealType(t MealType) bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// MealEntry is one logged consumption event. Food is a snapshot of the
// catalog entry at log time so later catalog edits don't rewrite history.
//
// PantryDeductions is empty only for legacy entries that predate
// deduction tracking; those cannot be precisely reversed.
type MealEntry struct {
	ID               string      `json:"id"`
	FoodID           string      `json:"food_id"`
	Food             FoodItem    `json:"food"`
	QuantityGrams    float64     `json:"quantityGrams"`
	QuantityUnits    float64     `json:"quantityUnits"`
	Unit             Unit        `json:"unit"`
	MealType         MealType    `json:"mealType"`
	Timestamp        int64       `json:"timestamp"`
	Date             string      `json:"date"`
	PantryDeductions []Deduction `json:"pantryDeductions"`
}
