package model

// Unit is the unit system a quantity was entered in.
type Unit string

const (
	UnitGrams Unit = "grams"
	UnitUnits Unit = "units"
)

// FoodItem is an immutable catalog entry. Nutritional values are per 100g.
// The core never writes these; they are embedded reference data.
type FoodItem struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	DefaultUnit      string   `json:"default_unit"`
	GramsPerUnit     float64  `json:"grams_per_unit"`
	Calories         float64  `json:"calories"`
	Protein          float64  `json:"protein"`
	Carbohydrate     float64  `json:"carbohydrate"`
	Fat              float64  `json:"fat"`
	Fiber            float64  `json:"fiber"`
	AntiInflammatory bool     `json:"is_anti_inflammatory"`
	Compounds        []string `json:"anti_inflammatory_compounds,omitempty"`
	DIIScore         float64  `json:"dii_score"`
}

// IsWeightUnit reports whether a food's default unit is itself a weight
// measure, in which case one unit is one gram and intake quantity and
// weight are the same number.
func IsWeightUnit(defaultUnit string) bool {
	switch defaultUnit {
	case "grams", "g", "milliliters", "ml":
		return true
	}
	return false
}
