// Package nutrition computes the derived health metrics shown on the
// dashboard: basal metabolic rate, daily intake totals, macronutrient
// energy ratios and the anti-inflammatory share of the day's meals.
package nutrition

import "github.com/larderhq/larder/internal/model"

// Totals is a day's summed intake.
type Totals struct {
	Calories     float64
	Protein      float64
	Carbohydrate float64
	Fat          float64
}

// Ratios is the share of energy each macronutrient contributes, in percent.
type Ratios struct {
	Protein      float64
	Carbohydrate float64
	Fat          float64
}

// BMR computes the basal metabolic rate with the Mifflin-St Jeor
// equation. Returns 0 if weight, height, age or gender is unset.
func BMR(p model.Profile) float64 {
	if p.WeightKg == 0 || p.HeightCm == 0 || p.Age == 0 {
		return 0
	}
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	switch p.Gender {
	case "male":
		return base + 5
	case "female":
		return base - 161
	}
	return 0
}

// TotalIntake sums each meal's nutrients scaled by its gram quantity
// (catalog values are per 100g).
func TotalIntake(meals []model.MealEntry) Totals {
	var t Totals
	for _, m := range meals {
		ratio := m.QuantityGrams / 100
		t.Calories += m.Food.Calories * ratio
		t.Protein += m.Food.Protein * ratio
		t.Carbohydrate += m.Food.Carbohydrate * ratio
		t.Fat += m.Food.Fat * ratio
	}
	return t
}

// MacronutrientRatios converts gram intakes to energy shares using
// 4 kcal/g for protein and carbohydrate and 9 kcal/g for fat.
func MacronutrientRatios(protein, carbohydrate, fat float64) Ratios {
	proteinCal := protein * 4
	carbCal := carbohydrate * 4
	fatCal := fat * 9
	total := proteinCal + carbCal + fatCal
	if total == 0 {
		return Ratios{}
	}
	return Ratios{
		Protein:      proteinCal / total * 100,
		Carbohydrate: carbCal / total * 100,
		Fat:          fatCal / total * 100,
	}
}

// ProteinTargetGrams is the daily protein goal per kilogram of body weight.
const ProteinTargetGrams = 1.5

// ProteinTarget reports the daily protein goal for the given body
// weight and whether the current intake meets it. A zero weight means
// the target is unknown.
func ProteinTarget(currentProtein, weightKg float64) (target float64, met bool) {
	if weightKg == 0 {
		return 0, false
	}
	target = weightKg * ProteinTargetGrams
	return target, currentProtein >= target
}

// AntiInflammatoryShare returns the percentage of the day's meals whose
// food carries the anti-inflammatory flag.
func AntiInflammatoryShare(meals []model.MealEntry) float64 {
	if len(meals) == 0 {
		return 0
	}
	count := 0
	for _, m := range meals {
		if m.Food.AntiInflammatory {
			count++
		}
	}
	return float64(count) / float64(len(meals)) * 100
}

// EnergyBalance is intake minus expenditure. Expenditure is the
// profile's BMR (stored value preferred, computed otherwise) plus
// active calories; negative means a deficit.
func EnergyBalance(p model.Profile, intake Totals) float64 {
	bmr := p.BMR
	if bmr == 0 {
		bmr = BMR(p)
	}
	return intake.Calories - (bmr + p.ActiveCalories)
}
