package nutrition

import (
	"math"
	"testing"

	"github.com/larderhq/larder/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestBMR(t *testing.T) {
	male := model.Profile{WeightKg: 70, HeightCm: 175, Age: 30, Gender: "male"}
	if got := BMR(male); !almostEqual(got, 1648.75) {
		t.Errorf("male BMR = %v, want 1648.75", got)
	}

	female := model.Profile{WeightKg: 60, HeightCm: 165, Age: 25, Gender: "female"}
	if got := BMR(female); !almostEqual(got, 1345.25) {
		t.Errorf("female BMR = %v, want 1345.25", got)
	}

	incomplete := model.Profile{WeightKg: 70, Gender: "male"}
	if got := BMR(incomplete); got != 0 {
		t.Errorf("incomplete profile BMR = %v, want 0", got)
	}

	noGender := model.Profile{WeightKg: 70, HeightCm: 175, Age: 30}
	if got := BMR(noGender); got != 0 {
		t.Errorf("missing gender BMR = %v, want 0", got)
	}
}

func TestTotalIntake(t *testing.T) {
	oats := model.FoodItem{Calories: 389, Protein: 16.9, Carbohydrate: 66.3, Fat: 6.9}
	egg := model.FoodItem{Calories: 155, Protein: 13, Carbohydrate: 1.1, Fat: 11}
	meals := []model.MealEntry{
		{Food: oats, QuantityGrams: 50},
		{Food: egg, QuantityGrams: 100},
	}

	got := TotalIntake(meals)
	if !almostEqual(got.Calories, 389*0.5+155) {
		t.Errorf("calories = %v, want %v", got.Calories, 389*0.5+155)
	}
	if !almostEqual(got.Protein, 16.9*0.5+13) {
		t.Errorf("protein = %v, want %v", got.Protein, 16.9*0.5+13)
	}
	if !almostEqual(got.Carbohydrate, 66.3*0.5+1.1) {
		t.Errorf("carbohydrate = %v, want %v", got.Carbohydrate, 66.3*0.5+1.1)
	}
	if !almostEqual(got.Fat, 6.9*0.5+11) {
		t.Errorf("fat = %v, want %v", got.Fat, 6.9*0.5+11)
	}

	if empty := TotalIntake(nil); empty != (Totals{}) {
		t.Errorf("empty intake = %+v, want zero", empty)
	}
}

func TestMacronutrientRatios(t *testing.T) {
	got := MacronutrientRatios(100, 100, 0)
	if !almostEqual(got.Protein, 50) || !almostEqual(got.Carbohydrate, 50) || got.Fat != 0 {
		t.Errorf("ratios = %+v, want 50/50/0", got)
	}

	got = MacronutrientRatios(25, 25, 0)
	if !almostEqual(got.Protein, 50) {
		t.Errorf("ratios scale with total: %+v", got)
	}

	got = MacronutrientRatios(0, 0, 10)
	if !almostEqual(got.Fat, 100) {
		t.Errorf("all-fat ratios = %+v, want fat 100", got)
	}

	if zero := MacronutrientRatios(0, 0, 0); zero != (Ratios{}) {
		t.Errorf("zero intake ratios = %+v, want zero", zero)
	}
}

func TestProteinTarget(t *testing.T) {
	target, met := ProteinTarget(120, 70)
	if !almostEqual(target, 105) || !met {
		t.Errorf("ProteinTarget(120, 70) = %v, %v, want 105, true", target, met)
	}

	target, met = ProteinTarget(80, 70)
	if !almostEqual(target, 105) || met {
		t.Errorf("ProteinTarget(80, 70) = %v, %v, want 105, false", target, met)
	}

	target, met = ProteinTarget(80, 0)
	if target != 0 || met {
		t.Errorf("ProteinTarget with no weight = %v, %v, want 0, false", target, met)
	}
}

func TestAntiInflammatoryShare(t *testing.T) {
	meals := []model.MealEntry{
		{Food: model.FoodItem{AntiInflammatory: true}},
		{Food: model.FoodItem{AntiInflammatory: true}},
		{Food: model.FoodItem{AntiInflammatory: false}},
	}
	if got := AntiInflammatoryShare(meals); !almostEqual(got, 66.67) {
		t.Errorf("share = %v, want ~66.67", got)
	}
	if got := AntiInflammatoryShare(nil); got != 0 {
		t.Errorf("empty share = %v, want 0", got)
	}
}

func TestEnergyBalance(t *testing.T) {
	p := model.Profile{WeightKg: 70, HeightCm: 175, Age: 30, Gender: "male", ActiveCalories: 300}
	intake := Totals{Calories: 2000}
	if got := EnergyBalance(p, intake); !almostEqual(got, 2000-1648.75-300) {
		t.Errorf("balance = %v, want %v", got, 2000-1648.75-300)
	}

	stored := model.Profile{BMR: 1500, ActiveCalories: 0}
	if got := EnergyBalance(stored, Totals{Calories: 1500}); got != 0 {
		t.Errorf("stored BMR balance = %v, want 0", got)
	}
}
