package store

import (
	"testing"

	"github.com/larderhq/larder/internal/model"
)

func TestRecentUpsertLastWriteWins(t *testing.T) {
	s := NewRecentSelectionStore(setupTestDB(t))

	first := model.RecentSelection{MealType: model.MealBreakfast, FoodID: "oats", Quantity: 50, Unit: model.UnitGrams, LastUsed: 100}
	if err := s.Upsert(first); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second := first
	second.Quantity = 80
	second.LastUsed = 200
	if err := s.Upsert(second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := s.Get(model.MealBreakfast, "oats")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("selection not found")
	}
	if got.Quantity != 80 || got.LastUsed != 200 {
		t.Errorf("got quantity %v lastUsed %d, want 80 / 200", got.Quantity, got.LastUsed)
	}
}

func TestRecentGetMissing(t *testing.T) {
	s := NewRecentSelectionStore(setupTestDB(t))

	got, err := s.Get(model.MealLunch, "nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestRecentForMealTypeOrderAndLimit(t *testing.T) {
	s := NewRecentSelectionStore(setupTestDB(t))

	foods := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, f := range foods {
		sel := model.RecentSelection{MealType: model.MealSnack, FoodID: f, Quantity: 1, Unit: model.UnitUnits, LastUsed: int64(i)}
		if err := s.Upsert(sel); err != nil {
			t.Fatalf("upsert %s: %v", f, err)
		}
	}
	// a different slot must not leak in
	other := model.RecentSelection{MealType: model.MealDinner, FoodID: "z", Quantity: 1, Unit: model.UnitUnits, LastUsed: 999}
	if err := s.Upsert(other); err != nil {
		t.Fatalf("upsert other slot: %v", err)
	}

	got, err := s.ForMealType(model.MealSnack, 0)
	if err != nil {
		t.Fatalf("for meal type: %v", err)
	}
	if len(got) != DefaultRecentLimit {
		t.Fatalf("entries = %d, want default limit %d", len(got), DefaultRecentLimit)
	}
	if got[0].FoodID != "g" {
		t.Errorf("most recent = %q, want %q", got[0].FoodID, "g")
	}
	for _, sel := range got {
		if sel.MealType != model.MealSnack {
			t.Errorf("leaked selection from slot %q", sel.MealType)
		}
	}
}

func TestRecentListAll(t *testing.T) {
	s := NewRecentSelectionStore(setupTestDB(t))

	sels := []model.RecentSelection{
		{MealType: model.MealBreakfast, FoodID: "oats", Quantity: 50, Unit: model.UnitGrams, LastUsed: 10},
		{MealType: model.MealDinner, FoodID: "salmon", Quantity: 1, Unit: model.UnitUnits, LastUsed: 30},
		{MealType: model.MealLunch, FoodID: "egg", Quantity: 2, Unit: model.UnitUnits, LastUsed: 20},
	}
	for _, sel := range sels {
		if err := s.Upsert(sel); err != nil {
			t.Fatalf("upsert %s: %v", sel.FoodID, err)
		}
	}

	got, err := s.ListAll()
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("entries = %d, want 3", len(got))
	}
	if got[0].FoodID != "salmon" || got[2].FoodID != "oats" {
		t.Errorf("order = [%s %s %s], want most recent first", got[0].FoodID, got[1].FoodID, got[2].FoodID)
	}
}

func TestRecentDeleteIdempotent(t *testing.T) {
	s := NewRecentSelectionStore(setupTestDB(t))

	sel := model.RecentSelection{MealType: model.MealLunch, FoodID: "oats", Quantity: 1, Unit: model.UnitGrams, LastUsed: 1}
	if err := s.Upsert(sel); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.Delete(model.MealLunch, "oats"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(model.MealLunch, "oats"); err != nil {
		t.Errorf("second delete: %v, want nil", err)
	}
}
