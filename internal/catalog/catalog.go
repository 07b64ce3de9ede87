// Package catalog is the immutable food reference list. Entries carry
// nutritional values per 100g and a default display unit; the rest of
// the system only ever reads them.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/larderhq/larder/internal/model"
)

//go:embed foods.json
var foodsJSON []byte

type Catalog struct {
	foods []model.FoodItem
	byID  map[string]int
}

// Load parses the embedded food list.
func Load() (*Catalog, error) {
	var foods []model.FoodItem
	if err := json.Unmarshal(foodsJSON, &foods); err != nil {
		return nil, fmt.Errorf("parse food catalog: %w", err)
	}

	byID := make(map[string]int, len(foods))
	for i, f := range foods {
		if f.ID == "" {
			return nil, fmt.Errorf("food catalog entry %d has no id", i)
		}
		if _, dup := byID[f.ID]; dup {
			return nil, fmt.Errorf("duplicate food id %q", f.ID)
		}
		byID[f.ID] = i
	}
	return &Catalog{foods: foods, byID: byID}, nil
}

// ByID returns the catalog entry for id.
func (c *Catalog) ByID(id string) (model.FoodItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.FoodItem{}, false
	}
	return c.foods[i], true
}

// All returns every entry in catalog order.
func (c *Catalog) All() []model.FoodItem {
	out := make([]model.FoodItem, len(c.foods))
	copy(out, c.foods)
	return out
}

// Search returns entries whose name contains term, case-insensitively.
// An empty term returns everything.
func (c *Catalog) Search(term string) []model.FoodItem {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return c.All()
	}
	var out []model.FoodItem
	for _, f := range c.foods {
		if strings.Contains(strings.ToLower(f.Name), term) {
			out = append(out, f)
		}
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, f := range c.foods {
		if !seen[f.Category] {
			seen[f.Category] = true
			cats = append(cats, f.Category)
		}
	}
	sort.Strings(cats)
	return cats
}
