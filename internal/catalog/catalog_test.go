package catalog

import "testing"

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.All()) == 0 {
		t.Fatal("catalog is empty")
	}

	oats, ok := c.ByID("oats")
	if !ok {
		t.Fatal("oats not found")
	}
	if oats.Name != "Oats" {
		t.Errorf("name = %q, want %q", oats.Name, "Oats")
	}
	if oats.Category != "Grains" {
		t.Errorf("category = %q, want %q", oats.Category, "Grains")
	}
	if oats.Calories <= 0 {
		t.Errorf("calories = %v, want > 0", oats.Calories)
	}

	if _, ok := c.ByID("no-such-food"); ok {
		t.Error("ByID returned a hit for an unknown id")
	}
}

func TestSearch(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	hits := c.Search("YOGURT")
	if len(hits) != 1 || hits[0].ID != "greek-yogurt" {
		t.Errorf("Search(YOGURT) = %v, want greek-yogurt", hits)
	}

	if got := c.Search("zzzz"); len(got) != 0 {
		t.Errorf("Search(zzzz) = %v, want none", got)
	}

	if got := c.Search("  "); len(got) != len(c.All()) {
		t.Errorf("blank search returned %d entries, want all %d", len(got), len(c.All()))
	}
}

func TestCategories(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cats := c.Categories()
	if len(cats) == 0 {
		t.Fatal("no categories")
	}
	for i := 1; i < len(cats); i++ {
		if cats[i-1] >= cats[i] {
			t.Fatalf("categories not sorted: %v", cats)
		}
	}
	found := false
	for _, cat := range cats {
		if cat == "Vegetables" {
			found = true
		}
	}
	if !found {
		t.Errorf("Vegetables missing from %v", cats)
	}
}

func TestGuessCategory(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Spinach", "Vegetables"},
		{"  salmon  ", "Protein"},
		{"grilled chicken thighs", "Protein"},
		{"wild blueberries", "Fruits"},
		{"steel cut oatmeal", "Grains"},
		{"sunflower oil", "Oils"},
		{"herbal tea", "Beverages"},
		{"mystery casserole", "Other"},
		{"", "Other"},
	}
	for _, tc := range cases {
		if got := GuessCategory(tc.name); got != tc.want {
			t.Errorf("GuessCategory(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
