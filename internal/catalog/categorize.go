package catalog

import "strings"

// GuessCategory returns the catalog category for a free-form food name.
// It performs case-insensitive matching: exact match first, then
// substring match. Falls back to "Other" if no match is found.
func GuessCategory(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "Other"
	}

	// Phase 1: exact match
	if cat, ok := exactMatch[name]; ok {
		return cat
	}

	// Phase 2: substring match (ordered longer/more-specific first)
	for _, entry := range substringMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}

	return "Other"
}

var exactMatch = map[string]string{
	// Vegetables
	"spinach":     "Vegetables",
	"kale":        "Vegetables",
	"broccoli":    "Vegetables",
	"carrot":      "Vegetables",
	"carrots":     "Vegetables",
	"tomato":      "Vegetables",
	"tomatoes":    "Vegetables",
	"cucumber":    "Vegetables",
	"zucchini":    "Vegetables",
	"cauliflower": "Vegetables",
	"asparagus":   "Vegetables",
	"bell pepper": "Vegetables",
	"onion":       "Vegetables",
	"garlic":      "Vegetables",
	"ginger":      "Vegetables",

	// Fruits
	"apple":        "Fruits",
	"apples":       "Fruits",
	"banana":       "Fruits",
	"bananas":      "Fruits",
	"orange":       "Fruits",
	"blueberries":  "Fruits",
	"strawberries": "Fruits",
	"raspberries":  "Fruits",
	"avocado":      "Fruits",
	"mango":        "Fruits",
	"kiwi":         "Fruits",

	// Protein
	"chicken breast": "Protein",
	"salmon":         "Protein",
	"tuna":           "Protein",
	"egg":            "Protein",
	"eggs":           "Protein",
	"tofu":           "Protein",
	"beef":           "Protein",
	"shrimp":         "Protein",

	// Grains
	"rice":       "Grains",
	"brown rice": "Grains",
	"oats":       "Grains",
	"quinoa":     "Grains",
	"bread":      "Grains",
	"pasta":      "Grains",

	// Dairy
	"milk":         "Dairy",
	"yogurt":       "Dairy",
	"greek yogurt": "Dairy",
	"cheese":       "Dairy",

	// Nuts & Seeds
	"almonds":    "Nuts & Seeds",
	"walnuts":    "Nuts & Seeds",
	"chia seeds": "Nuts & Seeds",
	"flaxseed":   "Nuts & Seeds",

	// Oils
	"olive oil":   "Oils",
	"coconut oil": "Oils",
}

var substringMatches = []struct {
	keyword  string
	category string
}{
	{"chicken", "Protein"},
	{"salmon", "Protein"},
	{"fish", "Protein"},
	{"turkey", "Protein"},
	{"pork", "Protein"},
	{"lentil", "Protein"},
	{"bean", "Protein"},
	{"yogurt", "Dairy"},
	{"cheese", "Dairy"},
	{"milk", "Dairy"},
	{"berr", "Fruits"},
	{"melon", "Fruits"},
	{"grape", "Fruits"},
	{"pepper", "Vegetables"},
	{"lettuce", "Vegetables"},
	{"cabbage", "Vegetables"},
	{"mushroom", "Vegetables"},
	{"potato", "Vegetables"},
	{"rice", "Grains"},
	{"oat", "Grains"},
	{"wheat", "Grains"},
	{"noodle", "Grains"},
	{"almond", "Nuts & Seeds"},
	{"walnut", "Nuts & Seeds"},
	{"seed", "Nuts & Seeds"},
	{"nut", "Nuts & Seeds"},
	{"oil", "Oils"},
	{"tea", "Beverages"},
	{"coffee", "Beverages"},
	{"juice", "Beverages"},
}
