package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/larderhq/larder/internal/catalog"
	"github.com/larderhq/larder/internal/database"
	"github.com/larderhq/larder/internal/ledger"
	"github.com/larderhq/larder/internal/logging"
	"github.com/larderhq/larder/internal/meallog"
	"github.com/larderhq/larder/internal/nutrition"
	"github.com/larderhq/larder/internal/store"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	logging.Setup(os.Getenv("LARDER_LOG_LEVEL"), os.Getenv("LARDER_LOG_FORMAT"))

	dbPath := os.Getenv("LARDER_DB_PATH")
	if dbPath == "" {
		dbPath = "larder.db"
	}

	date := os.Getenv("LARDER_DATE")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	foods, err := catalog.Load()
	if err != nil {
		log.Fatalf("failed to load food catalog: %v", err)
	}

	pantry := ledger.New(db)
	meals := meallog.New(db, pantry)
	profiles := store.NewProfileStore(db)

	if err := printDay(date, foods, pantry, meals, profiles); err != nil {
		log.Fatalf("summary failed: %v", err)
	}
}

func printDay(date string, foods *catalog.Catalog, pantry *ledger.Ledger, meals *meallog.MealLog, profiles *store.ProfileStore) error {
	entries, err := meals.MealsForDate(date)
	if err != nil {
		return err
	}

	fmt.Printf("Meals for %s\n", date)
	if len(entries) == 0 {
		fmt.Println("  (none logged)")
	}
	for _, e := range entries {
		fmt.Printf("  %-10s %s  %.0fg\n", e.MealType, e.Food.Name, e.QuantityGrams)
	}

	totals := nutrition.TotalIntake(entries)
	ratios := nutrition.MacronutrientRatios(totals.Protein, totals.Carbohydrate, totals.Fat)
	fmt.Printf("\nIntake: %.0f kcal  (protein %.1fg / carbs %.1fg / fat %.1fg)\n",
		totals.Calories, totals.Protein, totals.Carbohydrate, totals.Fat)
	fmt.Printf("Energy ratios: protein %.0f%%  carbs %.0f%%  fat %.0f%%\n",
		ratios.Protein, ratios.Carbohydrate, ratios.Fat)
	fmt.Printf("Anti-inflammatory share: %.0f%%\n", nutrition.AntiInflammatoryShare(entries))

	profile, err := profiles.Current()
	if err != nil {
		return err
	}
	if profile != nil {
		balance := nutrition.EnergyBalance(*profile, totals)
		fmt.Printf("Energy balance: %+.0f kcal\n", balance)
		if target, met := nutrition.ProteinTarget(totals.Protein, profile.WeightKg); target > 0 {
			status := "below target"
			if met {
				status = "on target"
			}
			fmt.Printf("Protein: %.1fg of %.1fg (%s)\n", totals.Protein, target, status)
		}
	}

	batches, err := pantry.Batches()
	if err != nil {
		return err
	}
	fmt.Println("\nPantry stock:")
	if len(batches) == 0 {
		fmt.Println("  (empty)")
	}
	for _, b := range batches {
		name := b.FoodID
		if f, ok := foods.ByID(b.FoodID); ok {
			name = f.Name
		}
		fmt.Printf("  #%d %-16s remaining %.1f units (%.0fg)", b.ID, name, b.RemainingQuantityInUnits, b.RemainingWeightInGrams)
		if b.SpoiledQuantityInUnits > 0 {
			fmt.Printf("  spoiled %.1f", b.SpoiledQuantityInUnits)
		}
		fmt.Println()
	}
	return nil
}
