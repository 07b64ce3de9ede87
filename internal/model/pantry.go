package model

// PantryBatch is one stocked lot of a food. The id is assigned by the
// store in arrival order, so ascending id is FIFO order.
//
// Invariant, on both axes independently:
//
//	remaining + consumed + spoiled == initial
type PantryBatch struct {
	ID                       int64   `json:"id"`
	FoodID                   string  `json:"food_id"`
	InitialQuantityInUnits   float64 `json:"initial_quantity_in_units"`
	InitialWeightInGrams     float64 `json:"initial_weight_in_grams"`
	CalculatedGramsPerUnit   float64 `json:"calculated_grams_per_unit"`
	RemainingQuantityInUnits float64 `json:"remaining_quantity_in_units"`
	RemainingWeightInGrams   float64 `json:"remaining_weight_in_grams"`
	ConsumedQuantityInUnits  float64 `json:"consumed_quantity_in_units"`
	ConsumedWeightInGrams    float64 `json:"consumed_weight_in_grams"`
	SpoiledQuantityInUnits   float64 `json:"spoiled_quantity_in_units"`
	SpoiledWeightInGrams     float64 `json:"spoiled_weight_in_grams"`
	CreatedAt                int64   `json:"created_at"`
}

// Deduction records exactly how much one meal log took from one batch.
// A meal entry stores its deductions so deletion can put the stock back.
type Deduction struct {
	BatchID       int64   `json:"batchId"`
	ConsumedUnits float64 `json:"consumedUnits"`
	ConsumedGrams float64 `json:"consumedGrams"`
}
