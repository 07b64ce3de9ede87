package model

// CurrentProfileID is the fixed primary key of the single active profile row.
const CurrentProfileID = "current"

// Profile is the user's physiological snapshot. Zero values mean "not set".
type Profile struct {
	ID             string  `json:"id"`
	Gender         string  `json:"gender"` // "male" | "female" | ""
	Age            int     `json:"age"`
	HeightCm       float64 `json:"height"`
	WeightKg       float64 `json:"weight"`
	BodyFatPercent float64 `json:"bodyFatPercentage"`
	BMR            float64 `json:"bmr"`
	ActiveCalories float64 `json:"activeCalories"`
}

// ProfileHistoryEntry is an append-only snapshot taken whenever the
// profile is saved. Keyed by timestamp, queried by date.
type ProfileHistoryEntry struct {
	Timestamp int64   `json:"timestamp"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Profile   Profile `json:"profileData"`
}
