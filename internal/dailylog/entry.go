package dailylog

import "time"

type MealType string

const (
	MealTypeBreakfast MealType = "Breakfast"
	MealTypeLunch     MealType = "Lunch"
	MealTypeDinner    MealType = "Dinner"
	MealTypeSnack     MealType = "Snack"
)

func (m MealType) Valid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// Entry is a single daily log record. Workout entries fill Exercise and
// Duration, food entries fill Food, Calories and MealType; the store itself
// does not care which variant it holds.
type Entry struct {
	ID       int64    `json:"id"`
	Exercise string   `json:"exercise,omitempty"`
	Duration int      `json:"duration,omitempty"` // minutes
	Food     string   `json:"food,omitempty"`
	Calories int      `json:"calories,omitempty"`
	MealType MealType `json:"mealType,omitempty"`
}

// entry IDs are timestamp based; injectable for deterministic tests
var entryIDFunc = func() int64 {
	return time.Now().UnixNano()
}
