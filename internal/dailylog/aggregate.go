package dailylog

// BreakdownSlice is a single (label, value) pair of a proportional breakdown,
// e.g. one slice of a calorie pie chart.
type BreakdownSlice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Total sums the selected numeric field over the entries; 0 for an empty list.
func Total(entries []Entry, value func(Entry) int) int {
	total := 0
	for _, e := range entries {
		total += value(e)
	}
	return total
}

// Breakdown maps every entry to a (label, value) pair, preserving input
// order. Color assignment and rendering are the client's concern.
func Breakdown(entries []Entry, label func(Entry) string, value func(Entry) int) []BreakdownSlice {
	slices := make([]BreakdownSlice, 0, len(entries))
	for _, e := range entries {
		slices = append(slices, BreakdownSlice{
			Label: label(e),
			Value: value(e),
		})
	}
	return slices
}

func EntryCalories(e Entry) int { return e.Calories }

func EntryDuration(e Entry) int { return e.Duration }

func EntryFood(e Entry) string { return e.Food }

func EntryExercise(e Entry) string { return e.Exercise }
