package wellness

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// DefaultGuidance is used for a focus category without a canned guidance string.
	DefaultGuidance = "Prioritize balanced routines this week."

	// MedicalCaveat is attached to every suggestion.
	MedicalCaveat = "For informational purposes only; not medical guidance."

	noAnomalyNote  = "No strong anomalies detected."
	disclaimerNote = "These are general wellness tips, not medical advice."
)

// CategoryGuidance holds the suggested action for each focus category.
var CategoryGuidance = map[Category]string{
	CategorySleep:     "Aim for consistent bed and wake times plus a 30–60 minute increase in total sleep.",
	CategoryNutrition: "Increase calorie intake with protein-forward meals and steady hydration.",
	CategoryExercise:  "Balance training load with at least one lighter recovery day and easy movement.",
	CategoryFatigue:   "Schedule a lighter training block and include gentle mobility to support recovery.",
}

// FocusCategory returns the category with the lowest score. Ties go to the
// category that comes first in Categories; categories outside Categories are
// considered afterwards in name order. ok is false for an empty map.
func FocusCategory(normalized map[Category]float64) (focus Category, score float64, ok bool) {
	for _, c := range orderedCategories(normalized) {
		v := normalized[c]
		if !ok || v < score {
			focus, score, ok = c, v, true
		}
	}
	return focus, score, ok
}

func orderedCategories(normalized map[Category]float64) []Category {
	ordered := make([]Category, 0, len(normalized))
	known := make(map[Category]bool, len(Categories))
	for _, c := range Categories {
		known[c] = true
		if _, present := normalized[c]; present {
			ordered = append(ordered, c)
		}
	}

	var extra []Category
	for c := range normalized {
		if !known[c] {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(ordered, extra...)
}

// Suggest builds the recommendation for the weakest category. Only the first
// anomaly in detector order is cited, not the most extreme one.
func Suggest(normalized map[Category]float64, anomalies []Anomaly) Suggestion {
	var parts []string

	focus, score, ok := FocusCategory(normalized)
	if ok {
		parts = append(parts, fmt.Sprintf("%s is the lowest this week at %.1f/100.", focus, score))
	}

	if len(anomalies) > 0 {
		first := anomalies[0]
		parts = append(parts, fmt.Sprintf("%s is %s than normal (z-score %.1f).",
			first.Metric, first.Direction, first.ZScore))
	} else {
		parts = append(parts, noAnomalyNote)
	}

	guidance, found := CategoryGuidance[focus]
	if !found {
		guidance = DefaultGuidance
	}
	parts = append(parts, "Suggested action: "+guidance, disclaimerNote)

	return Suggestion{
		Text:    strings.Join(parts, " "),
		Caveats: MedicalCaveat,
	}
}
