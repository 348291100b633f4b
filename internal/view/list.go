package view

import (
	"math"

	"mapty/workout-tracker/internal/domain"
)

// Summary is one rendered list item.
type Summary struct {
	ID            string      `json:"id"`
	Kind          domain.Kind `json:"type"`
	Description   string      `json:"description"`
	Icon          string      `json:"icon"`
	DistanceKm    float64     `json:"distance"`
	DurationMin   float64     `json:"duration"`
	Derived       float64     `json:"derived"`
	DerivedUnit   string      `json:"derivedUnit"`
	Secondary     float64     `json:"secondary"`
	SecondaryUnit string      `json:"secondaryUnit"`
}

// SummaryFor renders a workout. The derived value is shown to one decimal.
func SummaryFor(w *domain.Workout) Summary {
	secondary, unit := w.Secondary()
	return Summary{
		ID:            w.ID,
		Kind:          w.Kind,
		Description:   w.Description,
		Icon:          w.Icon(),
		DistanceKm:    w.DistanceKm,
		DurationMin:   w.DurationMin,
		Derived:       math.Round(w.Derived()*10) / 10,
		DerivedUnit:   w.DerivedUnit(),
		Secondary:     secondary,
		SecondaryUnit: unit,
	}
}

// List keeps rendered items in render order.
type List struct {
	items []Summary
}

func NewList() *List {
	return &List{}
}

func (l *List) Render(s Summary) {
	l.items = append(l.items, s)
}

func (l *List) Clear() {
	l.items = nil
}

func (l *List) Snapshot() []Summary {
	out := make([]Summary, len(l.items))
	copy(out, l.items)
	return out
}
