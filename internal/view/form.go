package view

import "mapty/workout-tracker/internal/domain"

// FormState mirrors the workout form: hidden until the map is clicked, with
// either the cadence or the elevation row visible depending on the kind.
type FormState struct {
	Visible      bool        `json:"visible"`
	Kind         domain.Kind `json:"type"`
	ExtraField   string      `json:"extraField"`
	FocusedField string      `json:"focusedField,omitempty"`
}

type Form struct {
	state FormState
}

func NewForm() *Form {
	f := &Form{}
	f.SelectKind(domain.KindRunning)
	return f
}

// Show reveals the form and focuses the distance input.
func (f *Form) Show() {
	f.state.Visible = true
	f.state.FocusedField = "distance"
}

// Hide clears and hides the form.
func (f *Form) Hide() {
	f.state.Visible = false
	f.state.FocusedField = ""
}

// SelectKind swaps the cadence and elevation rows.
func (f *Form) SelectKind(kind domain.Kind) {
	f.state.Kind = kind
	if kind == domain.KindCycling {
		f.state.ExtraField = "elevation"
	} else {
		f.state.ExtraField = "cadence"
	}
}

func (f *Form) Snapshot() FormState {
	return f.state
}
