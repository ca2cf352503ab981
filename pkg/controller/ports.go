package controller

import "github.com/goliatone/go-cardioform/pkg/model"

// Form receives the field definitions at build time, in display order.
type Form interface {
	SetLayout(columns int)
	AddField(field model.FieldDefinition)
}

// Inputs exposes the raw text currently entered for each field id.
type Inputs interface {
	Value(id string) string
}

// ErrorBanner shows or hides the single error message area.
type ErrorBanner interface {
	Show(label, message string)
	Clear()
}

// ResultPanel replaces its content with a prediction summary.
type ResultPanel interface {
	Show(summary model.Summary)
}

// Ports groups the handles a Controller writes to and reads from.
type Ports struct {
	Form   Form
	Inputs Inputs
	Errors ErrorBanner
	Result ResultPanel
}

// MapInputs is an Inputs backed by a map, for callers that already hold all
// values (decoded form posts, CLI flags, tests).
type MapInputs map[string]string

// Value implements Inputs.
func (m MapInputs) Value(id string) string {
	return m[id]
}
