package render

import (
	"github.com/goliatone/go-cardioform/pkg/controller"
	"github.com/goliatone/go-cardioform/pkg/model"
)

// FieldView is one built input plus the text currently entered in it.
type FieldView struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Helper      string `json:"helper"`
	Value       string `json:"value"`
}

// Banner is the error banner state.
type Banner struct {
	Visible bool   `json:"visible"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// Show implements controller.ErrorBanner.
func (b *Banner) Show(label, message string) {
	b.Visible = true
	b.Label = label
	b.Message = message
}

// Clear implements controller.ErrorBanner.
func (b *Banner) Clear() {
	*b = Banner{}
}

// ResultSlot holds the rendered result, replaced wholesale on each Show.
type ResultSlot struct {
	Summary *model.Summary `json:"summary"`
}

// Show implements controller.ResultPanel.
func (r *ResultSlot) Show(summary model.Summary) {
	r.Summary = &summary
}

// Page is the in-memory document a controller writes to and renderers
// serialise. It plays the role the DOM plays in a browser.
type Page struct {
	Title   string            `json:"title"`
	Columns int               `json:"columns"`
	Fields  []FieldView       `json:"fields"`
	Banner  Banner            `json:"banner"`
	Result  ResultSlot        `json:"result"`
	Hidden  map[string]string `json:"-"`

	values map[string]string
}

// NewPage creates a page whose inputs hold values (keyed by field id).
func NewPage(title string, values map[string]string) *Page {
	copied := make(map[string]string, len(values))
	for key, value := range values {
		copied[key] = value
	}
	return &Page{Title: title, values: copied}
}

// SetLayout implements controller.Form.
func (p *Page) SetLayout(columns int) {
	p.Columns = columns
}

// AddField implements controller.Form.
func (p *Page) AddField(field model.FieldDefinition) {
	p.Fields = append(p.Fields, FieldView{
		ID:          field.ID,
		Label:       field.Label,
		Placeholder: field.Placeholder,
		Helper:      field.Helper,
		Value:       p.values[field.ID],
	})
}

// Value implements controller.Inputs.
func (p *Page) Value(id string) string {
	return p.values[id]
}

// Ports exposes the page as controller ports.
func (p *Page) Ports() controller.Ports {
	return controller.Ports{
		Form:   p,
		Inputs: p,
		Errors: &p.Banner,
		Result: &p.Result,
	}
}
