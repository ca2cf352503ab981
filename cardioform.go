// Package cardioform is the top-level entry point for embedding the heart
// disease risk form: field definitions, the prediction client, one-shot
// analysis and the built-in HTML renderer.
package cardioform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-cardioform/pkg/controller"
	"github.com/goliatone/go-cardioform/pkg/model"
	"github.com/goliatone/go-cardioform/pkg/predict"
	"github.com/goliatone/go-cardioform/pkg/render"
	"github.com/goliatone/go-cardioform/pkg/renderers/vanilla"
)

// FieldDefinition aliases model.FieldDefinition.
type FieldDefinition = model.FieldDefinition

// Summary aliases model.Summary.
type Summary = model.Summary

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Outcome aliases controller.Outcome.
type Outcome = controller.Outcome

// Analysis is the state of a form after one submission.
type Analysis struct {
	Outcome Outcome
	// Banner is the error message shown, empty when none.
	Banner string
	// Summary is set when a result was rendered.
	Summary *Summary
	Page    *render.Page
}

// NewPredictor constructs the HTTP prediction client.
func NewPredictor(baseURL string, options ...predict.Option) (*predict.Client, error) {
	return predict.New(baseURL, options...)
}

// DefaultFields returns the built-in seven feature definitions.
func DefaultFields() model.FieldSet {
	return model.DefaultFields()
}

// Analyze fills a form with values (keyed by field id), submits it once and
// reports what the form shows afterwards. The error is nil whenever the form
// itself displays the failure.
func Analyze(ctx context.Context, predictor predict.Predictor, values map[string]string) (Analysis, error) {
	page := render.NewPage("", values)
	ctrl, err := controller.New(model.DefaultFields(), predictor, page.Ports())
	if err != nil {
		return Analysis{}, err
	}
	if err := ctrl.Build(); err != nil {
		return Analysis{}, err
	}

	outcome, _ := ctrl.Submit(ctx)
	analysis := Analysis{Outcome: outcome, Summary: page.Result.Summary, Page: page}
	if page.Banner.Visible {
		analysis.Banner = page.Banner.Message
	}
	return analysis, nil
}

// RenderHTML renders page with the built-in vanilla renderer.
func RenderHTML(ctx context.Context, page *render.Page, options RenderOptions) ([]byte, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, page, options)
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet bundle served under /assets/.
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
