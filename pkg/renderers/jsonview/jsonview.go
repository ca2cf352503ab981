// Package jsonview renders a page as JSON for API clients that post the form
// and want the banner or result back as data.
package jsonview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-cardioform/pkg/render"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithIndent pretty-prints output with the given indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer implements render.Renderer for application/json.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

type rendererTheme struct {
	Name    string            `json:"name"`
	Variant string            `json:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens,omitempty"`
	CSSVars map[string]string `json:"css_vars,omitempty"`
}

type document struct {
	*render.Page
	Action string               `json:"action,omitempty"`
	Hidden []render.HiddenField `json:"hidden,omitempty"`
	Theme  *rendererTheme       `json:"theme,omitempty"`
}

func (r *Renderer) Render(_ context.Context, page *render.Page, options render.RenderOptions) ([]byte, error) {
	if page == nil {
		return nil, errors.New("jsonview: page is nil")
	}

	doc := document{
		Page:   page,
		Action: options.Action,
		Hidden: render.SortedHiddenFields(render.MergeHiddenFields(page.Hidden, options.Hidden...)),
	}
	if cfg := options.Theme; cfg != nil {
		doc.Theme = &rendererTheme{
			Name:    cfg.Theme,
			Variant: cfg.Variant,
			Tokens:  cfg.Tokens,
			CSSVars: cfg.CSSVars,
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if r.indent != "" {
		enc.SetIndent("", r.indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("jsonview: encode page: %w", err)
	}
	return buf.Bytes(), nil
}
