package tui

import (
	"context"
	"errors"

	"github.com/goliatone/go-cardioform/pkg/render"
)

// Renderer implements render.Renderer for terminal output. It prints a page
// snapshot; interactive collection lives in Session.
type Renderer struct {
	styles *Styles
}

var _ render.Renderer = (*Renderer)(nil)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithStyles fixes the styles instead of deriving them from the theme.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = &styles
	}
}

// New constructs a TUI renderer.
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

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render prints the page as terminal text. Theme tokens, when present, feed
// the colour palette.
func (r *Renderer) Render(ctx context.Context, page *render.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page == nil {
		return nil, errors.New("tui: page is nil")
	}

	styles := r.stylesFor(opts)
	return []byte(FormatPage(styles, page)), nil
}

func (r *Renderer) stylesFor(opts render.RenderOptions) Styles {
	if r.styles != nil {
		return *r.styles
	}
	if opts.Theme != nil {
		return NewStyles(opts.Theme.Tokens)
	}
	return NewStyles(nil)
}
