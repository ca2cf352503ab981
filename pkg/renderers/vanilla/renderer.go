package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-cardioform/pkg/render"
	rendertemplate "github.com/goliatone/go-cardioform/pkg/render/template"
	"github.com/goliatone/go-cardioform/pkg/render/template/pongo"
	"github.com/goliatone/go-cardioform/pkg/themes"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir overlays templates from a directory on disk. The directory
// mirrors the bundle layout (templates/page.tmpl, templates/components/...);
// any file it lacks is read from the template FS.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an external stylesheet. It takes precedence over the
// theme's stylesheet asset.
func WithStylesheet(url string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(url)
	}
}

// WithDefaultStyles inlines the bundled stylesheet into the page head.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer writes a Page as a standalone HTML document.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	stylesheet   string
	inlineStyles string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithBaseDir(cfg.templatesDir),
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{templates: renderer, stylesheet: cfg.stylesheet}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type fieldView struct {
	render.FieldView
	HelperHTML string `json:"helper_html"`
}

type pageView struct {
	*render.Page
	Fields []fieldView `json:"fields"`
}

func (r *Renderer) Render(_ context.Context, page *render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("vanilla renderer: template renderer is nil")
	}
	if page == nil {
		return nil, errors.New("vanilla renderer: page is nil")
	}

	view := pageView{Page: page, Fields: make([]fieldView, 0, len(page.Fields))}
	for _, field := range page.Fields {
		view.Fields = append(view.Fields, fieldView{FieldView: field, HelperHTML: helperHTML(field.Helper)})
	}

	data := map[string]any{
		"page":          view,
		"action":        options.Action,
		"hidden":        render.SortedHiddenFields(render.MergeHiddenFields(page.Hidden, options.Hidden...)),
		"grid_class":    gridClass(page.Columns),
		"stylesheet":    r.stylesheet,
		"inline_styles": r.inlineStyles,
	}

	name := pageTemplate
	if cfg := options.Theme; cfg != nil {
		if partial := strings.TrimSpace(cfg.Partials[pagePartial]); partial != "" {
			name = partial
		}
		if r.stylesheet == "" && cfg.AssetURL != nil {
			data["stylesheet"] = cfg.AssetURL(themes.StylesheetAsset)
		}
		data["css_vars"] = themes.CSSVarsStyle(cfg.CSSVars)
		data["theme_variant"] = cfg.Variant
	}

	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
