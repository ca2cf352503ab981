package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use without
// mutating the page the controller wrote to.
type RenderOptions struct {
	// Action is the URL the HTML form posts back to.
	Action string
	// Hidden carries extra hidden inputs (submission token, CSRF) merged on
	// top of the page's own hidden fields.
	Hidden []HiddenField
	// Theme is the resolved go-theme configuration; nil renders unthemed.
	Theme *theme.RendererConfig
}
