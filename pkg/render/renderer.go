package render

import (
	"context"
)

// Renderer serialises a Page for one surface (HTML, terminal text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page *Page, options RenderOptions) ([]byte, error)
}
