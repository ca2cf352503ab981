package pongo_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-cardioform/pkg/render/template/pongo"
	"github.com/goliatone/go-cardioform/pkg/testsupport"
)

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tmpl": {Data: []byte("{{ name|cardio_shout }}")},
		"struct.tmpl":     {Data: []byte("{{ field.id }}:{{ field.label|trim }}")},
		"escape.tmpl":     {Data: []byte("{{ message }}")},
	}

	engine, err := pongo.New(pongo.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if result != "Hello Ada!" {
		t.Fatalf("unexpected result %q", result)
	}
	if written != result {
		t.Fatalf("writer mismatch: %q vs %q", written, result)
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("cardio_shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("cardio_shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngineStructsUseJSONNames(t *testing.T) {
	engine := newEngine(t)

	type field struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	result, err := engine.RenderTemplate("struct", map[string]any{"field": field{ID: "age", Label: "  Age "}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "age:Age" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngineEscapesByDefault(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("escape", map[string]any{"message": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(result, "<b>") {
		t.Fatalf("expected escaped output, got %q", result)
	}
}

func TestEngineRenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ a }}+{{ b }}", map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "1+2" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}
