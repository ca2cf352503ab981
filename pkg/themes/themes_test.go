package themes_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardioform/pkg/themes"
)

func TestSelectorDefaults(t *testing.T) {
	selector, err := themes.NewSelector("", "")
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != themes.DefaultTheme || selection.Variant != "" {
		t.Fatalf("unexpected selection %s/%s", selection.Theme, selection.Variant)
	}

	if _, err := selector.Select("missing", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if _, err := selector.Select("", "sepia"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
}

func TestRendererConfigMergesVariant(t *testing.T) {
	selector, err := themes.NewSelector(themes.DefaultTheme, "dark")
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	cfg := themes.RendererConfig(selection)
	if cfg == nil {
		t.Fatalf("expected renderer config")
	}
	if cfg.Variant != "dark" {
		t.Fatalf("expected dark variant, got %q", cfg.Variant)
	}
	if cfg.Tokens["surface"] != "#111827" || cfg.Tokens["risk-low"] != "#2e7d32" {
		t.Fatalf("tokens not merged: %v", cfg.Tokens)
	}
	if cfg.CSSVars["--surface"] != "#111827" {
		t.Fatalf("css vars not derived: %v", cfg.CSSVars)
	}
	if got := cfg.AssetURL(themes.StylesheetAsset); got != "/assets/cardioform.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
}

func TestCSSVarsStyleIsSorted(t *testing.T) {
	got := themes.CSSVarsStyle(map[string]string{"--b": "2", "--a": "1"})
	if diff := cmp.Diff("--a: 1; --b: 2", got); diff != "" {
		t.Fatalf("style mismatch (-want +got):\n%s", diff)
	}
	if themes.CSSVarsStyle(nil) != "" {
		t.Fatalf("expected empty style")
	}
}
