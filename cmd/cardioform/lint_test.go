package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "absent.env"), "--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLintAcceptsMatchingFields(t *testing.T) {
	path := filepath.Join("..", "..", "pkg", "model", "fields.yaml")
	if _, _, err := runRoot(t, "lint", path); err != nil {
		t.Fatalf("lint: %v", err)
	}
}

func TestLintReportsMismatch(t *testing.T) {
	dir := t.TempDir()
	contract := filepath.Join(dir, "api.yaml")
	doc := `openapi: 3.0.3
info:
  title: Reduced
  version: 1.0.0
paths:
  /predict:
    post:
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                age:
                  type: number
                sex:
                  type: integer
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                type: object
`
	if err := os.WriteFile(contract, []byte(doc), 0o644); err != nil {
		t.Fatalf("write contract: %v", err)
	}

	fields := filepath.Join("..", "..", "pkg", "model", "fields.yaml")
	_, stderr, err := runRoot(t, "lint", "--contract", contract, fields)
	if err == nil {
		t.Fatalf("expected lint failure")
	}
	if !strings.Contains(stderr, "not in request schema") || !strings.Contains(stderr, "cholesterol") {
		t.Fatalf("unexpected report %q", stderr)
	}
}

func TestRenderWritesTextForm(t *testing.T) {
	stdout, _, err := runRoot(t, "render", "--renderer", "tui")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(stdout, "Heart Disease Risk Assessment") || !strings.Contains(stdout, "Cholesterol: -") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
}
