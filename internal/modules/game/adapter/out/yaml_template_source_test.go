package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gameout "mindgym/internal/modules/game/adapter/out"
)

func TestBuiltinTemplatesLoad(t *testing.T) {
	t.Parallel()
	templates, err := gameout.NewYAMLTemplateSource(t.TempDir()).LoadTemplates(context.Background())
	if err != nil {
		t.Fatalf("load built-in templates: %v", err)
	}
	if len(templates) != 6 {
		t.Fatalf("expected 6 built-in templates, got %d", len(templates))
	}
	if templates[0].Name != "straight-road" || len(templates[0].Tiles) != 4 {
		t.Fatalf("unexpected first template: %+v", templates[0])
	}
	if templates[0].Tiles[0].ID != 1 || templates[0].Tiles[0].Type != "endpoint" {
		t.Fatalf("unexpected first tile: %+v", templates[0].Tiles[0])
	}
}

func TestDataDirTemplatesOverrideBuiltins(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := `templates:
  - name: short
    tiles:
      - {id: 1, type: endpoint, open_edges: [right]}
      - {id: 2, type: endpoint, open_edges: [left]}
`
	if err := os.WriteFile(filepath.Join(dir, gameout.TemplateFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write templates: %v", err)
	}
	templates, err := gameout.NewYAMLTemplateSource(dir).LoadTemplates(context.Background())
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	if len(templates) != 1 || templates[0].Name != "short" {
		t.Fatalf("expected override template, got %+v", templates)
	}
}

func TestInvalidTemplateFilesAreRejected(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"unknown field": "templates:\n  - name: x\n    colour: red\n",
		"empty":         "templates: []\n",
		"one tile":      "templates:\n  - name: lonely\n    tiles:\n      - {id: 1, type: endpoint, open_edges: [right]}\n",
		"repeated id":   "templates:\n  - name: twin\n    tiles:\n      - {id: 1, type: endpoint}\n      - {id: 1, type: endpoint}\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, gameout.TemplateFileName), []byte(content), 0o644); err != nil {
				t.Fatalf("write templates: %v", err)
			}
			_, err := gameout.NewYAMLTemplateSource(dir).LoadTemplates(context.Background())
			if err == nil {
				t.Fatalf("expected %s to be rejected", name)
			}
			if !strings.Contains(err.Error(), gameout.TemplateFileName) {
				t.Fatalf("error should name the file, got %v", err)
			}
		})
	}
}
