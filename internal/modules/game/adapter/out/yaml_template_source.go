package out

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mindgym/internal/modules/game/domain"
	gameout "mindgym/internal/modules/game/port/out"
)

//go:embed templates.yaml
var builtinTemplates []byte

// TemplateFileName, when present in the data dir, replaces the built-in
// pathfinder templates.
const TemplateFileName = "pathfinder.yaml"

type templateFile struct {
	Templates []domain.Template `yaml:"templates"`
}

type YAMLTemplateSource struct {
	dataDir string
}

var _ gameout.TemplateSource = YAMLTemplateSource{}

func NewYAMLTemplateSource(dataDir string) YAMLTemplateSource {
	return YAMLTemplateSource{dataDir: dataDir}
}

func (s YAMLTemplateSource) LoadTemplates(_ context.Context) ([]domain.Template, error) {
	raw := builtinTemplates
	origin := "built-in templates"
	if s.dataDir != "" {
		path := filepath.Join(s.dataDir, TemplateFileName)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			raw, origin = data, path
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	templates, err := decodeTemplates(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", origin, err)
	}
	return templates, nil
}

func decodeTemplates(raw []byte) ([]domain.Template, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var file templateFile
	if err := dec.Decode(&file); err != nil {
		return nil, err
	}
	if len(file.Templates) == 0 {
		return nil, fmt.Errorf("no templates defined")
	}
	for _, t := range file.Templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return file.Templates, nil
}
