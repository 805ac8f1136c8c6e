package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"reqctl/internal/ports"
	"reqctl/internal/types"
)

type OverridesFileAdapter struct{}

func NewOverridesFileAdapter() OverridesFileAdapter {
	return OverridesFileAdapter{}
}

// Load reads override directives from a YAML file. An empty path means
// no overrides.
func (a OverridesFileAdapter) Load(path string) ([]types.OverrideDirective, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("overrides file not found").
			WithCause(err)
	}
	var file struct {
		Overrides []types.OverrideDirective `yaml:"overrides"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse overrides yaml").
			WithCause(err)
	}
	return file.Overrides, nil
}

var _ ports.OverridesPort = OverridesFileAdapter{}
