// Package yamlfile provides the YAML implementation of config.Loader. The
// document is a mapping of sections to mappings of scalar options:
//
//	ahope-tmpltbank:
//	  tmpltbank-method: WORKFLOW_INDEPENDENT_IFOS
//	  tmpltbank-write-psd-file:
//
// Scalars are stored exactly as written; a null value is a presence flag.
package yamlfile

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Loader reads YAML configuration files.
type Loader struct{}

// NewLoader creates a YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the files in order; later files override earlier options.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := config.NewModel()
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", p, err)
		}
		m, err := l.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		model.Merge(m)
	}
	return model, nil
}

// LoadBytes decodes a single YAML document.
func (l *Loader) LoadBytes(data []byte) (*config.Model, error) {
	var raw map[string]map[string]*yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode YAML configuration: %w", err)
	}

	model := config.NewModel()
	for section, opts := range raw {
		model.AddSection(section)
		for option, node := range opts {
			value, err := scalar(node)
			if err != nil {
				return nil, fmt.Errorf("section %q option %q: %w", section, option, err)
			}
			model.Set(section, option, value)
		}
	}
	return model, nil
}

func scalar(node *yaml.Node) (string, error) {
	if node == nil {
		return "", nil
	}
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("expected a scalar value at line %d", node.Line)
	}
	if node.Tag == "!!null" {
		return "", nil
	}
	return node.Value, nil
}
