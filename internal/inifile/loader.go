// Package inifile provides the INI implementation of config.Loader, reading
// the configuration format the analysis pipelines have always shipped:
//
//	[ahope-tmpltbank]
//	tmpltbank-method = PREGENERATED_BANK
//	tmpltbank-write-psd-file
//
// Option names are case-insensitive and stored lower-cased. Keys without a
// value are presence flags; their stored value is not meaningful.
package inifile

import (
	"context"
	"fmt"

	"github.com/go-ini/ini"
	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/ctxlog"
)

// Loader reads one or more INI files into a config.Model.
type Loader struct {
	opts ini.LoadOptions
}

// NewLoader creates a loader with the pipeline's INI dialect.
func NewLoader() *Loader {
	return &Loader{opts: ini.LoadOptions{
		AllowBooleanKeys:         true,
		InsensitiveKeys:          true,
		SpaceBeforeInlineComment: true,
	}}
}

// Load parses the files in order; later files override earlier options.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("INI loader started.", "path_count", len(paths))

	model := config.NewModel()
	for _, p := range paths {
		f, err := ini.LoadSources(l.opts, p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse INI file %s: %w", p, err)
		}
		model.Merge(toModel(f))
		logger.Debug("Loaded INI file.", "file", p)
	}

	logger.Debug("INI loading complete.", "sections", len(model.Sections))
	return model, nil
}

// LoadBytes parses a single in-memory INI document.
func (l *Loader) LoadBytes(src []byte) (*config.Model, error) {
	f, err := ini.LoadSources(l.opts, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI data: %w", err)
	}
	return toModel(f), nil
}

func toModel(f *ini.File) *config.Model {
	model := config.NewModel()
	for _, sec := range f.Sections() {
		keys := sec.Keys()
		if sec.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}
		model.AddSection(sec.Name())
		for _, k := range keys {
			model.Set(sec.Name(), k.Name(), k.Value())
		}
	}
	return model
}
