package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/ctxlog"
	"github.com/vk/tmpltbank/internal/hcl"
	"github.com/vk/tmpltbank/internal/inifile"
	"github.com/vk/tmpltbank/internal/manifest"
	"github.com/vk/tmpltbank/internal/segment"
	"github.com/vk/tmpltbank/internal/yamlfile"
)

// LoaderFor picks a configuration loader by file extension. Directories are
// read as HCL.
func LoaderFor(path string) (config.Loader, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return hcl.NewLoader(), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".ini", ".cfg", ".conf":
		return inifile.NewLoader(), nil
	case ".yaml", ".yml":
		return yamlfile.NewLoader(), nil
	default:
		return nil, fmt.Errorf("cannot tell the format of configuration file %q", path)
	}
}

// loadConfig reads every configuration path in order. Options of later
// files override those of earlier ones.
func loadConfig(ctx context.Context, paths []string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.NewModel()
	for _, p := range paths {
		loader, err := LoaderFor(p)
		if err != nil {
			return nil, err
		}
		m, err := loader.Load(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("loading configuration %s: %w", p, err)
		}
		logger.Debug("Configuration file loaded.", "path", p, "sections", len(m.Sections))
		model.Merge(m)
	}
	return model, nil
}

// loadSegments reads the science segments, or covers the analysis span for
// every instrument when no file is given.
func loadSegments(path string, ifos []string, span segment.Segment) (map[string]segment.List, error) {
	if path == "" {
		out := make(map[string]segment.List, len(ifos))
		for _, ifo := range ifos {
			out[ifo] = segment.List{span}
		}
		return out, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening science segments: %w", err)
	}
	defer f.Close()

	segs, err := manifest.ReadSegments(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for ifo, list := range segs {
		segs[ifo] = list.Intersect(span)
	}
	return segs, nil
}

func loadDatafind(path string) (artifact.Collection, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening datafind artifacts: %w", err)
	}
	defer f.Close()

	arts, err := manifest.ReadArtifacts(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return arts, nil
}
