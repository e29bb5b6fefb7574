package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/ctxlog"
	"github.com/vk/tmpltbank/internal/executables"
	"github.com/vk/tmpltbank/internal/inmemorytopology"
	"github.com/vk/tmpltbank/internal/manifest"
	"github.com/vk/tmpltbank/internal/tmpltbank"
	"github.com/vk/tmpltbank/internal/workflow"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. Logs go to logW;
// the manifest goes to outW when the manifest path is "-".
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// Run loads everything, runs the template bank stage and writes the manifest.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "config_paths", a.config.ConfigPaths)

	model, err := loadConfig(ctx, a.config.ConfigPaths)
	if err != nil {
		return err
	}
	resolver := config.NewResolver(model)

	graph := inmemorytopology.New()
	wf, err := workflow.New(resolver, graph)
	if err != nil {
		return fmt.Errorf("setting up workflow: %w", err)
	}
	a.logger.Info("Workflow configured.", "instruments", wf.Ifos, "analysis_time", wf.AnalysisTime.String())

	segments, err := loadSegments(a.config.SegmentsPath, wf.Ifos, wf.AnalysisTime)
	if err != nil {
		return err
	}
	datafind, err := loadDatafind(a.config.DatafindPath)
	if err != nil {
		return err
	}

	banks, err := tmpltbank.Setup(ctx, wf, tmpltbank.Request{
		ScienceSegments: segments,
		Datafind:        datafind,
		OutputDir:       a.config.OutputDir,
		Tags:            a.config.Tags,
	})
	if err != nil {
		return err
	}

	method, _ := resolver.GetTagged(executables.StageTemplateBank, "tmpltbank-method", a.config.Tags)
	m, err := manifest.Build(ctx, graph, executables.SectionTemplateBank, strings.TrimSpace(method), a.config.Tags, banks)
	if err != nil {
		return err
	}
	if err := a.writeManifest(m); err != nil {
		return err
	}

	a.logger.Info("Template bank stage planned.", "banks", len(banks), "jobs", len(m.Jobs), "manifest", a.config.ManifestPath)
	return nil
}

func (a *App) writeManifest(m *manifest.Manifest) error {
	if a.config.ManifestPath == "-" {
		return manifest.Write(a.outW, m)
	}
	f, err := os.Create(a.config.ManifestPath)
	if err != nil {
		return fmt.Errorf("creating manifest: %w", err)
	}
	if err := manifest.Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
