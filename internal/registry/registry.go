package registry

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"

	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/ctxlog"
	"github.com/vk/tmpltbank/internal/executables"
)

var (
	// ErrUnknownExecutable is returned when a configured program has no
	// strategy in the table consulted.
	ErrUnknownExecutable = errors.New("unknown executable")
	// ErrUnsupportedExecutable is returned when a known program cannot do
	// what the stage asks of it.
	ErrUnsupportedExecutable = errors.New("unsupported executable")
)

// Executable identifies a supported program.
type Executable string

const (
	LegacyTmpltbank Executable = executables.LegacyTmpltbankName
	GeomNonspinBank Executable = executables.GeomNonspinBankName
	LegacyInspiral  Executable = executables.LegacyInspiralName
	PyCBCInspiral   Executable = executables.PyCBCInspiralName

	// FrameTmpltbank is the frame-only bank generator. It has no strategy;
	// it is named so that no-data stages can reject it explicitly.
	FrameTmpltbank Executable = "lalapps_tmpltbank"
)

// Factory creates a job for one instrument.
type Factory func(cfg *config.Resolver, instrument, outputDir string, tags []string, opts executables.Options) (executables.Job, error)

// NoDataFactory creates a job for one instrument that reads no data.
type NoDataFactory func(cfg *config.Resolver, instrument, outputDir string, tags []string, opts executables.Options) (executables.NoDataJob, error)

// Strategy is a resolved table entry.
type Strategy struct {
	Executable Executable
	create     Factory
	noData     NoDataFactory
}

// CreateJob creates a job for instrument writing into outputDir.
func (s Strategy) CreateJob(cfg *config.Resolver, instrument, outputDir string, tags []string, opts executables.Options) (executables.Job, error) {
	job, err := s.create(cfg, instrument, outputDir, tags, opts)
	if err != nil {
		return nil, fmt.Errorf("creating %s job for %s: %w", s.Executable, instrument, err)
	}
	return job, nil
}

// SupportsNoData reports whether the program can run without input data.
func (s Strategy) SupportsNoData() bool { return s.noData != nil }

// CreateNoDataJob creates a job for instrument that reads no data.
func (s Strategy) CreateNoDataJob(cfg *config.Resolver, instrument, outputDir string, tags []string, opts executables.Options) (executables.NoDataJob, error) {
	if s.noData == nil {
		return nil, fmt.Errorf("%w: %s cannot generate template banks without data", ErrUnsupportedExecutable, s.Executable)
	}
	job, err := s.noData(cfg, instrument, outputDir, tags, opts)
	if err != nil {
		return nil, fmt.Errorf("creating no-data %s job for %s: %w", s.Executable, instrument, err)
	}
	return job, nil
}

// Registry is one closed table of strategies.
type Registry struct {
	kind       string
	strategies map[Executable]Factory
	noData     map[Executable]NoDataFactory
	frameOnly  map[Executable]struct{}
}

// New creates an empty table. kind names the table in error messages.
func New(kind string) *Registry {
	return &Registry{
		kind:       kind,
		strategies: make(map[Executable]Factory),
		noData:     make(map[Executable]NoDataFactory),
		frameOnly:  make(map[Executable]struct{}),
	}
}

// Register adds a strategy. Registering a name twice is a programming error.
func (r *Registry) Register(exe Executable, f Factory) {
	if _, exists := r.strategies[exe]; exists {
		panic(fmt.Sprintf("%s executable '%s' already registered", r.kind, exe))
	}
	r.strategies[exe] = f
}

// RegisterNoData adds the no-data constructor of an already registered
// program.
func (r *Registry) RegisterNoData(exe Executable, f NoDataFactory) {
	if _, exists := r.strategies[exe]; !exists {
		panic(fmt.Sprintf("%s executable '%s' must be registered before its no-data constructor", r.kind, exe))
	}
	if _, exists := r.noData[exe]; exists {
		panic(fmt.Sprintf("%s executable '%s' already has a no-data constructor", r.kind, exe))
	}
	r.noData[exe] = f
}

// RegisterFrameOnly names a program that only works on frame data and has
// no strategy of its own.
func (r *Registry) RegisterFrameOnly(exe Executable) {
	r.frameOnly[exe] = struct{}{}
}

// Names lists the registered programs in sorted order.
func (r *Registry) Names() []Executable {
	names := make([]Executable, 0, len(r.strategies))
	for exe := range r.strategies {
		names = append(names, exe)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Resolve finds the strategy for a configured executable path.
func (r *Registry) Resolve(ctx context.Context, configured string) (Strategy, error) {
	name := Executable(path.Base(configured))
	f, ok := r.strategies[name]
	if !ok {
		return Strategy{}, fmt.Errorf("%w: no %s strategy exists for %q (known: %v)", ErrUnknownExecutable, r.kind, configured, r.Names())
	}
	ctxlog.FromContext(ctx).Debug("Resolved executable.", "table", r.kind, "configured", configured, "executable", name)
	return Strategy{Executable: name, create: f, noData: r.noData[name]}, nil
}

// ResolveNoData is Resolve for stages that read no data. Known programs
// that need data, and frame-only programs, are ErrUnsupportedExecutable.
func (r *Registry) ResolveNoData(ctx context.Context, configured string) (Strategy, error) {
	name := Executable(path.Base(configured))
	if _, ok := r.frameOnly[name]; ok {
		return Strategy{}, fmt.Errorf("%w: %s cannot be used without frames, configure another %s program", ErrUnsupportedExecutable, name, r.kind)
	}
	s, err := r.Resolve(ctx, configured)
	if err != nil {
		return Strategy{}, err
	}
	if !s.SupportsNoData() {
		return Strategy{}, fmt.Errorf("%w: %s cannot generate template banks without data", ErrUnsupportedExecutable, name)
	}
	return s, nil
}

// TemplateBank is the table of template bank generators.
func TemplateBank() *Registry {
	r := New("template bank")
	r.Register(LegacyTmpltbank, executables.NewLegacyTmpltbank)
	r.Register(GeomNonspinBank, executables.NewGeomNonspinBank)
	r.RegisterNoData(GeomNonspinBank, executables.NewGeomNonspinBankNoData)
	r.RegisterFrameOnly(FrameTmpltbank)
	return r
}

// MatchedFilter is the table of matched-filter programs a template bank
// stage can link to.
func MatchedFilter() *Registry {
	r := New("matched filter")
	r.Register(LegacyInspiral, executables.NewLegacyInspiral)
	r.Register(PyCBCInspiral, executables.NewPyCBCInspiral)
	return r
}
