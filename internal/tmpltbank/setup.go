package tmpltbank

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/ctxlog"
	"github.com/vk/tmpltbank/internal/executables"
	"github.com/vk/tmpltbank/internal/registry"
	"github.com/vk/tmpltbank/internal/scheduler"
	"github.com/vk/tmpltbank/internal/segment"
	"github.com/vk/tmpltbank/internal/workflow"
)

// Method selects how the stage produces banks.
type Method string

const (
	MethodPregenerated          Method = "PREGENERATED_BANK"
	MethodIndependentIfos       Method = "WORKFLOW_INDEPENDENT_IFOS"
	MethodIndependentIfosNoData Method = "WORKFLOW_INDEPENDENT_IFOS_NODATA"
	MethodNoIfoVariationNoData  Method = "WORKFLOW_NO_IFO_VARIATION_NODATA"
)

const (
	optMethod          = "tmpltbank-method"
	sectionExecutables = "executables"
)

// Methods lists the recognized methods.
var Methods = []Method{MethodPregenerated, MethodIndependentIfos, MethodIndependentIfosNoData, MethodNoIfoVariationNoData}

// Request carries the inputs of the stage besides the workflow itself.
type Request struct {
	// ScienceSegments maps each instrument to its analyzable time.
	ScienceSegments map[string]segment.List
	// Datafind are the data-availability artifacts handed to data-reading jobs.
	Datafind  artifact.Collection
	OutputDir string
	Tags      []string
}

// Setup runs the template bank stage and returns the banks for the
// matched-filter stage.
func Setup(ctx context.Context, w *workflow.Workflow, req Request) (artifact.Collection, error) {
	raw, err := w.Config.GetTagged(executables.StageTemplateBank, optMethod, req.Tags)
	if err != nil {
		return nil, err
	}
	method := Method(strings.TrimSpace(raw))
	ctx = ctxlog.With(ctx, "method", string(method))
	logger := ctxlog.FromContext(ctx)
	logger.Info("Entering template bank stage.", "tags", req.Tags)

	var banks artifact.Collection
	switch method {
	case MethodPregenerated:
		banks, err = Pregenerated(ctx, w, req.Tags)
	case MethodIndependentIfos:
		banks, err = WithData(ctx, w, req)
	case MethodIndependentIfosNoData:
		banks, err = WithoutData(ctx, w, req.OutputDir, req.Tags, true)
	case MethodNoIfoVariationNoData:
		banks, err = WithoutData(ctx, w, req.OutputDir, req.Tags, false)
	default:
		return nil, &config.InvalidValueError{
			Section: executables.StageTemplateBank,
			Option:  optMethod,
			Value:   raw,
			Reason:  fmt.Sprintf("template bank method not recognized, must be one of %v", Methods),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("template bank stage (%s): %w", method, err)
	}

	logger.Info("Leaving template bank stage.", "banks", len(banks))
	return banks, nil
}

// WithData adds bank jobs following each instrument's science segments.
// Every configured instrument must get at least one job, even when it has
// no science segments at all. Instruments are processed in sorted order.
func WithData(ctx context.Context, w *workflow.Workflow, req Request) (artifact.Collection, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := w.Config

	linkage := ResolveLinkage(cfg, req.Tags)
	warnings, err := linkage.Validate()
	for _, msg := range warnings {
		logger.Warn("Asymmetric template bank linkage.", "detail", msg)
	}
	if err != nil {
		return nil, err
	}

	strategy, err := resolveBankStrategy(ctx, w)
	if err != nil {
		return nil, err
	}
	var link *registry.Strategy
	if linkage.Active() {
		configured, err := cfg.Get(sectionExecutables, executables.SectionInspiral)
		if err != nil {
			return nil, err
		}
		s, err := registry.MatchedFilter().Resolve(ctx, configured)
		if err != nil {
			return nil, err
		}
		link = &s
	}
	opts := jobOptions(w, req.Tags)

	instruments := stageInstruments(w.Ifos, req.ScienceSegments)

	var banks artifact.Collection
	for _, ifo := range instruments {
		job, err := strategy.CreateJob(cfg, ifo, req.OutputDir, req.Tags, opts)
		if err != nil {
			return nil, err
		}
		var linkJob executables.Job
		if link != nil {
			if linkJob, err = link.CreateJob(cfg, ifo, req.OutputDir, req.Tags, executables.Options{}); err != nil {
				return nil, err
			}
		}
		err = scheduler.SetupSingleIFO(ctx, w, &banks, scheduler.Request{
			Instrument:        ifo,
			Segments:          req.ScienceSegments[ifo],
			Inputs:            req.Datafind,
			Job:               job,
			Link:              linkJob,
			AllowOverlap:      true,
			CompatibilityMode: linkage.Compatibility(),
			Tags:              req.Tags,
		})
		if err != nil {
			return nil, err
		}
	}
	return banks, nil
}

// stageInstruments is the sorted union of the configured instruments and
// those that have science segments.
func stageInstruments(ifos []string, segments map[string]segment.List) []string {
	seen := make(map[string]struct{}, len(ifos)+len(segments))
	out := make([]string, 0, len(ifos)+len(segments))
	add := func(ifo string) {
		if _, ok := seen[ifo]; !ok {
			seen[ifo] = struct{}{}
			out = append(out, ifo)
		}
	}
	for _, ifo := range ifos {
		add(ifo)
	}
	for ifo := range segments {
		add(ifo)
	}
	sort.Strings(out)
	return out
}

func resolveBankStrategy(ctx context.Context, w *workflow.Workflow) (registry.Strategy, error) {
	configured, err := w.Config.Get(sectionExecutables, executables.SectionTemplateBank)
	if err != nil {
		return registry.Strategy{}, err
	}
	return registry.TemplateBank().Resolve(ctx, configured)
}
