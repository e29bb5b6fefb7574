package tmpltbank

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/ctxlog"
	"github.com/vk/tmpltbank/internal/executables"
	"github.com/vk/tmpltbank/internal/registry"
	"github.com/vk/tmpltbank/internal/workflow"
)

// WithoutData adds bank jobs that read no data and are valid for the whole
// analysis span. With independentIfos there is one job per instrument;
// otherwise a single job serves the concatenation of all instruments.
func WithoutData(ctx context.Context, w *workflow.Workflow, outputDir string, tags []string, independentIfos bool) (artifact.Collection, error) {
	logger := ctxlog.FromContext(ctx)

	configured, err := w.Config.Get(sectionExecutables, executables.SectionTemplateBank)
	if err != nil {
		return nil, err
	}
	strategy, err := registry.TemplateBank().ResolveNoData(ctx, configured)
	if err != nil {
		return nil, err
	}
	opts := jobOptions(w, tags)

	instruments := w.Ifos
	if !independentIfos {
		instruments = []string{strings.Join(w.Ifos, "")}
	}

	var out artifact.Collection
	for _, ifo := range instruments {
		job, err := strategy.CreateNoDataJob(w.Config, ifo, outputDir, tags, opts)
		if err != nil {
			return nil, err
		}
		n, err := job.CreateNoDataNode(w.AnalysisTime)
		if err != nil {
			return nil, fmt.Errorf("creating no-data %s node for %s: %w", job.Executable(), ifo, err)
		}
		if err := w.AddNode(ctx, n); err != nil {
			return nil, err
		}
		for _, a := range n.Outputs {
			if a.Tag != artifact.TagPSD {
				out.Append(a)
			}
		}
		logger.Debug("Added no-data bank job.", "instrument", ifo, "node", n.ID.String(), "span", w.AnalysisTime.String())
	}
	return out, nil
}

func jobOptions(w *workflow.Workflow, tags []string) executables.Options {
	return executables.Options{
		WritePSD: w.Config.HasTagged(executables.StageTemplateBank, "tmpltbank-write-psd-file", tags),
	}
}
