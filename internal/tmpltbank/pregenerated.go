package tmpltbank

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/ctxlog"
	"github.com/vk/tmpltbank/internal/executables"
	"github.com/vk/tmpltbank/internal/workflow"
)

const optPregeneratedBank = "tmpltbank-pregenerated-bank"

// Pregenerated points every instrument at a bank generated outside the
// workflow. A bank shared by all instruments takes precedence over
// per-instrument banks. Each instrument gets its own artifact, valid for
// the whole analysis span, even when they share a file.
func Pregenerated(ctx context.Context, w *workflow.Workflow, tags []string) (artifact.Collection, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := w.Config

	banks := make(map[string]string, len(w.Ifos))
	if shared, matched, ok := cfg.Lookup(executables.StageTemplateBank, optPregeneratedBank, tags); ok {
		logger.Debug("Using shared pregenerated bank.", "section", matched, "bank", shared)
		for _, ifo := range w.Ifos {
			banks[ifo] = shared
		}
	} else {
		for _, ifo := range w.Ifos {
			option := optPregeneratedBank + "-" + ifo
			bank, matched, ok := cfg.Lookup(executables.StageTemplateBank, option, tags)
			if !ok {
				return nil, missingBankError(ifo, tags)
			}
			logger.Debug("Using per-instrument pregenerated bank.", "instrument", ifo, "section", matched, "bank", bank)
			banks[ifo] = bank
		}
	}

	var out artifact.Collection
	for _, ifo := range w.Ifos {
		bank := strings.TrimSpace(banks[ifo])
		if bank == "" {
			return nil, &config.InvalidValueError{
				Section: executables.StageTemplateBank,
				Option:  optPregeneratedBank,
				Value:   banks[ifo],
				Reason:  fmt.Sprintf("empty bank path for %s", ifo),
			}
		}
		out.Append(artifact.New(ifo, artifact.TagPregeneratedBank, w.AnalysisTime, artifact.FileURL(bank), tags...))
	}
	return out, nil
}

// missingBankError lists every section and option that was searched.
func missingBankError(ifo string, tags []string) error {
	sections := config.TaggedSections(executables.StageTemplateBank, tags)
	options := []string{optPregeneratedBank, optPregeneratedBank + "-" + ifo}

	tried := make([]string, 0, len(sections)*len(options))
	for _, option := range options {
		for _, section := range sections {
			tried = append(tried, fmt.Sprintf("[%s] %s", section, option))
		}
	}
	return &config.MissingKeyError{
		Option: options[1],
		Tried:  tried,
		Hint:   fmt.Sprintf("set %s, or %s for every instrument", options[0], optPregeneratedBank+"-<ifo>"),
	}
}
