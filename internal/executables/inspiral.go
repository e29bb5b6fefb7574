package executables

import (
	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/segment"
)

const tagInspiral = "INSPIRAL"

type legacyInspiralJob struct {
	job
}

type pycbcInspiralJob struct {
	job
}

// Matched-filter jobs are only created to align template bank jobs with
// them, so they ignore Options.

// NewLegacyInspiral creates a lalapps_inspiral_ahope job. Besides the data
// padding it discards a quarter of a filter segment at both edges.
func NewLegacyInspiral(cfg *config.Resolver, instrument, outputDir string, tags []string, _ Options) (Job, error) {
	chain := tagChain(tags, instrument)

	pad, err := seconds(cfg, SectionInspiral, "pad-data", chain)
	if err != nil {
		return nil, err
	}
	segLength, err := seconds(cfg, SectionInspiral, "segment-length", chain)
	if err != nil {
		return nil, err
	}
	analysis, err := seconds(cfg, StageMatchedFilter, "analysis-length", chain)
	if err != nil {
		return nil, err
	}

	dataLength := analysis + 2*pad
	valid, err := chunk(LegacyInspiralName, dataLength, pad+segLength/4, dataLength-pad-segLength/4)
	if err != nil {
		return nil, err
	}

	return &legacyInspiralJob{job: newInspiralJob(LegacyInspiralName, cfg, instrument, outputDir, tags, chain, dataLength, valid)}, nil
}

// NewPyCBCInspiral creates a pycbc_inspiral job. Its filter skips
// segment-start-pad and segment-end-pad seconds inside the padded data.
func NewPyCBCInspiral(cfg *config.Resolver, instrument, outputDir string, tags []string, _ Options) (Job, error) {
	chain := tagChain(tags, instrument)

	pad, err := seconds(cfg, SectionInspiral, "pad-data", chain)
	if err != nil {
		return nil, err
	}
	startPad, err := seconds(cfg, SectionInspiral, "segment-start-pad", chain)
	if err != nil {
		return nil, err
	}
	endPad, err := seconds(cfg, SectionInspiral, "segment-end-pad", chain)
	if err != nil {
		return nil, err
	}
	analysis, err := seconds(cfg, StageMatchedFilter, "analysis-length", chain)
	if err != nil {
		return nil, err
	}

	dataLength := analysis + 2*pad
	valid, err := chunk(PyCBCInspiralName, dataLength, pad+startPad, dataLength-pad-endPad)
	if err != nil {
		return nil, err
	}

	return &pycbcInspiralJob{job: newInspiralJob(PyCBCInspiralName, cfg, instrument, outputDir, tags, chain, dataLength, valid)}, nil
}

func newInspiralJob(exe string, cfg *config.Resolver, instrument, outputDir string, tags, chain []string, dataLength int64, valid segment.Segment) job {
	return job{
		exe:        exe,
		stage:      SectionInspiral,
		outputTag:  tagInspiral,
		instrument: instrument,
		outputDir:  outputDir,
		tags:       append([]string(nil), tags...),
		dataLength: dataLength,
		valid:      valid,
		static:     staticOptions(cfg, SectionInspiral, chain),
	}
}
