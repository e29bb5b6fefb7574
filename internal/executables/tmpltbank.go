package executables

import (
	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/node"
	"github.com/vk/tmpltbank/internal/nodeid"
	"github.com/vk/tmpltbank/internal/segment"
)

// legacyBankJob is the frame based bank generator. It estimates a PSD from
// the data it reads and cannot run without it.
type legacyBankJob struct {
	job
}

// geomBankJob is the geometric non-spinning bank generator reading data to
// estimate its PSD.
type geomBankJob struct {
	job
}

// analyticBankJob is the geometric generator run with an analytic PSD. It
// reads no data, so none of the valid-time options apply.
type analyticBankJob struct {
	exe        string
	stage      string
	instrument string
	tags       []string
	static     []node.Option
	out        job
}

// NewLegacyTmpltbank creates a lalapps_tmpltbank_ahope job.
func NewLegacyTmpltbank(cfg *config.Resolver, instrument, outputDir string, tags []string, opts Options) (Job, error) {
	j, err := newBankJob(LegacyTmpltbankName, cfg, instrument, outputDir, tags, opts)
	if err != nil {
		return nil, err
	}
	return &legacyBankJob{job: j}, nil
}

// NewGeomNonspinBank creates a pycbc_geom_nonspinbank job.
func NewGeomNonspinBank(cfg *config.Resolver, instrument, outputDir string, tags []string, opts Options) (Job, error) {
	j, err := newBankJob(GeomNonspinBankName, cfg, instrument, outputDir, tags, opts)
	if err != nil {
		return nil, err
	}
	return &geomBankJob{job: j}, nil
}

// NewGeomNonspinBankNoData creates a pycbc_geom_nonspinbank job that uses an
// analytic PSD instead of reading data.
func NewGeomNonspinBankNoData(cfg *config.Resolver, instrument, outputDir string, tags []string, opts Options) (NoDataJob, error) {
	chain := tagChain(tags, instrument)
	j := &analyticBankJob{
		exe:        GeomNonspinBankName,
		stage:      SectionTemplateBank,
		instrument: instrument,
		tags:       append([]string(nil), tags...),
		static:     staticOptions(cfg, SectionTemplateBank, chain),
	}
	j.out = job{
		exe:        j.exe,
		outputTag:  artifact.TagTemplateBank,
		instrument: instrument,
		outputDir:  outputDir,
		tags:       j.tags,
		opts:       opts,
	}
	return j, nil
}

// newBankJob reads the valid-time options shared by both bank generators:
// each node reads analysis-length seconds padded by pad-data on both sides
// and is valid for the unpadded part.
func newBankJob(exe string, cfg *config.Resolver, instrument, outputDir string, tags []string, opts Options) (job, error) {
	chain := tagChain(tags, instrument)

	pad, err := seconds(cfg, SectionTemplateBank, "pad-data", chain)
	if err != nil {
		return job{}, err
	}
	analysis, err := seconds(cfg, StageTemplateBank, "analysis-length", chain)
	if err != nil {
		return job{}, err
	}

	dataLength := analysis + 2*pad
	valid, err := chunk(exe, dataLength, pad, dataLength-pad)
	if err != nil {
		return job{}, err
	}

	return job{
		exe:        exe,
		stage:      SectionTemplateBank,
		outputTag:  artifact.TagTemplateBank,
		instrument: instrument,
		outputDir:  outputDir,
		tags:       append([]string(nil), tags...),
		dataLength: dataLength,
		valid:      valid,
		static:     staticOptions(cfg, SectionTemplateBank, chain),
		opts:       opts,
	}, nil
}

func (j *analyticBankJob) Executable() string { return j.exe }
func (j *analyticBankJob) Instrument() string { return j.instrument }
func (j *analyticBankJob) Tags() []string     { return append([]string(nil), j.tags...) }

// CreateNoDataNode builds a node that uses an analytic PSD and is valid for
// the whole span.
func (j *analyticBankJob) CreateNoDataNode(span segment.Segment) (*node.Node, error) {
	if span.IsEmpty() {
		return nil, config.Invalidf("%s: no-data span %s is empty", j.exe, span)
	}

	options := append([]node.Option(nil), j.static...)
	options = append(options, node.Option{Name: "analytic-psd", Value: ""})
	return node.CreateJobNode(nodeid.Job(j.stage, j.instrument, span.Start, j.tags...), node.JobSpec{
		Executable: j.exe,
		Instrument: j.instrument,
		Data:       span,
		Valid:      span,
		Options:    options,
		Outputs:    j.out.outputs(span),
	}), nil
}
