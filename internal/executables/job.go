package executables

import (
	"fmt"
	"path"
	"strconv"

	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/node"
	"github.com/vk/tmpltbank/internal/nodeid"
	"github.com/vk/tmpltbank/internal/segment"
)

// Program names.
const (
	LegacyTmpltbankName = "lalapps_tmpltbank_ahope"
	GeomNonspinBankName = "pycbc_geom_nonspinbank"
	LegacyInspiralName  = "lalapps_inspiral_ahope"
	PyCBCInspiralName   = "pycbc_inspiral"
)

// Configuration sections read by the jobs.
const (
	SectionTemplateBank = "tmpltbank"
	SectionInspiral     = "inspiral"
	StageTemplateBank   = "ahope-tmpltbank"
	StageMatchedFilter  = "ahope-matchedfilter"
)

// Output file extensions.
const (
	extBank = ".xml.gz"
	extPSD  = ".txt"
)

// Options are the stage-level switches fixed when a job is created.
type Options struct {
	// WritePSD makes template bank jobs also write the PSD they estimate.
	WritePSD bool
}

// Job is a program bound to an instrument, an output directory and tags.
type Job interface {
	Executable() string
	Instrument() string
	Tags() []string
	// DataLength is the number of seconds of input data each node reads.
	DataLength() int64
	// ValidChunk is the part of [0, DataLength) a node's outputs are valid
	// for, relative to the start of its data.
	ValidChunk() segment.Segment
	// ValidSegment returns the part of candidate that nodes of this job can
	// produce valid output for. It reports false when candidate is shorter
	// than DataLength.
	ValidSegment(candidate segment.Segment) (segment.Segment, bool)
	// CreateNode builds a node reading data, valid over valid, fed by inputs.
	CreateNode(data, valid segment.Segment, inputs artifact.Collection) (*node.Node, error)
}

// NoDataJob is a program bound like Job that reads no input data. It has no
// data length or valid chunk.
type NoDataJob interface {
	Executable() string
	Instrument() string
	Tags() []string
	// CreateNoDataNode builds a node whose outputs are valid over span.
	CreateNoDataNode(span segment.Segment) (*node.Node, error)
}

// job holds what every concrete job shares.
type job struct {
	exe        string
	stage      string
	outputTag  string
	instrument string
	outputDir  string
	tags       []string
	dataLength int64
	valid      segment.Segment
	static     []node.Option
	opts       Options
}

func (j *job) Executable() string          { return j.exe }
func (j *job) Instrument() string          { return j.instrument }
func (j *job) Tags() []string              { return append([]string(nil), j.tags...) }
func (j *job) DataLength() int64           { return j.dataLength }
func (j *job) ValidChunk() segment.Segment { return j.valid }

func (j *job) ValidSegment(candidate segment.Segment) (segment.Segment, bool) {
	if candidate.Duration() < j.dataLength {
		return segment.Segment{}, false
	}
	return segment.Segment{
		Start: candidate.Start + j.valid.Start,
		End:   candidate.End - (j.dataLength - j.valid.End),
	}, true
}

func (j *job) CreateNode(data, valid segment.Segment, inputs artifact.Collection) (*node.Node, error) {
	if data.Duration() != j.dataLength {
		return nil, fmt.Errorf("%s: data segment %s is %ds long, job reads %ds", j.exe, data, data.Duration(), j.dataLength)
	}
	if valid.IsEmpty() || !data.Contains(valid) {
		return nil, fmt.Errorf("%s: valid segment %s is not inside data segment %s", j.exe, valid, data)
	}

	options := j.timeOptions(data, valid)
	return node.CreateJobNode(nodeid.Job(j.stage, j.instrument, data.Start, j.tags...), node.JobSpec{
		Executable: j.exe,
		Instrument: j.instrument,
		Data:       data,
		Valid:      valid,
		Options:    options,
		Inputs:     inputs,
		Outputs:    j.outputs(valid),
	}), nil
}

// timeOptions appends the per-node time options to the static options.
func (j *job) timeOptions(data, valid segment.Segment) []node.Option {
	options := append([]node.Option(nil), j.static...)
	return append(options,
		node.Option{Name: "gps-start-time", Value: strconv.FormatInt(data.Start, 10)},
		node.Option{Name: "gps-end-time", Value: strconv.FormatInt(data.End, 10)},
		node.Option{Name: "trig-start-time", Value: strconv.FormatInt(valid.Start, 10)},
		node.Option{Name: "trig-end-time", Value: strconv.FormatInt(valid.End, 10)},
	)
}

func (j *job) outputs(valid segment.Segment) artifact.Collection {
	out := artifact.Collection{j.output(j.outputTag, valid, extBank)}
	if j.opts.WritePSD {
		out.Append(j.output(artifact.TagPSD, valid, extPSD))
	}
	return out
}

func (j *job) output(tag string, valid segment.Segment, ext string) artifact.Artifact {
	a := artifact.New(j.instrument, tag, valid, "", j.tags...)
	a.Location = artifact.FileURL(path.Join(j.outputDir, a.Name(ext)))
	return a
}
