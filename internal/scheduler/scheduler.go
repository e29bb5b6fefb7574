package scheduler

import (
	"context"
	"fmt"

	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/ctxlog"
	"github.com/vk/tmpltbank/internal/executables"
	"github.com/vk/tmpltbank/internal/segment"
	"github.com/vk/tmpltbank/internal/workflow"
)

// Request describes the jobs to place for one instrument.
type Request struct {
	Instrument string
	// Segments are the instrument's science segments.
	Segments segment.List
	// Inputs are the data-availability artifacts; each job receives those
	// of its instrument overlapping the data it reads.
	Inputs artifact.Collection
	Job    executables.Job
	// Link is the job of the stage whose outputs must line up with these.
	Link              executables.Job
	AllowOverlap      bool
	CompatibilityMode bool
	Tags              []string
}

// SetupSingleIFO adds one node per placed job to the workflow graph and
// appends their outputs to out, in time order. PSD side products are added
// to the graph only.
func SetupSingleIFO(ctx context.Context, w *workflow.Workflow, out *artifact.Collection, req Request) error {
	ctx = ctxlog.With(ctx, "instrument", req.Instrument)
	logger := ctxlog.FromContext(ctx)

	if req.Job == nil {
		return fmt.Errorf("no job given for %s", req.Instrument)
	}
	chunk, err := validChunk(req)
	if err != nil {
		return err
	}
	dataLength := req.Job.DataLength()
	layout := Layout{AllowOverlap: req.AllowOverlap, Compatibility: req.CompatibilityMode}

	logger.Debug("Placing jobs.",
		"executable", req.Job.Executable(),
		"data_length", dataLength,
		"valid_chunk", chunk.String(),
		"linked", req.Link != nil,
		"compatibility", req.CompatibilityMode,
		"tags", req.Tags)

	segments := segment.Coalesce(req.Segments)
	placed := 0
	var longest int64
	for _, seg := range segments {
		longest = max(longest, seg.Duration())
		if _, ok := req.Job.ValidSegment(seg); !ok {
			logger.Debug("Skipping science segment shorter than the job's data.", "segment", seg.String(), "data_length", dataLength)
			continue
		}

		carves, err := Plan(seg, dataLength, chunk, layout)
		if err != nil {
			return fmt.Errorf("placing %s jobs for %s: %w", req.Job.Executable(), req.Instrument, err)
		}
		for _, c := range carves {
			inputs := req.Inputs.Overlapping(req.Instrument, c.Data)
			n, err := req.Job.CreateNode(c.Data, c.Valid, inputs)
			if err != nil {
				return err
			}
			if err := w.AddNode(ctx, n); err != nil {
				return err
			}
			for _, a := range n.Outputs {
				if a.Tag != artifact.TagPSD {
					out.Append(a)
				}
			}
		}
		logger.Debug("Placed jobs in science segment.", "segment", seg.String(), "jobs", len(carves))
		placed += len(carves)
	}

	if placed == 0 {
		return &NoValidSegmentError{
			Instrument: req.Instrument,
			Executable: req.Job.Executable(),
			DataLength: dataLength,
			Longest:    longest,
			Segments:   len(segments),
		}
	}
	logger.Info("Placed jobs for instrument.", "executable", req.Job.Executable(), "jobs", placed)
	return nil
}

// validChunk narrows the job's valid chunk to the linked job's.
func validChunk(req Request) (segment.Segment, error) {
	chunk := req.Job.ValidChunk()
	if req.Link == nil {
		if req.CompatibilityMode {
			return segment.Segment{}, config.Invalidf("compatibility mode for %s requires a linked job", req.Job.Executable())
		}
		return chunk, nil
	}

	linked, ok := chunk.Intersect(req.Link.ValidChunk())
	if !ok {
		return segment.Segment{}, config.Invalidf("valid chunk %s of %s does not overlap %s of linked %s",
			chunk, req.Job.Executable(), req.Link.ValidChunk(), req.Link.Executable())
	}
	if req.CompatibilityMode && req.Link.DataLength() != req.Job.DataLength() {
		return segment.Segment{}, config.Invalidf("compatibility mode needs equal data lengths: %s reads %ds, %s reads %ds",
			req.Job.Executable(), req.Job.DataLength(), req.Link.Executable(), req.Link.DataLength())
	}
	return linked, nil
}
