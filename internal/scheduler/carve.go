package scheduler

import (
	"fmt"

	"github.com/vk/tmpltbank/internal/segment"
)

// Carve is the placement of one job: the data it reads and the part of it
// the outputs are valid for.
type Carve struct {
	Data  segment.Segment
	Valid segment.Segment
}

// Layout selects how jobs are spread over a segment.
type Layout struct {
	// AllowOverlap keeps every job's full valid chunk even where it overlaps
	// the next job's. Otherwise the analyzable time is split exactly.
	AllowOverlap bool
	// Compatibility lays jobs end to end from the segment start.
	Compatibility bool
}

// Plan places jobs reading dataLength seconds with the given valid chunk
// over seg. It returns nil when seg is shorter than dataLength.
func Plan(seg segment.Segment, dataLength int64, chunk segment.Segment, layout Layout) ([]Carve, error) {
	if dataLength <= 0 || chunk.IsEmpty() || chunk.Start < 0 || chunk.End > dataLength {
		return nil, fmt.Errorf("valid chunk %s does not fit in %ds of data", chunk, dataLength)
	}

	length := seg.Duration()
	if length < dataLength {
		return nil, nil
	}

	valid := chunk.Duration()
	loss := dataLength - valid
	analyzable := length - loss
	count := (analyzable + valid - 1) / valid

	carves := make([]Carve, 0, count)
	for j := int64(0); j < count; j++ {
		var c Carve
		if layout.Compatibility {
			c = compatCarve(seg, dataLength, chunk, j, count)
		} else {
			c = naturalCarve(seg, dataLength, chunk, j, count, layout.AllowOverlap)
		}
		if !c.Data.Contains(c.Valid) || c.Valid.IsEmpty() {
			return nil, fmt.Errorf("job %d of %d over %s: valid segment %s outside data %s", j, count, seg, c.Valid, c.Data)
		}
		carves = append(carves, c)
	}
	return carves, nil
}

// naturalCarve spreads count jobs evenly, the first at the segment start and
// the last ending at the segment end.
func naturalCarve(seg segment.Segment, dataLength int64, chunk segment.Segment, j, count int64, allowOverlap bool) Carve {
	length := seg.Duration()
	var shift int64
	if count > 1 {
		shift = j * (length - dataLength) / (count - 1)
	}
	data := segment.Segment{Start: seg.Start + shift, End: seg.Start + shift + dataLength}
	if allowOverlap {
		return Carve{Data: data, Valid: chunk.Shift(data.Start)}
	}

	analyzable := length - (dataLength - chunk.Duration())
	base := seg.Start + chunk.Start
	return Carve{
		Data: data,
		Valid: segment.Segment{
			Start: base + j*analyzable/count,
			End:   base + (j+1)*analyzable/count,
		},
	}
}

// compatCarve lays jobs end to end. The last job is pulled back so its data
// ends at the segment end; its valid segment starts where the previous one
// stopped.
func compatCarve(seg segment.Segment, dataLength int64, chunk segment.Segment, j, count int64) Carve {
	step := chunk.Duration()
	if j < count-1 {
		start := seg.Start + j*step
		return Carve{
			Data:  segment.Segment{Start: start, End: start + dataLength},
			Valid: chunk.Shift(start),
		}
	}
	return Carve{
		Data: segment.Segment{Start: seg.End - dataLength, End: seg.End},
		Valid: segment.Segment{
			Start: seg.Start + j*step + chunk.Start,
			End:   seg.End - (dataLength - chunk.End),
		},
	}
}
