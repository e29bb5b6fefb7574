package scheduler

import (
	"errors"
	"fmt"
)

// ErrNoValidSegment is returned when no job could be placed for an
// instrument.
var ErrNoValidSegment = errors.New("no valid segment")

// NoValidSegmentError describes an instrument whose segments were all too
// short for the program.
type NoValidSegmentError struct {
	Instrument string
	Executable string
	DataLength int64
	Longest    int64
	Segments   int
}

func (e *NoValidSegmentError) Error() string {
	if e.Segments == 0 {
		return fmt.Sprintf("%s: %s has no science segments for %s", ErrNoValidSegment, e.Instrument, e.Executable)
	}
	return fmt.Sprintf("%s: none of the %d science segments of %s is long enough for %s (needs %ds, longest is %ds)",
		ErrNoValidSegment, e.Segments, e.Instrument, e.Executable, e.DataLength, e.Longest)
}

func (e *NoValidSegmentError) Unwrap() error { return ErrNoValidSegment }
