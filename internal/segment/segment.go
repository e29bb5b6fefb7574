package segment

import "fmt"

// Segment is the half-open interval [Start, End) of integer time.
type Segment struct {
	Start int64
	End   int64
}

// New builds a segment and rejects an inverted interval.
func New(start, end int64) (Segment, error) {
	if start > end {
		return Segment{}, fmt.Errorf("invalid segment [%d, %d): start after end", start, end)
	}
	return Segment{Start: start, End: end}, nil
}

// MustNew is New for literals known to be valid. It panics otherwise.
func MustNew(start, end int64) Segment {
	s, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return s
}

// Duration returns End - Start.
func (s Segment) Duration() int64 {
	return s.End - s.Start
}

// IsEmpty reports whether the segment covers no time.
func (s Segment) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains reports whether other lies entirely within s.
func (s Segment) Contains(other Segment) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Overlaps reports whether the two segments share any time.
func (s Segment) Overlaps(other Segment) bool {
	return s.Start < other.End && other.Start < s.End
}

// Intersect returns the common part of s and other. The boolean is false when
// they do not overlap, in which case the returned segment is the zero value.
func (s Segment) Intersect(other Segment) (Segment, bool) {
	start := max(s.Start, other.Start)
	end := min(s.End, other.End)
	if start >= end {
		return Segment{}, false
	}
	return Segment{Start: start, End: end}, true
}

// Shift moves both boundaries by d.
func (s Segment) Shift(d int64) Segment {
	return Segment{Start: s.Start + d, End: s.End + d}
}

// String renders the segment as [start, end).
func (s Segment) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}
