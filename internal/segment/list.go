package segment

import "sort"

// List is an ordered union of disjoint segments. Use Coalesce to normalize
// arbitrary input before relying on that invariant.
type List []Segment

// Coalesce returns a new list sorted by start with empty segments dropped and
// overlapping or touching segments merged.
func Coalesce(segs []Segment) List {
	work := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if !s.IsEmpty() {
			work = append(work, s)
		}
	}
	sort.Slice(work, func(i, j int) bool {
		if work[i].Start == work[j].Start {
			return work[i].End < work[j].End
		}
		return work[i].Start < work[j].Start
	})

	out := make(List, 0, len(work))
	for _, s := range work {
		if n := len(out); n > 0 && s.Start <= out[n-1].End {
			if s.End > out[n-1].End {
				out[n-1].End = s.End
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

// Duration is the total time covered by the list.
func (l List) Duration() int64 {
	var total int64
	for _, s := range l {
		total += s.Duration()
	}
	return total
}

// Intersect clips every segment in the list to seg, dropping those that fall
// outside it.
func (l List) Intersect(seg Segment) List {
	out := make(List, 0, len(l))
	for _, s := range l {
		if in, ok := s.Intersect(seg); ok {
			out = append(out, in)
		}
	}
	return out
}

// Extent returns the smallest segment covering the whole list.
func (l List) Extent() (Segment, bool) {
	if len(l) == 0 {
		return Segment{}, false
	}
	out := l[0]
	for _, s := range l[1:] {
		out.Start = min(out.Start, s.Start)
		out.End = max(out.End, s.End)
	}
	return out, true
}
