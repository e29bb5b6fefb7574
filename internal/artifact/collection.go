package artifact

import (
	"sort"

	"github.com/vk/tmpltbank/internal/segment"
)

// Collection is an ordered, duplicate-tolerant sequence of artifacts. Order is
// meaningful: it is the order in which producing nodes were created.
type Collection []Artifact

// Query selects artifacts in Filter. Empty fields match everything.
type Query struct {
	Instrument string
	Tag        string
}

// Append adds artifacts to the end of the collection.
func (c *Collection) Append(arts ...Artifact) {
	*c = append(*c, arts...)
}

// Extend appends every artifact of other, preserving its order.
func (c *Collection) Extend(other Collection) {
	*c = append(*c, other...)
}

// Filter returns a new collection with the artifacts matching q.
func (c Collection) Filter(q Query) Collection {
	out := make(Collection, 0, len(c))
	for _, a := range c {
		if q.Instrument != "" && a.Instrument != q.Instrument {
			continue
		}
		if q.Tag != "" && !a.HasTag(q.Tag) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ForInstrument is Filter with only the instrument set.
func (c Collection) ForInstrument(instrument string) Collection {
	return c.Filter(Query{Instrument: instrument})
}

// Overlapping returns the artifacts of instrument whose validity intersects
// seg. An empty instrument matches all.
func (c Collection) Overlapping(instrument string, seg segment.Segment) Collection {
	out := make(Collection, 0)
	for _, a := range c {
		if instrument != "" && a.Instrument != instrument {
			continue
		}
		if a.Validity.Overlaps(seg) {
			out = append(out, a)
		}
	}
	return out
}

// Instruments lists the distinct owning instruments in first-seen order.
func (c Collection) Instruments() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, a := range c {
		if _, ok := seen[a.Instrument]; ok {
			continue
		}
		seen[a.Instrument] = struct{}{}
		out = append(out, a.Instrument)
	}
	return out
}

// SortByInstrument reorders the collection by instrument, keeping the
// relative order of each instrument's artifacts. Callers that build
// instruments concurrently use it to recover a deterministic order.
func (c Collection) SortByInstrument() {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Instrument < c[j].Instrument
	})
}
