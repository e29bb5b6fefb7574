package artifact

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/vk/tmpltbank/internal/segment"
)

// Well-known artifact tags.
const (
	TagTemplateBank     = "TMPLTBANK"
	TagPregeneratedBank = "PREGEN_TMPLTBANK"
	TagPSD              = "PSD"
)

// Artifact is one output product of a workflow stage. Downstream stages rely
// on the (Instrument, Validity, Location) triple only.
type Artifact struct {
	// Instrument owning the artifact, or the concatenation of several
	// instrument ids for artifacts shared across instruments.
	Instrument string
	// Tag describes what the artifact is, e.g. TMPLTBANK.
	Tag string
	// Validity is the time range the artifact is valid for.
	Validity segment.Segment
	// Location is the artifact URL.
	Location string
	// ExtraTags is a sorted set of user tags distinguishing repeated calls.
	ExtraTags []string
}

// New returns an Artifact with its extra tags normalized into a sorted set.
func New(instrument, tag string, validity segment.Segment, location string, extraTags ...string) Artifact {
	return Artifact{
		Instrument: instrument,
		Tag:        tag,
		Validity:   validity,
		Location:   location,
		ExtraTags:  normalizeTags(extraTags),
	}
}

// HasTag reports whether tag is the artifact's tag or one of its extra tags.
func (a Artifact) HasTag(tag string) bool {
	if a.Tag == tag {
		return true
	}
	for _, t := range a.ExtraTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Description joins the tag and the extra tags into the description field of
// the file name, upper-cased, e.g. TMPLTBANK_FULL_DATA.
func (a Artifact) Description() string {
	parts := append([]string{a.Tag}, a.ExtraTags...)
	return strings.ToUpper(strings.Join(parts, "_"))
}

// Name renders the IFO-DESCRIPTION-START-DURATION.ext file name convention.
func (a Artifact) Name(ext string) string {
	return fmt.Sprintf("%s-%s-%d-%d%s", a.Instrument, a.Description(), a.Validity.Start, a.Validity.Duration(), ext)
}

// String implements fmt.Stringer.
func (a Artifact) String() string {
	return fmt.Sprintf("%s %s %s %s", a.Instrument, a.Description(), a.Validity, a.Location)
}

// FileURL converts a local path to a file URL. Absolute paths become
// file://localhost/...; relative paths are kept relative.
func FileURL(p string) string {
	escaped := (&url.URL{Path: p}).EscapedPath()
	if path.IsAbs(p) {
		return "file://localhost" + escaped
	}
	return "file:" + escaped
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}
