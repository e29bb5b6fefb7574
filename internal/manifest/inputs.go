package manifest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/segment"
)

// ReadSegments decodes science segments. Instrument ids are upper-cased and
// each instrument's segments are coalesced.
func ReadSegments(r io.Reader) (map[string]segment.List, error) {
	var raw map[string][][]int64
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding science segments: %w", err)
	}

	out := make(map[string]segment.List, len(raw))
	for ifo, pairs := range raw {
		segs := make([]segment.Segment, 0, len(pairs))
		for i, pair := range pairs {
			if len(pair) != 2 {
				return nil, fmt.Errorf("science segment %d of %s: expected [start, end], got %v", i, ifo, pair)
			}
			s, err := segment.New(pair[0], pair[1])
			if err != nil {
				return nil, fmt.Errorf("science segment %d of %s: %w", i, ifo, err)
			}
			segs = append(segs, s)
		}
		key := strings.ToUpper(ifo)
		out[key] = segment.Coalesce(append([]segment.Segment(out[key]), segs...))
	}
	return out, nil
}

// artifactDoc is the YAML form of an artifact.
type artifactDoc struct {
	Instrument string   `yaml:"instrument"`
	Tag        string   `yaml:"tag"`
	Start      int64    `yaml:"start"`
	End        int64    `yaml:"end"`
	Location   string   `yaml:"location,omitempty"`
	Path       string   `yaml:"path,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
}

// ReadArtifacts decodes a list of data-availability artifacts. A record
// with a path instead of a location gets a file URL for it.
func ReadArtifacts(r io.Reader) (artifact.Collection, error) {
	var docs []artifactDoc
	if err := yaml.NewDecoder(r).Decode(&docs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding artifacts: %w", err)
	}

	out := make(artifact.Collection, 0, len(docs))
	for i, d := range docs {
		validity, err := segment.New(d.Start, d.End)
		if err != nil {
			return nil, fmt.Errorf("artifact %d: %w", i, err)
		}
		if d.Instrument == "" || d.Tag == "" {
			return nil, fmt.Errorf("artifact %d: instrument and tag are required", i)
		}
		location := d.Location
		switch {
		case location != "" && d.Path != "":
			return nil, fmt.Errorf("artifact %d: set either location or path, not both", i)
		case location == "" && d.Path == "":
			return nil, fmt.Errorf("artifact %d: location or path is required", i)
		case location == "":
			location = artifact.FileURL(d.Path)
		}
		out.Append(artifact.New(strings.ToUpper(d.Instrument), d.Tag, validity, location, d.Tags...))
	}
	return out, nil
}

func toDoc(a artifact.Artifact) artifactDoc {
	return artifactDoc{
		Instrument: a.Instrument,
		Tag:        a.Tag,
		Start:      a.Validity.Start,
		End:        a.Validity.End,
		Location:   a.Location,
		Tags:       a.ExtraTags,
	}
}
