// internal/nodeid/address.go
package nodeid

import (
	"fmt"
	"reflect"
	"strings"
)

// Job builds the address of a job node: stage.INSTRUMENT.tags[index].
// Tags are lower-cased and joined with underscores.
func Job(stage, instrument string, index int64, tags ...string) Address {
	return Address{Path: []PathSegment{
		NewPathSegment(stage),
		NewPathSegment(instrument),
		NewPathSegmentWithIndex(tagSegment(tags), index),
	}}
}

// File builds the address of a file node: file.INSTRUMENT.key.
func File(instrument, key string) Address {
	return Address{Path: []PathSegment{
		NewPathSegment(FileRoot),
		NewPathSegment(instrument),
		NewPathSegment(key),
	}}
}

func tagSegment(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			parts = append(parts, strings.ToLower(t))
		}
	}
	if len(parts) == 0 {
		return untagged
	}
	return strings.Join(parts, "_")
}

// Root returns the first segment name, the stage of a job or FileRoot.
func (a Address) Root() string {
	if len(a.Path) == 0 {
		return ""
	}
	return a.Path[0].Name
}

// IsFile reports whether the address names a file node.
func (a Address) IsFile() bool {
	return a.Root() == FileRoot
}

// String serializes the Address into its canonical path string representation.
func (a *Address) String() string {
	if a == nil {
		return ""
	}

	var sb strings.Builder
	for i, segment := range a.Path {
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(segment.Name)
		if segment.HasIndex() {
			sb.WriteString(fmt.Sprintf("[%d]", segment.Index))
		}
	}

	return sb.String()
}

// Equal checks for deep equality between two Address pointers.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return reflect.DeepEqual(a.Path, other.Path)
}
