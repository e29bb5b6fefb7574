package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolver answers typed lookups over an immutable snapshot of a Model.
type Resolver struct {
	sections map[string]map[string]string
}

// NewResolver snapshots the model. Later changes to m are not observed.
// Option names are case-insensitive; section names are not.
func NewResolver(m *Model) *Resolver {
	sections := make(map[string]map[string]string)
	if m != nil {
		for section, opts := range m.Sections {
			norm := make(map[string]string, len(opts))
			for option, value := range opts {
				norm[strings.ToLower(option)] = value
			}
			sections[section] = norm
		}
	}
	return &Resolver{sections: sections}
}

// Sections returns the section names in sorted order.
func (r *Resolver) Sections() []string {
	return sortedKeys(r.sections)
}

// HasSection reports whether the section exists, even if it is empty.
func (r *Resolver) HasSection(section string) bool {
	_, ok := r.sections[section]
	return ok
}

// Options returns the option names of a section in sorted order.
func (r *Resolver) Options(section string) []string {
	return sortedKeys(r.sections[section])
}

// Has reports whether option exists in the bare section.
func (r *Resolver) Has(section, option string) bool {
	_, ok := r.sections[section][strings.ToLower(option)]
	return ok
}

// Get returns the option from the bare section.
func (r *Resolver) Get(section, option string) (string, error) {
	if v, ok := r.sections[section][strings.ToLower(option)]; ok {
		return v, nil
	}
	return "", &MissingKeyError{Option: option, Tried: []string{describe(section, option)}}
}

// TaggedSections lists, most specific first, the sections searched for a
// tagged lookup:
//
//  1. section-tag1-tag2-... when more than one tag is given;
//  2. section-tagN for every tag, in the order supplied;
//  3. the bare section.
//
// Tags are lower-cased. When two single-tag sections both define an option,
// the tag supplied first wins.
func TaggedSections(section string, tags []string) []string {
	lowered := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			lowered = append(lowered, t)
		}
	}
	out := make([]string, 0, len(lowered)+2)
	if len(lowered) > 1 {
		out = append(out, section+"-"+strings.Join(lowered, "-"))
	}
	for _, t := range lowered {
		out = append(out, section+"-"+t)
	}
	return append(out, section)
}

// Lookup searches the tagged sections for option and reports which section
// answered.
func (r *Resolver) Lookup(section, option string, tags []string) (value, matched string, ok bool) {
	key := strings.ToLower(option)
	for _, s := range TaggedSections(section, tags) {
		if v, found := r.sections[s][key]; found {
			return v, s, true
		}
	}
	return "", "", false
}

// HasTagged reports whether a tagged lookup would succeed.
func (r *Resolver) HasTagged(section, option string, tags []string) bool {
	_, _, ok := r.Lookup(section, option, tags)
	return ok
}

// GetTagged returns the option from the most specific tagged section that
// defines it, falling back to the bare section.
func (r *Resolver) GetTagged(section, option string, tags []string) (string, error) {
	if v, _, ok := r.Lookup(section, option, tags); ok {
		return v, nil
	}
	searched := TaggedSections(section, tags)
	tried := make([]string, 0, len(searched))
	for _, s := range searched {
		tried = append(tried, describe(s, option))
	}
	return "", &MissingKeyError{Option: option, Tried: tried}
}

// GetInt64Tagged is GetTagged followed by integer parsing. A present but
// non-integer value is reported as ErrInvalidConfiguration.
func (r *Resolver) GetInt64Tagged(section, option string, tags []string) (int64, error) {
	v, matched, ok := r.Lookup(section, option, tags)
	if !ok {
		_, err := r.GetTagged(section, option, tags)
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, &InvalidValueError{Section: matched, Option: option, Value: v, Reason: "not an integer"}
	}
	return n, nil
}

func describe(section, option string) string {
	return fmt.Sprintf("[%s] %s", section, option)
}
