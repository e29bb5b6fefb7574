package executables

import (
	"fmt"
	"sort"

	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/node"
	"github.com/vk/tmpltbank/internal/segment"
)

// Options in these sets are consumed while computing valid times and are
// not passed through to the program.
var timingOptions = map[string]struct{}{
	"pad-data":          {},
	"segment-length":    {},
	"segment-start-pad": {},
	"segment-end-pad":   {},
	"analysis-length":   {},
}

// tagChain is the tag list jobs use for their lookups: stage tags followed
// by the instrument.
func tagChain(tags []string, instrument string) []string {
	chain := append([]string(nil), tags...)
	return append(chain, instrument)
}

// seconds reads a non-negative duration.
func seconds(cfg *config.Resolver, section, option string, chain []string) (int64, error) {
	v, err := cfg.GetInt64Tagged(section, option, chain)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		_, matched, _ := cfg.Lookup(section, option, chain)
		return 0, &config.InvalidValueError{Section: matched, Option: option, Value: fmt.Sprint(v), Reason: "must not be negative"}
	}
	return v, nil
}

// staticOptions collects the program options of section, letting the most
// specific tagged section win, sorted by name.
func staticOptions(cfg *config.Resolver, section string, chain []string) []node.Option {
	values := make(map[string]string)
	searched := config.TaggedSections(section, chain)
	for i := len(searched) - 1; i >= 0; i-- {
		for _, name := range cfg.Options(searched[i]) {
			if _, skip := timingOptions[name]; skip {
				continue
			}
			v, _ := cfg.Get(searched[i], name)
			values[name] = v
		}
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]node.Option, 0, len(names))
	for _, name := range names {
		out = append(out, node.Option{Name: name, Value: values[name]})
	}
	return out
}

// chunk validates a valid chunk against the data length.
func chunk(exe string, dataLength, start, end int64) (segment.Segment, error) {
	if dataLength <= 0 {
		return segment.Segment{}, config.Invalidf("%s: data length %ds must be positive", exe, dataLength)
	}
	if start < 0 || end > dataLength || start >= end {
		return segment.Segment{}, config.Invalidf("%s: valid chunk [%d, %d) does not fit in %ds of data", exe, start, end, dataLength)
	}
	return segment.Segment{Start: start, End: end}, nil
}
