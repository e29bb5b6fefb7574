package config

import "sort"

// Model is the unified, format-agnostic representation of a workflow
// configuration: section name -> option name -> string value.
//
// Presence flags are options with an empty value.
type Model struct {
	Sections map[string]map[string]string
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Sections: make(map[string]map[string]string)}
}

// Set stores value under section/option, creating the section if needed.
func (m *Model) Set(section, option, value string) {
	if m.Sections == nil {
		m.Sections = make(map[string]map[string]string)
	}
	opts, ok := m.Sections[section]
	if !ok {
		opts = make(map[string]string)
		m.Sections[section] = opts
	}
	opts[option] = value
}

// AddSection registers an empty section. Existing options are kept.
func (m *Model) AddSection(section string) {
	if m.Sections == nil {
		m.Sections = make(map[string]map[string]string)
	}
	if _, ok := m.Sections[section]; !ok {
		m.Sections[section] = make(map[string]string)
	}
}

// Merge copies every option of other into m, overriding on conflict.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	for section, opts := range other.Sections {
		m.AddSection(section)
		for option, value := range opts {
			m.Set(section, option, value)
		}
	}
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
