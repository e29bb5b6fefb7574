package testutil

import (
	"github.com/vk/tmpltbank/internal/config"
)

// Sections is a literal form of a configuration, section -> option -> value.
type Sections map[string]map[string]string

// Model builds a config.Model from one or more section literals. Later
// literals override earlier ones.
func Model(layers ...Sections) *config.Model {
	m := config.NewModel()
	for _, layer := range layers {
		for section, opts := range layer {
			m.AddSection(section)
			for option, value := range opts {
				m.Set(section, option, value)
			}
		}
	}
	return m
}

// Resolver is Model wrapped in a config.Resolver.
func Resolver(layers ...Sections) *config.Resolver {
	return config.NewResolver(Model(layers...))
}

// BaseWorkflow is a two-detector workflow over [1000000000, 1000010000) with
// a geometric bank generator and a pycbc matched filter, both using 2048 s of
// analysis time padded by 8 s.
func BaseWorkflow() Sections {
	return Sections{
		"ahope": {
			"start-time": "1000000000",
			"end-time":   "1000010000",
		},
		"ahope-ifos": {
			"h1": "",
			"l1": "",
		},
		"executables": {
			"tmpltbank": "/opt/pycbc/bin/pycbc_geom_nonspinbank",
			"inspiral":  "/opt/pycbc/bin/pycbc_inspiral",
		},
		"ahope-tmpltbank": {
			"tmpltbank-method": "WORKFLOW_INDEPENDENT_IFOS",
			"analysis-length":  "2048",
		},
		"ahope-matchedfilter": {
			"analysis-length": "2048",
		},
		"tmpltbank": {
			"pad-data": "8",
		},
		"inspiral": {
			"pad-data":          "8",
			"segment-start-pad": "64",
			"segment-end-pad":   "16",
		},
	}
}
