package manifest

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/node"
	"github.com/vk/tmpltbank/internal/topologystore"
)

// Manifest is what the build tool writes after running the stage.
type Manifest struct {
	Stage     string        `yaml:"stage"`
	Method    string        `yaml:"method"`
	Tags      []string      `yaml:"tags,omitempty"`
	Artifacts []artifactDoc `yaml:"artifacts"`
	Jobs      []jobDoc      `yaml:"jobs"`
}

type jobDoc struct {
	ID         string      `yaml:"id"`
	Executable string      `yaml:"executable"`
	Instrument string      `yaml:"instrument"`
	Data       [2]int64    `yaml:"data,flow"`
	Valid      [2]int64    `yaml:"valid,flow"`
	Options    []optionDoc `yaml:"options,omitempty"`
	Inputs     []string    `yaml:"inputs,omitempty"`
	Outputs    []string    `yaml:"outputs,omitempty"`
	DependsOn  []string    `yaml:"depends_on,omitempty"`
}

type optionDoc struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value,omitempty"`
}

// Build collects the stage's artifacts and every job node of the graph.
func Build(ctx context.Context, graph topologystore.Store, stage, method string, tags []string, banks artifact.Collection) (*Manifest, error) {
	m := &Manifest{
		Stage:     stage,
		Method:    method,
		Tags:      tags,
		Artifacts: make([]artifactDoc, 0, len(banks)),
		Jobs:      make([]jobDoc, 0),
	}
	for _, a := range banks {
		m.Artifacts = append(m.Artifacts, toDoc(a))
	}

	for _, n := range graph.AllNodes(ctx) {
		if n.Type != node.JobNode {
			continue
		}
		deps, err := graph.DependenciesOf(ctx, n.ID)
		if err != nil {
			return nil, fmt.Errorf("reading dependencies of %s: %w", n, err)
		}
		j := jobDoc{
			ID:         n.ID.String(),
			Executable: n.Executable,
			Instrument: n.Instrument,
			Data:       [2]int64{n.Data.Start, n.Data.End},
			Valid:      [2]int64{n.Valid.Start, n.Valid.End},
		}
		for _, o := range n.Options {
			j.Options = append(j.Options, optionDoc{Name: o.Name, Value: o.Value})
		}
		for _, in := range n.Inputs {
			j.Inputs = append(j.Inputs, in.Location)
		}
		for _, out := range n.Outputs {
			j.Outputs = append(j.Outputs, out.Location)
		}
		for _, d := range deps {
			j.DependsOn = append(j.DependsOn, d.String())
		}
		m.Jobs = append(m.Jobs, j)
	}
	return m, nil
}

// Write encodes m as YAML.
func Write(w io.Writer, m *Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return enc.Close()
}
