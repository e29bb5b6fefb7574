// Package node defines the vertices of the workflow graph: jobs that the
// batch system will run and the files they read or write.
package node

import (
	"fmt"

	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/nodeid"
	"github.com/vk/tmpltbank/internal/segment"
)

// Node is a single vertex in the workflow graph. Nodes are built once by
// their constructors and never mutated afterwards.
type Node struct {
	// ID is the unique, structured identifier for the node.
	ID nodeid.Address
	// Type distinguishes between job and file nodes.
	Type NodeType

	// Executable is the base name of the program a job node runs.
	Executable string
	// Instrument is the instrument id, or a concatenation of ids for
	// jobs that serve several instruments.
	Instrument string
	// Data is the span of input data a job reads. For jobs that read no
	// data it is the span the outputs are valid for.
	Data segment.Segment
	// Valid is the span the job's outputs are valid for.
	Valid segment.Segment
	// Options are the command line options a job node carries, in the order
	// they were set.
	Options []Option

	// Inputs are the artifacts a job node reads.
	Inputs artifact.Collection
	// Outputs are the artifacts a job node writes.
	Outputs artifact.Collection

	// File is the artifact a file node stands for. It is nil for jobs.
	File *artifact.Artifact
}

// Option is a single command line option of a job.
type Option struct {
	Name  string
	Value string
}

// NodeType distinguishes between different kinds of nodes in the graph.
type NodeType int

const (
	// JobNode represents a program invocation.
	JobNode NodeType = iota
	// FileNode represents an artifact consumed or produced by jobs.
	FileNode
)

// String implements fmt.Stringer.
func (t NodeType) String() string {
	switch t {
	case JobNode:
		return "job"
	case FileNode:
		return "file"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// JobSpec collects the fields of a job node.
type JobSpec struct {
	Executable string
	Instrument string
	Data       segment.Segment
	Valid      segment.Segment
	Options    []Option
	Inputs     artifact.Collection
	Outputs    artifact.Collection
}

// CreateJobNode builds a job node. Inputs, outputs and options are copied.
func CreateJobNode(id nodeid.Address, spec JobSpec) *Node {
	return &Node{
		ID:         id,
		Type:       JobNode,
		Executable: spec.Executable,
		Instrument: spec.Instrument,
		Data:       spec.Data,
		Valid:      spec.Valid,
		Options:    append([]Option(nil), spec.Options...),
		Inputs:     append(artifact.Collection(nil), spec.Inputs...),
		Outputs:    append(artifact.Collection(nil), spec.Outputs...),
	}
}

// CreateFileNode builds the file node standing for a.
func CreateFileNode(id nodeid.Address, a artifact.Artifact) *Node {
	return &Node{
		ID:         id,
		Type:       FileNode,
		Instrument: a.Instrument,
		Data:       a.Validity,
		Valid:      a.Validity,
		File:       &a,
	}
}

// Option returns the value of the named option and whether it is set.
func (n *Node) Option(name string) (string, bool) {
	for _, o := range n.Options {
		if o.Name == name {
			return o.Value, true
		}
	}
	return "", false
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("%s %s", n.Type, n.ID.String())
}
