package workflow

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/ctxlog"
	"github.com/vk/tmpltbank/internal/node"
	"github.com/vk/tmpltbank/internal/nodeid"
	"github.com/vk/tmpltbank/internal/segment"
	"github.com/vk/tmpltbank/internal/topologystore"
)

const (
	// Section holds the workflow-wide options.
	Section = "ahope"
	// IfosSection lists the instruments, one option per instrument.
	IfosSection = "ahope-ifos"
)

// Workflow is the value a stage receives. Config and Graph are shared with
// other stages; Ifos and AnalysisTime are read-only.
type Workflow struct {
	Config       *config.Resolver
	Ifos         []string
	AnalysisTime segment.Segment
	Graph        topologystore.Store
}

// New reads the instruments and the analysis span from cfg.
func New(cfg *config.Resolver, graph topologystore.Store) (*Workflow, error) {
	if cfg == nil {
		return nil, fmt.Errorf("workflow requires a configuration")
	}
	if graph == nil {
		return nil, fmt.Errorf("workflow requires a graph store")
	}

	start, err := cfg.GetInt64Tagged(Section, "start-time", nil)
	if err != nil {
		return nil, err
	}
	end, err := cfg.GetInt64Tagged(Section, "end-time", nil)
	if err != nil {
		return nil, err
	}
	span, err := segment.New(start, end)
	if err != nil {
		return nil, &config.InvalidValueError{
			Section: Section,
			Option:  "end-time",
			Value:   fmt.Sprint(end),
			Reason:  err.Error(),
		}
	}
	if span.IsEmpty() {
		return nil, config.Invalidf("[%s] analysis span %s is empty", Section, span)
	}

	if !cfg.HasSection(IfosSection) {
		return nil, &config.MissingKeyError{Option: "<instrument>", Tried: []string{"[" + IfosSection + "]"}}
	}
	ifos := make([]string, 0)
	for _, opt := range cfg.Options(IfosSection) {
		ifos = append(ifos, strings.ToUpper(opt))
	}
	if len(ifos) == 0 {
		return nil, config.Invalidf("[%s] lists no instruments", IfosSection)
	}
	sort.Strings(ifos)

	return &Workflow{
		Config:       cfg,
		Ifos:         ifos,
		AnalysisTime: span,
		Graph:        graph,
	}, nil
}

// FileAddress is the graph address of the file node standing for a. It is
// derived from the artifact's location so that every job reading or writing
// the same file shares one node.
func FileAddress(a artifact.Artifact) nodeid.Address {
	key := uuid.NewSHA1(uuid.NameSpaceURL, []byte(a.Location))
	return nodeid.File(a.Instrument, key.String())
}

// AddNode adds a job node to the graph together with file nodes for its
// inputs and outputs. Inputs become dependencies of the job; outputs depend
// on it.
func (w *Workflow) AddNode(ctx context.Context, n *node.Node) error {
	logger := ctxlog.FromContext(ctx)

	if n == nil || n.Type != node.JobNode {
		return fmt.Errorf("workflow accepts job nodes only")
	}
	if err := checkAddress(n.ID); err != nil {
		return err
	}
	if err := w.Graph.AddNode(ctx, n); err != nil {
		return fmt.Errorf("adding %s: %w", n, err)
	}

	for _, in := range n.Inputs {
		fileID, err := w.addFile(ctx, in)
		if err != nil {
			return err
		}
		if err := w.Graph.AddDependency(ctx, fileID, n.ID); err != nil {
			return fmt.Errorf("linking input %s to %s: %w", in.Location, n, err)
		}
	}
	for _, out := range n.Outputs {
		fileID, err := w.addFile(ctx, out)
		if err != nil {
			return err
		}
		if err := w.Graph.AddDependency(ctx, n.ID, fileID); err != nil {
			return fmt.Errorf("linking output %s to %s: %w", out.Location, n, err)
		}
	}

	logger.Debug("Added job to workflow graph.", "node", n.ID.String(), "inputs", len(n.Inputs), "outputs", len(n.Outputs))
	return nil
}

// checkAddress rejects job addresses that do not read back as themselves,
// e.g. when a stage tag contains a dot or a bracket.
func checkAddress(id nodeid.Address) error {
	raw := id.String()
	parsed, err := nodeid.Parse(raw)
	if err != nil {
		return config.Invalidf("job address %q cannot be used as a node id: %v", raw, err)
	}
	if !parsed.Equal(&id) {
		return config.Invalidf("job address %q does not read back as itself", raw)
	}
	return nil
}

func (w *Workflow) addFile(ctx context.Context, a artifact.Artifact) (nodeid.Address, error) {
	id := FileAddress(a)
	if err := w.Graph.AddNode(ctx, node.CreateFileNode(id, a)); err != nil {
		return id, fmt.Errorf("adding file %s: %w", a.Location, err)
	}
	return id, nil
}
