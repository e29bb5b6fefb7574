package manifest

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/inmemorytopology"
	"github.com/vk/tmpltbank/internal/node"
	"github.com/vk/tmpltbank/internal/nodeid"
	"github.com/vk/tmpltbank/internal/segment"
)

func TestReadSegments(t *testing.T) {
	src := `
h1:
  - [1000003000, 1000005000]
  - [1000000000, 1000003000]
L1:
  - [1000001000, 1000004000]
`
	segs, err := ReadSegments(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, segment.List{segment.MustNew(1000000000, 1000005000)}, segs["H1"])
	assert.Equal(t, segment.List{segment.MustNew(1000001000, 1000004000)}, segs["L1"])
}

func TestReadSegments_Empty(t *testing.T) {
	segs, err := ReadSegments(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, segs)
}

func TestReadSegments_Errors(t *testing.T) {
	testCases := map[string]string{
		"not a pair":     "H1:\n  - [1, 2, 3]\n",
		"reversed":       "H1:\n  - [20, 10]\n",
		"not a mapping":  "- [1, 2]\n",
		"not an integer": "H1:\n  - [start, end]\n",
	}
	for name, src := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadSegments(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestReadArtifacts(t *testing.T) {
	src := `
- instrument: h1
  tag: DATAFIND
  start: 1000000000
  end: 1000010000
  path: /frames/H1.lcf
- instrument: L1
  tag: DATAFIND
  start: 1000000000
  end: 1000010000
  location: gsiftp://ldas/frames/L1.lcf
  tags: [FULL_DATA]
`
	arts, err := ReadArtifacts(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, arts, 2)

	assert.Equal(t, "H1", arts[0].Instrument)
	assert.Equal(t, "file://localhost/frames/H1.lcf", arts[0].Location)
	assert.Equal(t, segment.MustNew(1000000000, 1000010000), arts[0].Validity)
	assert.Equal(t, "gsiftp://ldas/frames/L1.lcf", arts[1].Location)
	assert.Equal(t, []string{"FULL_DATA"}, arts[1].ExtraTags)
}

func TestReadArtifacts_Errors(t *testing.T) {
	testCases := map[string]string{
		"missing location": "- {instrument: H1, tag: DATAFIND, start: 0, end: 1}\n",
		"both locations":   "- {instrument: H1, tag: DATAFIND, start: 0, end: 1, path: /a, location: file:/a}\n",
		"missing tag":      "- {instrument: H1, start: 0, end: 1, path: /a}\n",
		"reversed":         "- {instrument: H1, tag: DATAFIND, start: 5, end: 1, path: /a}\n",
	}
	for name, src := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadArtifacts(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestBuildAndWrite(t *testing.T) {
	ctx := context.Background()
	graph := inmemorytopology.New()

	frames := artifact.New("H1", "DATAFIND", segment.MustNew(0, 5000), "file://localhost/frames/H1.lcf")
	bank := artifact.New("H1", artifact.TagTemplateBank, segment.MustNew(8, 2056), "file://localhost/out/H1-TMPLTBANK-8-2048.xml.gz")
	job := node.CreateJobNode(nodeid.Job("tmpltbank", "H1", 0), node.JobSpec{
		Executable: "pycbc_geom_nonspinbank",
		Instrument: "H1",
		Data:       segment.MustNew(0, 2064),
		Valid:      bank.Validity,
		Options:    []node.Option{{Name: "approximant", Value: "SPA"}},
		Inputs:     artifact.Collection{frames},
		Outputs:    artifact.Collection{bank},
	})
	fileID := nodeid.File("H1", "frames")
	require.NoError(t, graph.AddNode(ctx, job))
	require.NoError(t, graph.AddNode(ctx, node.CreateFileNode(fileID, frames)))
	require.NoError(t, graph.AddDependency(ctx, fileID, job.ID))

	m, err := Build(ctx, graph, "tmpltbank", "WORKFLOW_INDEPENDENT_IFOS", nil, artifact.Collection{bank})
	require.NoError(t, err)
	require.Len(t, m.Jobs, 1, "file nodes are not listed as jobs")
	assert.Equal(t, []string{"file.H1.frames"}, m.Jobs[0].DependsOn)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))

	assert.Contains(t, buf.String(), "data: [0, 2064]")

	var decoded Manifest
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "tmpltbank", decoded.Stage)
	require.Len(t, decoded.Jobs, 1)
	assert.Equal(t, "tmpltbank.H1.main[0]", decoded.Jobs[0].ID)
	assert.Equal(t, []string{"file://localhost/frames/H1.lcf"}, decoded.Jobs[0].Inputs)

	// The written artifacts read back as inputs of a later stage.
	arts, err := ReadArtifacts(strings.NewReader(mustSub(t, buf.Bytes(), "artifacts")))
	require.NoError(t, err)
	assert.Equal(t, artifact.Collection{bank}, arts)
}

// mustSub re-encodes one top-level key of a YAML document.
func mustSub(t *testing.T, doc []byte, key string) string {
	t.Helper()
	var top map[string]yaml.Node
	require.NoError(t, yaml.Unmarshal(doc, &top))
	sub := top[key]
	out, err := yaml.Marshal(&sub)
	require.NoError(t, err)
	return string(out)
}
