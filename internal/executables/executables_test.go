package executables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/node"
	"github.com/vk/tmpltbank/internal/segment"
	"github.com/vk/tmpltbank/internal/testutil"
)

type constructor func(*config.Resolver, string, string, []string, Options) (Job, error)

func TestValidTimes(t *testing.T) {
	legacyInspiral := testutil.Sections{"inspiral": {"segment-length": "256"}}

	testCases := []struct {
		name       string
		create     constructor
		extra      testutil.Sections
		exe        string
		dataLength int64
		chunk      segment.Segment
	}{
		{
			name:       "legacy bank",
			create:     NewLegacyTmpltbank,
			exe:        LegacyTmpltbankName,
			dataLength: 2064,
			chunk:      segment.MustNew(8, 2056),
		},
		{
			name:       "geometric bank",
			create:     NewGeomNonspinBank,
			exe:        GeomNonspinBankName,
			dataLength: 2064,
			chunk:      segment.MustNew(8, 2056),
		},
		{
			name:       "legacy inspiral trims a quarter segment",
			create:     NewLegacyInspiral,
			extra:      legacyInspiral,
			exe:        LegacyInspiralName,
			dataLength: 2064,
			chunk:      segment.MustNew(72, 1992),
		},
		{
			name:       "pycbc inspiral",
			create:     NewPyCBCInspiral,
			exe:        PyCBCInspiralName,
			dataLength: 2064,
			chunk:      segment.MustNew(72, 2040),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			layers := []testutil.Sections{testutil.BaseWorkflow()}
			if tc.extra != nil {
				layers = append(layers, tc.extra)
			}
			j, err := tc.create(testutil.Resolver(layers...), "H1", "/out", nil, Options{})
			require.NoError(t, err)

			assert.Equal(t, tc.exe, j.Executable())
			assert.Equal(t, "H1", j.Instrument())
			assert.Equal(t, tc.dataLength, j.DataLength())
			assert.Equal(t, tc.chunk, j.ValidChunk())
		})
	}
}

func TestValidTimes_InstrumentTaggedSection(t *testing.T) {
	cfg := testutil.Resolver(testutil.BaseWorkflow(), testutil.Sections{
		"tmpltbank-h1": {"pad-data": "16"},
	})

	h1, err := NewGeomNonspinBank(cfg, "H1", "/out", nil, Options{})
	require.NoError(t, err)
	l1, err := NewGeomNonspinBank(cfg, "L1", "/out", nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(2080), h1.DataLength())
	assert.Equal(t, segment.MustNew(16, 2064), h1.ValidChunk())
	assert.Equal(t, int64(2064), l1.DataLength())
}

func TestValidTimes_StageTagWinsOverInstrument(t *testing.T) {
	cfg := testutil.Resolver(testutil.BaseWorkflow(), testutil.Sections{
		"tmpltbank-full_data": {"pad-data": "4"},
		"tmpltbank-h1":        {"pad-data": "16"},
	})

	j, err := NewGeomNonspinBank(cfg, "H1", "/out", []string{"FULL_DATA"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(2056), j.DataLength())
}

func TestConstructorErrors(t *testing.T) {
	testCases := []struct {
		name     string
		create   constructor
		override testutil.Sections
		drop     [2]string
		target   error
	}{
		{
			name:   "missing pad-data",
			create: NewLegacyTmpltbank,
			drop:   [2]string{"tmpltbank", "pad-data"},
			target: config.ErrMissingConfigKey,
		},
		{
			name:   "missing analysis-length",
			create: NewGeomNonspinBank,
			drop:   [2]string{"ahope-tmpltbank", "analysis-length"},
			target: config.ErrMissingConfigKey,
		},
		{
			name:     "non integer pad",
			create:   NewGeomNonspinBank,
			override: testutil.Sections{"tmpltbank": {"pad-data": "eight"}},
			target:   config.ErrInvalidConfiguration,
		},
		{
			name:     "negative pad",
			create:   NewGeomNonspinBank,
			override: testutil.Sections{"tmpltbank": {"pad-data": "-8"}},
			target:   config.ErrInvalidConfiguration,
		},
		{
			name:     "zero analysis length",
			create:   NewLegacyTmpltbank,
			override: testutil.Sections{"ahope-tmpltbank": {"analysis-length": "0"}},
			target:   config.ErrInvalidConfiguration,
		},
		{
			name:   "legacy inspiral needs segment-length",
			create: NewLegacyInspiral,
			target: config.ErrMissingConfigKey,
		},
		{
			name:     "pads swallow the analysis",
			create:   NewPyCBCInspiral,
			override: testutil.Sections{"inspiral": {"segment-start-pad": "1500", "segment-end-pad": "600"}},
			target:   config.ErrInvalidConfiguration,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			base := testutil.BaseWorkflow()
			if tc.drop[0] != "" {
				delete(base[tc.drop[0]], tc.drop[1])
			}
			layers := []testutil.Sections{base}
			if tc.override != nil {
				layers = append(layers, tc.override)
			}

			_, err := tc.create(testutil.Resolver(layers...), "H1", "/out", nil, Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.target)
		})
	}
}

func TestValidSegment(t *testing.T) {
	j, err := NewGeomNonspinBank(testutil.Resolver(testutil.BaseWorkflow()), "H1", "/out", nil, Options{})
	require.NoError(t, err)

	_, ok := j.ValidSegment(segment.MustNew(0, 2063))
	assert.False(t, ok)

	seg, ok := j.ValidSegment(segment.MustNew(0, 2064))
	require.True(t, ok)
	assert.Equal(t, segment.MustNew(8, 2056), seg)

	seg, ok = j.ValidSegment(segment.MustNew(1000, 10000))
	require.True(t, ok)
	assert.Equal(t, segment.MustNew(1008, 9992), seg)
}

func TestCreateNode(t *testing.T) {
	cfg := testutil.Resolver(testutil.BaseWorkflow(), testutil.Sections{
		"tmpltbank":    {"approximant": "TaylorF2", "min-match": "0.97"},
		"tmpltbank-h1": {"approximant": "SPA"},
	})
	j, err := NewGeomNonspinBank(cfg, "H1", "/out", []string{"FULL_DATA"}, Options{})
	require.NoError(t, err)

	frames := artifact.Collection{artifact.New("H1", "DATAFIND", segment.MustNew(1000000000, 1000003000), "file://localhost/frames/H1.lcf")}
	data := segment.MustNew(1000000000, 1000002064)
	valid := segment.MustNew(1000000008, 1000002056)

	n, err := j.CreateNode(data, valid, frames)
	require.NoError(t, err)

	assert.Equal(t, "tmpltbank.H1.full_data[1000000000]", n.ID.String())
	assert.Equal(t, node.JobNode, n.Type)
	assert.Equal(t, GeomNonspinBankName, n.Executable)
	assert.Equal(t, data, n.Data)
	assert.Equal(t, valid, n.Valid)
	assert.Equal(t, frames, n.Inputs)

	require.Len(t, n.Outputs, 1)
	out := n.Outputs[0]
	assert.Equal(t, artifact.TagTemplateBank, out.Tag)
	assert.Equal(t, valid, out.Validity)
	assert.Equal(t, []string{"FULL_DATA"}, out.ExtraTags)
	assert.Equal(t, "file://localhost/out/H1-TMPLTBANK_FULL_DATA-1000000008-2048.xml.gz", out.Location)

	approximant, ok := n.Option("approximant")
	require.True(t, ok)
	assert.Equal(t, "SPA", approximant)
	_, ok = n.Option("pad-data")
	assert.False(t, ok, "timing options are not passed to the program")
	start, _ := n.Option("gps-start-time")
	assert.Equal(t, "1000000000", start)
	trigEnd, _ := n.Option("trig-end-time")
	assert.Equal(t, "1000002056", trigEnd)
}

func TestCreateNode_WritePSD(t *testing.T) {
	j, err := NewLegacyTmpltbank(testutil.Resolver(testutil.BaseWorkflow()), "L1", "out", nil, Options{WritePSD: true})
	require.NoError(t, err)

	n, err := j.CreateNode(segment.MustNew(0, 2064), segment.MustNew(8, 2056), nil)
	require.NoError(t, err)

	require.Len(t, n.Outputs, 2)
	assert.Equal(t, artifact.TagTemplateBank, n.Outputs[0].Tag)
	assert.Equal(t, artifact.TagPSD, n.Outputs[1].Tag)
	assert.Equal(t, "file:out/L1-PSD-8-2048.txt", n.Outputs[1].Location)
}

func TestCreateNode_Errors(t *testing.T) {
	j, err := NewLegacyTmpltbank(testutil.Resolver(testutil.BaseWorkflow()), "H1", "/out", nil, Options{})
	require.NoError(t, err)

	_, err = j.CreateNode(segment.MustNew(0, 2000), segment.MustNew(8, 1992), nil)
	assert.Error(t, err, "data shorter than the job reads")

	_, err = j.CreateNode(segment.MustNew(0, 2064), segment.MustNew(2000, 2100), nil)
	assert.Error(t, err, "valid outside data")

	_, err = j.CreateNode(segment.MustNew(0, 2064), segment.MustNew(8, 8), nil)
	assert.Error(t, err, "empty valid segment")
}

func TestNoDataCapability(t *testing.T) {
	cfg := testutil.Resolver(testutil.BaseWorkflow())

	legacy, err := NewLegacyTmpltbank(cfg, "H1", "/out", nil, Options{})
	require.NoError(t, err)
	_, ok := legacy.(NoDataJob)
	assert.False(t, ok, "the legacy generator needs data")

	geom, err := NewGeomNonspinBank(cfg, "H1", "/out", nil, Options{})
	require.NoError(t, err)
	_, ok = geom.(NoDataJob)
	assert.False(t, ok, "data reading jobs come from the data constructor")
}

func TestGeomNonspinBankNoData(t *testing.T) {
	// No pad-data and no analysis-length anywhere.
	cfg := testutil.Resolver(testutil.Sections{
		"executables": {"tmpltbank": "pycbc_geom_nonspinbank"},
		"tmpltbank":   {"min-match": "0.97"},
	})

	job, err := NewGeomNonspinBankNoData(cfg, "H1L1", "/out", nil, Options{WritePSD: true})
	require.NoError(t, err)
	assert.Equal(t, GeomNonspinBankName, job.Executable())
	assert.Equal(t, "H1L1", job.Instrument())

	span := segment.MustNew(1000000000, 1000010000)
	n, err := job.CreateNoDataNode(span)
	require.NoError(t, err)
	assert.Equal(t, "tmpltbank.H1L1.main[1000000000]", n.ID.String())
	assert.Equal(t, span, n.Data)
	assert.Equal(t, span, n.Valid)
	assert.Empty(t, n.Inputs)
	require.Len(t, n.Outputs, 2)
	assert.Equal(t, "H1L1", n.Outputs[0].Instrument)
	assert.Equal(t, span, n.Outputs[0].Validity)
	assert.Equal(t, artifact.TagPSD, n.Outputs[1].Tag)

	_, ok := n.Option("analytic-psd")
	assert.True(t, ok)
	v, ok := n.Option("min-match")
	assert.True(t, ok)
	assert.Equal(t, "0.97", v)
	_, ok = n.Option("gps-start-time")
	assert.False(t, ok, "no-data nodes read no data")

	_, err = job.CreateNoDataNode(segment.Segment{})
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)
}

func TestGeomNonspinBankNoData_IgnoresTimingOptions(t *testing.T) {
	cfg := testutil.Resolver(testutil.Sections{
		"tmpltbank":       {"pad-data": "-8"},
		"ahope-tmpltbank": {"analysis-length": "soon"},
	})

	job, err := NewGeomNonspinBankNoData(cfg, "H1", "/out", nil, Options{})
	require.NoError(t, err)
	n, err := job.CreateNoDataNode(segment.MustNew(0, 100))
	require.NoError(t, err)
	_, ok := n.Option("pad-data")
	assert.False(t, ok)
}
