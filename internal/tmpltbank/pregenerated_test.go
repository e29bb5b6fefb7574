package tmpltbank

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/tmpltbank/internal/artifact"
	"github.com/vk/tmpltbank/internal/config"
	"github.com/vk/tmpltbank/internal/testutil"
)

func TestPregenerated_Shared(t *testing.T) {
	f := newFixture(t, testutil.Sections{
		"ahope-tmpltbank": {"tmpltbank-pregenerated-bank": "/banks/shared.xml.gz"},
	})

	banks, err := Pregenerated(f.ctx, f.wf, nil)
	require.NoError(t, err)

	require.Len(t, banks, 2)
	for i, ifo := range []string{"H1", "L1"} {
		assert.Equal(t, ifo, banks[i].Instrument)
		assert.Equal(t, artifact.TagPregeneratedBank, banks[i].Tag)
		assert.Equal(t, analysisSpan, banks[i].Validity)
		assert.Equal(t, "file://localhost/banks/shared.xml.gz", banks[i].Location)
	}
	assert.Empty(t, f.graph.AllNodes(f.ctx), "pregenerated banks add no jobs")
}

func TestPregenerated_PerInstrument(t *testing.T) {
	f := newFixture(t, testutil.Sections{
		"ahope-tmpltbank": {
			"tmpltbank-pregenerated-bank-H1": "/banks/H1.xml.gz",
			"tmpltbank-pregenerated-bank-L1": "banks/L1 bank.xml.gz",
		},
	})

	banks, err := Pregenerated(f.ctx, f.wf, nil)
	require.NoError(t, err)

	require.Len(t, banks, 2)
	assert.Equal(t, "file://localhost/banks/H1.xml.gz", banks[0].Location)
	assert.Equal(t, "file:banks/L1%20bank.xml.gz", banks[1].Location)
}

func TestPregenerated_SharedWinsOverPerInstrument(t *testing.T) {
	f := newFixture(t, testutil.Sections{
		"ahope-tmpltbank": {
			"tmpltbank-pregenerated-bank":    "/banks/shared.xml.gz",
			"tmpltbank-pregenerated-bank-H1": "/banks/H1.xml.gz",
		},
	})

	banks, err := Pregenerated(f.ctx, f.wf, nil)
	require.NoError(t, err)
	assert.Equal(t, "file://localhost/banks/shared.xml.gz", banks[0].Location)
}

func TestPregenerated_TaggedPerInstrument(t *testing.T) {
	f := newFixture(t, testutil.Sections{
		"ahope-tmpltbank":           {"tmpltbank-pregenerated-bank-L1": "/banks/L1.xml.gz"},
		"ahope-tmpltbank-full_data": {"tmpltbank-pregenerated-bank-H1": "/banks/H1-full.xml.gz"},
	})

	banks, err := Pregenerated(f.ctx, f.wf, []string{"FULL_DATA"})
	require.NoError(t, err)
	assert.Equal(t, "file://localhost/banks/H1-full.xml.gz", banks[0].Location)
	assert.Equal(t, "file://localhost/banks/L1.xml.gz", banks[1].Location)
	assert.Equal(t, []string{"FULL_DATA"}, banks[1].ExtraTags)
}

func TestPregenerated_Missing(t *testing.T) {
	f := newFixture(t, testutil.Sections{
		"ahope-tmpltbank": {"tmpltbank-pregenerated-bank-H1": "/banks/H1.xml.gz"},
	})

	_, err := Pregenerated(f.ctx, f.wf, []string{"FULL_DATA"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrMissingConfigKey))

	var missing *config.MissingKeyError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{
		"[ahope-tmpltbank-full_data] tmpltbank-pregenerated-bank",
		"[ahope-tmpltbank] tmpltbank-pregenerated-bank",
		"[ahope-tmpltbank-full_data] tmpltbank-pregenerated-bank-L1",
		"[ahope-tmpltbank] tmpltbank-pregenerated-bank-L1",
	}, missing.Tried)
}

func TestPregenerated_Empty(t *testing.T) {
	f := newFixture(t, testutil.Sections{
		"ahope-tmpltbank": {"tmpltbank-pregenerated-bank": "  "},
	})

	_, err := Pregenerated(f.ctx, f.wf, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)
}
