package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)

	FromContext(ctx).Info("hello", "stage", "tmpltbank")
	assert.Contains(t, buf.String(), "stage=tmpltbank")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
	ctx = With(ctx, "method", "WORKFLOW_INDEPENDENT_IFOS")
	ctx = With(ctx, "instrument", "H1")

	FromContext(ctx).Info("placed")
	assert.Contains(t, buf.String(), "method=WORKFLOW_INDEPENDENT_IFOS instrument=H1")
}
