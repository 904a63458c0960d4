package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestStartSpan_NoopProviderStillPropagatesContext(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test")
	defer Finish(span, nil)

	assert.NotNil(t, ctx)
	assert.Equal(t, span, trace.SpanFromContext(ctx))
}

func TestFinish_WithError(t *testing.T) {
	_, span := StartSpan(context.Background(), "failing")

	assert.NotPanics(t, func() { Finish(span, errors.New("boom")) })
	assert.False(t, span.IsRecording())
}
