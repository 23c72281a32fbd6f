package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := RequestIDFromContext(ctx)
	assert.False(t, ok)

	id := GenerateRequestID()
	ctx = WithRequestID(ctx, id)

	got, ok := RequestIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestFromContextWithoutID(t *testing.T) {
	log := FromContext(context.Background())
	assert.Equal(t, slog.Default(), log)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("garbage"))
}
