package slogger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	require.Equal(t, LevelDebug, LevelFromString("debug"))
	require.Equal(t, LevelInfo, LevelFromString("INFO"))
	require.Equal(t, LevelWarn, LevelFromString("warn"))
	require.Equal(t, LevelError, LevelFromString("error"))
	require.Equal(t, DefaultLogLevel, LevelFromString("bogus"))
}

func TestSloggerWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelDebug, false)

	logger.Info("resolved plan", "skills", 3)
	require.Contains(t, buf.String(), "resolved plan")
	require.Contains(t, buf.String(), "skills=3")
}

func TestSloggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelWarn, false)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestSloggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo, false).With("skill", "linter")

	logger.Info("loaded")
	require.Contains(t, buf.String(), "skill=linter")
}

func TestContextRoundTrip(t *testing.T) {
	logger := NewDevNullLogger()
	ctx := WithLogger(context.Background(), logger)
	require.Equal(t, Logger(logger), Ctx(ctx))
}

func TestCtxFallback(t *testing.T) {
	require.NotNil(t, Ctx(context.Background()))
	require.NotNil(t, Ctx(nil))
}
