package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// useObservedLogger swaps the package logger for an in-memory core so tests
// can assert on emitted entries.
func useObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger
	logger = zap.New(core)
	t.Cleanup(func() { logger = prev })
	return logs
}

func TestExecutePromptLogsDispatch(t *testing.T) {
	logs := useObservedLogger(t)

	dryRun = true
	t.Cleanup(func() { dryRun = false })

	require.NoError(t, executePrompt("deploy to production"))

	entries := logs.FilterMessage("Processing prompt").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "deploy to production", fields["input"])
	assert.Equal(t, true, fields["dry_run"])
}

func TestRunToolsLogsCount(t *testing.T) {
	logs := useObservedLogger(t)

	require.NoError(t, runTools(toolsCmd, nil))

	entries := logs.FilterMessage("Listing tools").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 11, entries[0].ContextMap()["count"])
}
