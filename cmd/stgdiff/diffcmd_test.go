package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestRunDiffReportsNoDifferencesForIdenticalGraphs(t *testing.T) {
	dir := t.TempDir()
	left := writeGraphFile(t, dir, "a.stg", buildPointInterface("Point", 32))
	right := writeGraphFile(t, dir, "b.stg", buildPointInterface("Point", 32))

	cmd, buf := newTestCmd(t)
	err := runDiff(cmd, left, right, "", false, false)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no ABI-relevant differences")
}

func TestRunDiffReportsDifferencesAndReturnsExitCodeError(t *testing.T) {
	dir := t.TempDir()
	left := writeGraphFile(t, dir, "a.stg", buildPointInterface("Point", 32))
	right := writeGraphFile(t, dir, "b.stg", buildPointInterface("Point", 16))

	cmd, buf := newTestCmd(t)
	err := runDiff(cmd, left, right, "", false, false)
	require.Error(t, err)

	var ece *exitCodeError
	require.ErrorAs(t, err, &ece)
	assert.Equal(t, 1, ece.code)
	assert.Contains(t, buf.String(), "difference(s) found")
}

func TestRunDiffWithIgnoreMemberSizeSuppressesBitsizeDifference(t *testing.T) {
	dir := t.TempDir()
	left := writeGraphFile(t, dir, "a.stg", buildPointInterface("Point", 32))
	right := writeGraphFile(t, dir, "b.stg", buildPointInterface("Point", 16))

	ignoreConfigPath := writeIgnoreConfig(t, dir, `{"ignore": ["member-size"]}`)

	cmd, buf := newTestCmd(t)
	err := runDiff(cmd, left, right, ignoreConfigPath, false, false)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no ABI-relevant differences")
}
