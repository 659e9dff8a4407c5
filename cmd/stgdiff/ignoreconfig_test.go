package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stg-tools/stg/diff"
)

func writeIgnoreConfig(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "ignore.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadIgnoreConfigEmptyPathYieldsZeroMask(t *testing.T) {
	mask, err := loadIgnoreConfig("")
	require.NoError(t, err)
	assert.Equal(t, diff.IgnoreMask(0), mask)
}

func TestLoadIgnoreConfigTranslatesFlagNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ignore.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ignore": ["symbol-crc", "member-size"]}`), 0o644))

	mask, err := loadIgnoreConfig(path)
	require.NoError(t, err)
	assert.True(t, mask.Has(diff.IgnoreSymbolCRC))
	assert.True(t, mask.Has(diff.IgnoreMemberSize))
	assert.False(t, mask.Has(diff.IgnoreQualifier))
}

func TestLoadIgnoreConfigRejectsUnknownFlagName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ignore.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ignore": ["not-a-real-flag"]}`), 0o644))

	_, err := loadIgnoreConfig(path)
	assert.Error(t, err)
}

func TestLoadIgnoreConfigRejectsUnknownTopLevelField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ignore.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"typo": true}`), 0o644))

	_, err := loadIgnoreConfig(path)
	assert.Error(t, err)
}
