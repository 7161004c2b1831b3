package prefs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.json")

	p := loadFrom(path)
	p.SetFloat(KeyWindowWidth, 1280)
	p.SetString(KeyExportDir, "/tmp/exports")
	require.NoError(t, p.Save())

	reloaded := loadFrom(path)
	assert.Equal(t, 1280.0, reloaded.FloatWithFallback(KeyWindowWidth, 0))
	assert.Equal(t, "/tmp/exports", reloaded.String(KeyExportDir))
}

func TestMissingFileYieldsFallbacks(t *testing.T) {
	p := loadFrom(filepath.Join(t.TempDir(), "preferences.json"))

	assert.Equal(t, 900.0, p.FloatWithFallback(KeyWindowHeight, 900))
	assert.Equal(t, "", p.String(KeyExportDir))
}
