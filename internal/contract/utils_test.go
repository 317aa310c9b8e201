package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/picklist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorTier(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		tier  string
	}{
		{"depth", 0.1, schema.DepthTier},
		{"solid", 0.45, schema.SolidTier},
		{"strong", 0.65, schema.StrongTier},
		{"elite", 0.9, schema.EliteTier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorTier(tt.score)
			// Should contain the plain tier
			assert.Contains(t, result, tt.tier)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "picklist.csv")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetDBFilePaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	storePath := GetStoreDBFilePath()
	assert.Contains(t, storePath, ".picklist_store.db")
	assert.True(t, strings.HasPrefix(storePath, homeDir), "path %s should start with home dir %s", storePath, homeDir)

	historyPath := GetHistoryDBFilePath()
	assert.Contains(t, historyPath, ".picklist_history.db")
	assert.NotEqual(t, storePath, historyPath)
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"short name untouched", "Robonauts", 20, "Robonauts"},
		{"exact fit untouched", "Robonauts", 9, "Robonauts"},
		{"long name truncated", "The Cheesy Poofs", 10, "The Che..."},
		{"tiny width untouched", "Robonauts", 3, "Robonauts"},
		{"multibyte runes", "Équipe Étoile", 8, "Équip..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
