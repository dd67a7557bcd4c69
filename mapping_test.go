package sumfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativeKey(t *testing.T) {
	tests := []struct {
		name   string
		root   string
		target string
		want   string
	}{
		{"direct child", "/data", "/data/a.txt", "a.txt"},
		{"nested", "/data", "/data/sub/a.txt", "sub/a.txt"},
		{"dot segments collapse", "/data", "/data/sub/../a.txt", "a.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RelativeKey(tt.root, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelativeKeyEscapes(t *testing.T) {
	tests := []struct {
		name   string
		root   string
		target string
	}{
		{"parent escape", "/data", "/data/../etc/passwd"},
		{"sibling", "/data", "/other/a.txt"},
		{"root itself", "/data", "/data"},
		{"parent", "/data", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RelativeKey(tt.root, tt.target)
			require.ErrorIs(t, err, ErrPathNotRelative)
		})
	}
}

func TestManifestPath(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		target   string
		want     string
	}{
		{"directory", StrategyDirectory, "/data/sub/a.txt", "/data/sub/sub.sha256"},
		{"directory at root", StrategyDirectory, "/data/a.txt", "/data/data.sha256"},
		{"file sidecar", StrategyFile, "/data/a.txt", "/data/a.txt.sha256"},
		{"tree", StrategyTree, "/data/sub/a.txt", "/data/data.sha256"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ManifestPath("/data", tt.target, tt.strategy, SHA256)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestManifestPathNormalizesAlgorithm(t *testing.T) {
	got := ManifestPath("/data", "/data/a.txt", StrategyFile, "SHA-256")
	assert.Equal(t, filepath.FromSlash("/data/a.txt.sha256"), got)
}

func TestEntryKey(t *testing.T) {
	assert.Equal(t, "a.txt", entryKey(StrategyDirectory, "sub/a.txt"))
	assert.Equal(t, "a.txt", entryKey(StrategyFile, "sub/a.txt"))
	assert.Equal(t, "sub/a.txt", entryKey(StrategyTree, "sub/a.txt"))
}
