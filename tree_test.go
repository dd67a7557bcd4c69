package sumfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTree(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.txt", "alpha")
	writeTestFile(t, root, "sub/b.txt", "beta")
	writeTestFile(t, root, "sub/deep/c.txt", "gamma")

	n, err := RegisterTree(root)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for name, err := range VerifyAll(root) {
		assert.NoError(t, err, name)
	}
}

func TestRegisterTreeSkipsManifests(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.txt", "alpha")

	n, err := RegisterTree(root)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// A second pass must not register the manifest file itself.
	n, err = RegisterTree(root)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	mpath := filepath.Join(root, filepath.Base(root)+".sha256")
	m, perr := ParseManifest(manifestBytes(t, mpath), mpath, SHA256)
	require.NoError(t, perr)
	assert.Equal(t, 1, m.Len())
}

func TestRegisterTreeTreeStrategy(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.txt", "alpha")
	writeTestFile(t, root, "sub/b.txt", "beta")

	n, err := RegisterTree(root, WithStrategy(StrategyTree))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	mpath := filepath.Join(root, filepath.Base(root)+".sha256")
	m, perr := ParseManifest(manifestBytes(t, mpath), mpath, SHA256)
	require.NoError(t, perr)
	require.Equal(t, 2, m.Len())

	var names []string
	for e := range m.Entries() {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"a.txt", "sub/b.txt"}, names)
}

func TestRegisterTreeFailFast(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.txt", "hello world")
	mpath := filepath.Join(root, filepath.Base(root)+".sha256")
	require.NoError(t, os.WriteFile(mpath, []byte(digestA+"  a.txt\n"), 0o644))

	_, err := RegisterTree(root)
	require.ErrorIs(t, err, ErrContradiction)
}
