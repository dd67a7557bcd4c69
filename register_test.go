package sumfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/sumfile/compress"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func manifestBytes(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestRegisterCreatesManifest(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "a.txt", "hello world")

	require.NoError(t, Register(root, target))

	mpath := filepath.Join(root, filepath.Base(root)+".sha256")
	want := helloSHA256 + "  a.txt\n"
	assert.Equal(t, want, string(manifestBytes(t, mpath)))
}

func TestRegisterIdempotent(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "a.txt", "hello world")
	mpath := filepath.Join(root, filepath.Base(root)+".sha256")

	require.NoError(t, Register(root, target))
	first := manifestBytes(t, mpath)

	require.NoError(t, Register(root, target))
	assert.Equal(t, first, manifestBytes(t, mpath))

	require.NoError(t, Register(root, target, WithOverwrite()))
	assert.Equal(t, first, manifestBytes(t, mpath))
}

func TestRegisterAppendsSecondEntry(t *testing.T) {
	root := t.TempDir()
	a := writeTestFile(t, root, "a.txt", "alpha")
	b := writeTestFile(t, root, "b.txt", "beta")

	require.NoError(t, Register(root, a))
	require.NoError(t, Register(root, b))

	mpath := filepath.Join(root, filepath.Base(root)+".sha256")
	m, err := ParseManifest(manifestBytes(t, mpath), mpath, SHA256)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	var names []string
	for e := range m.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a.txt", "b.txt"}, names)
}

func TestRegisterContradiction(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "a.txt", "hello world")
	mpath := filepath.Join(root, filepath.Base(root)+".sha256")

	stale := digestA + "  a.txt\n"
	require.NoError(t, os.WriteFile(mpath, []byte(stale), 0o644))

	err := Register(root, target)
	require.ErrorIs(t, err, ErrContradiction)

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "a.txt", serr.Key)
	assert.Equal(t, digestA, serr.Expected)
	assert.Equal(t, helloSHA256, serr.Actual)

	// The manifest on disk is byte-for-byte unchanged.
	assert.Equal(t, stale, string(manifestBytes(t, mpath)))

	// Overwrite never bypasses a contradiction.
	require.ErrorIs(t, Register(root, target, WithOverwrite()), ErrContradiction)
}

func TestRegisterAmbiguousManifest(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "a.txt", "hello world")
	mpath := filepath.Join(root, filepath.Base(root)+".sha256")

	dup := digestA + "  a.txt\n" + digestA + "  a.txt\n"
	require.NoError(t, os.WriteFile(mpath, []byte(dup), 0o644))

	err := Register(root, target)
	require.ErrorIs(t, err, ErrAmbiguousEntry)
	assert.Equal(t, dup, string(manifestBytes(t, mpath)))
}

func TestRegisterEscapingPathNoIO(t *testing.T) {
	root := t.TempDir()
	outside := writeTestFile(t, t.TempDir(), "a.txt", "x")

	err := Register(root, filepath.Join(root, "..", filepath.Base(outside)))
	require.ErrorIs(t, err, ErrPathNotRelative)

	entries, readErr := os.ReadDir(root)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no manifest may be created for an escaping path")
}

func TestRegisterRequireManifest(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "a.txt", "x")

	err := Register(root, target, WithRequireManifest())
	require.ErrorIs(t, err, ErrManifestMissing)

	require.NoError(t, Register(root, target))
	require.NoError(t, Register(root, target, WithRequireManifest()))
}

func TestRegisterExclusiveManifest(t *testing.T) {
	root := t.TempDir()
	a := writeTestFile(t, root, "a.txt", "alpha")
	b := writeTestFile(t, root, "b.txt", "beta")

	require.NoError(t, Register(root, a, WithExclusiveManifest()))
	require.ErrorIs(t, Register(root, b, WithExclusiveManifest()), ErrManifestExists)
}

func TestRegisterExclusiveEntry(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "a.txt", "alpha")

	require.NoError(t, Register(root, target))
	require.ErrorIs(t, Register(root, target, WithExclusiveEntry()), ErrEntryExists)
}

func TestRegisterInvalidManifest(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "a.txt", "x")
	mpath := filepath.Join(root, filepath.Base(root)+".sha256")
	require.NoError(t, os.WriteFile(mpath, []byte("not a manifest\n"), 0o644))

	require.ErrorIs(t, Register(root, target), ErrManifestInvalid)
}

func TestRegisterFileStrategy(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "sub/a.txt", "hello world")

	require.NoError(t, Register(root, target, WithStrategy(StrategyFile)))

	want := helloSHA256 + "  a.txt\n"
	assert.Equal(t, want, string(manifestBytes(t, target+".sha256")))
}

func TestRegisterTreeStrategy(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "sub/a.txt", "hello world")

	require.NoError(t, Register(root, target, WithStrategy(StrategyTree)))

	mpath := filepath.Join(root, filepath.Base(root)+".sha256")
	want := helloSHA256 + "  sub/a.txt\n"
	assert.Equal(t, want, string(manifestBytes(t, mpath)))
}

func TestRegisterCompressedManifest(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "a.txt", "hello world")

	require.NoError(t, Register(root, target, WithManifestCompression(compress.Gzip)))

	mpath := filepath.Join(root, filepath.Base(root)+".sha256.gz")
	raw := manifestBytes(t, mpath)
	assert.NotContains(t, string(raw), "a.txt", "manifest must actually be compressed")

	require.NoError(t, Verify(root, target, WithManifestCompression(compress.Gzip)))
}

func TestRegisterBlake3(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "a.txt", "hello world")

	require.NoError(t, Register(root, target, WithAlgorithm(BLAKE3)))
	require.NoError(t, Verify(root, target, WithAlgorithm(BLAKE3)))

	mpath := filepath.Join(root, filepath.Base(root)+".blake3")
	_, err := os.Stat(mpath)
	require.NoError(t, err)
}

func TestRegisterPreflight(t *testing.T) {
	root := t.TempDir()
	target := writeTestFile(t, root, "a.txt", "x")
	require.NoError(t, Register(root, target, WithPreflight()))

	missing := filepath.Join(root, "absent.txt")
	err := Register(root, missing, WithPreflight())
	require.Error(t, err)
}
