package sumfile

import (
	"path"
	"path/filepath"
	"strings"
)

// Strategy selects how manifests are organized on disk.
type Strategy uint8

const (
	// StrategyDirectory keeps one manifest per directory, named
	// <dirname>.<alg> inside it, covering the directory's files by
	// basename.
	StrategyDirectory Strategy = iota

	// StrategyFile keeps one sidecar manifest per file, named
	// <filename>.<alg>, holding a single entry keyed by basename.
	StrategyFile

	// StrategyTree keeps one manifest for a whole tree, named
	// <rootname>.<alg> at the root, with entries keyed by
	// slash-separated paths relative to the root.
	StrategyTree
)

// String returns the strategy's name.
func (s Strategy) String() string {
	switch s {
	case StrategyDirectory:
		return "directory"
	case StrategyFile:
		return "file"
	case StrategyTree:
		return "tree"
	default:
		return "unknown"
	}
}

// RelativeKey returns target's slash-separated path relative to root. It
// fails with ErrPathNotRelative when target does not resolve to a
// descendant of root, and performs no file I/O either way.
func RelativeKey(root, target string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, absTarget)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &Error{Kind: ErrPathNotRelative, Key: target, Path: root}
	}
	return filepath.ToSlash(rel), nil
}

// ManifestPath returns the manifest file governing target under root for
// the given strategy and algorithm. It is a pure function of its
// arguments.
func ManifestPath(root, target string, strategy Strategy, algorithm string) string {
	alg := normalizeAlgorithm(algorithm)
	switch strategy {
	case StrategyFile:
		return target + "." + alg
	case StrategyTree:
		return filepath.Join(root, baseName(root)+"."+alg)
	default:
		dir := filepath.Dir(target)
		return filepath.Join(dir, baseName(dir)+"."+alg)
	}
}

// entryKey scopes a relative key per strategy: tree manifests record the
// full relative path, the others record the basename.
func entryKey(strategy Strategy, relKey string) string {
	if strategy == StrategyTree {
		return relKey
	}
	return path.Base(relKey)
}

// baseName resolves the last element of p, going through Abs so "." and
// trailing separators still yield a real directory name.
func baseName(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return filepath.Base(p)
}
