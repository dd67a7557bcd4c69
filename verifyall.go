package sumfile

import (
	"io/fs"
	"iter"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/meigma/sumfile/compress"
)

// VerifyAll verifies every entry recorded in every manifest reachable
// under root, yielding (relative filename, outcome) pairs. A nil outcome
// means the entry validated; failures carry the specific kind
// (ErrMismatch, ErrAmbiguousEntry, ErrManifestInvalid, a read error).
// One entry's failure never aborts the rest.
//
// The sequence is lazy and restartable: each range re-discovers manifests
// and re-verifies. Discovery walks the tree in parallel but results are
// sorted, so iteration order is deterministic.
func VerifyAll(root string, opts ...Option) iter.Seq2[string, error] {
	cfg := newConfig(opts)
	return func(yield func(string, error) bool) {
		manifests, err := discoverManifests(root, &cfg)
		if err != nil {
			yield("", err)
			return
		}
		for _, mpath := range manifests {
			if !verifyManifest(root, mpath, &cfg, yield) {
				return
			}
		}
	}
}

// verifyManifest checks every entry of one manifest, yielding an outcome
// per entry. It returns false when the consumer stopped the iteration.
func verifyManifest(root, mpath string, cfg *config, yield func(string, error) bool) bool {
	display := displayName(root, mpath)
	m, exists, err := loadManifest(mpath, cfg.algorithm)
	if err != nil {
		return yield(display, err)
	}
	if !exists {
		return yield(display, &Error{Kind: ErrManifestMissing, Path: mpath})
	}

	seen := make(map[string]int, m.Len())
	for e := range m.Entries() {
		seen[e.Name]++
	}

	dir := filepath.Dir(mpath)
	reported := make(map[string]bool)
	for e := range m.Entries() {
		target := filepath.Join(dir, filepath.FromSlash(e.Name))
		name := displayName(root, target)
		if seen[e.Name] > 1 {
			if reported[e.Name] {
				continue
			}
			reported[e.Name] = true
			if !yield(name, &Error{Kind: ErrAmbiguousEntry, Key: e.Name, Path: mpath}) {
				return false
			}
			continue
		}
		actual, err := DigestFile(cfg.algorithm, target)
		switch {
		case err != nil:
			if !yield(name, err) {
				return false
			}
		case actual != e.Digest:
			if !yield(name, &Error{Kind: ErrMismatch, Key: e.Name, Path: mpath, Expected: e.Digest, Actual: actual}) {
				return false
			}
		default:
			if !yield(name, nil) {
				return false
			}
		}
	}
	return true
}

// discoverManifests locates every manifest file governed by the
// configured strategy under root, sorted for deterministic iteration.
func discoverManifests(root string, cfg *config) ([]string, error) {
	if cfg.strategy == StrategyTree {
		return []string{cfg.manifestLocation(root, root)}, nil
	}

	var (
		mu    sync.Mutex
		found []string
	)
	conf := fastwalk.Config{
		Follow: false,
	}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !isManifestName(filepath.Base(path), cfg.algorithm) {
			return nil
		}
		mu.Lock()
		found = append(found, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}

// isManifestName reports whether a filename is a manifest for the given
// algorithm: its compression-stripped name ends in ".<alg>". Temporary
// siblings from interrupted writes are excluded.
func isManifestName(name, algorithm string) bool {
	if strings.HasPrefix(name, ".__") {
		return false
	}
	stripped := compress.StripSuffix(name)
	return strings.HasSuffix(stripped, "."+normalizeAlgorithm(algorithm))
}

// displayName is the slash-separated path of p relative to root, falling
// back to p itself when it does not resolve.
func displayName(root, p string) string {
	if rel, err := RelativeKey(root, p); err == nil {
		return rel
	}
	return filepath.ToSlash(p)
}
