package sumfile

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/meigma/sumfile/fsio"
)

// Register computes target's digest and records it in the manifest that
// governs target under root.
//
// A missing manifest is created lazily unless [WithRequireManifest] is
// set. An existing entry with the same digest makes Register a no-op
// ([WithOverwrite] merely rewrites the identical manifest); an existing
// entry with a different digest always fails with ErrContradiction and
// leaves the manifest untouched; a name listed more than once fails with
// ErrAmbiguousEntry because an ambiguous manifest cannot be safely
// extended.
//
// The manifest update is atomic: concurrent readers never observe a
// partial manifest. Two concurrent registrations to the same manifest are
// not serialized here; the later rename wins.
func Register(root, target string, opts ...Option) error {
	cfg := newConfig(opts)

	key, err := RelativeKey(root, target)
	if err != nil {
		return err
	}
	mpath := cfg.manifestLocation(root, target)
	cfg.debug("registering digest", "target", target, "manifest", mpath, "algorithm", cfg.algorithm)

	if cfg.preflight {
		if err := fsio.VerifyReadable([]string{target}, false, false); err != nil {
			return err
		}
		if err := fsio.VerifyWritableFiles([]string{mpath}, true, false); err != nil {
			return err
		}
		if err := fsio.VerifyWritableDirs([]string{filepath.Dir(mpath)}, false); err != nil {
			return err
		}
	}

	m, exists, err := loadManifest(mpath, cfg.algorithm)
	if err != nil {
		return err
	}
	if exists && cfg.exclusiveManifest {
		return &Error{Kind: ErrManifestExists, Path: mpath}
	}
	if !exists && cfg.requireManifest {
		return &Error{Kind: ErrManifestMissing, Key: key, Path: mpath}
	}

	sum, err := DigestFile(cfg.algorithm, target)
	if err != nil {
		return err
	}

	name := entryKey(cfg.strategy, key)
	var matches []Entry
	for e := range m.FindAll(name) {
		matches = append(matches, e)
	}

	switch len(matches) {
	case 0:
		m.add(Entry{Name: name, Digest: sum})
	case 1:
		if cfg.exclusiveEntry {
			return &Error{Kind: ErrEntryExists, Key: name, Path: mpath, Expected: matches[0].Digest}
		}
		if matches[0].Digest != sum {
			return &Error{Kind: ErrContradiction, Key: name, Path: mpath, Expected: matches[0].Digest, Actual: sum}
		}
		if !cfg.overwrite {
			cfg.debug("entry already recorded", "name", name, "digest", sum)
			return nil
		}
	default:
		return &Error{Kind: ErrAmbiguousEntry, Key: name, Path: mpath}
	}

	if err := fsio.Write(mpath, m.Serialize()); err != nil {
		return err
	}
	cfg.debug("manifest persisted", "manifest", mpath, "entries", m.Len())
	return nil
}

// loadManifest reads and parses the manifest at path. A missing file
// yields an empty manifest and exists=false.
func loadManifest(path, algorithm string) (*Manifest, bool, error) {
	data, err := fsio.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewManifest(path, algorithm), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	m, err := ParseManifest(data, path, algorithm)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}
