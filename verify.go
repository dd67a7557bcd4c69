package sumfile

import (
	"github.com/meigma/sumfile/fsio"
)

// Verify checks target's current content against the digest recorded in
// the manifest that governs it under root.
//
// It fails with ErrManifestMissing when no manifest exists, ErrEntryMissing
// when target is not listed, ErrAmbiguousEntry when it is listed more than
// once (a duplicate is never resolved by picking one arbitrarily), and
// ErrMismatch, carrying both digests, when the content has diverged.
func Verify(root, target string, opts ...Option) error {
	cfg := newConfig(opts)

	key, err := RelativeKey(root, target)
	if err != nil {
		return err
	}
	mpath := cfg.manifestLocation(root, target)
	cfg.debug("verifying digest", "target", target, "manifest", mpath, "algorithm", cfg.algorithm)

	if cfg.preflight {
		if err := fsio.VerifyReadable([]string{target, mpath}, false, false); err != nil {
			return err
		}
	}

	m, exists, err := loadManifest(mpath, cfg.algorithm)
	if err != nil {
		return err
	}
	if !exists {
		return &Error{Kind: ErrManifestMissing, Key: key, Path: mpath}
	}

	entry, err := m.FindUnique(entryKey(cfg.strategy, key))
	if err != nil {
		return err
	}

	actual, err := DigestFile(cfg.algorithm, target)
	if err != nil {
		return err
	}
	if actual != entry.Digest {
		return &Error{Kind: ErrMismatch, Key: entry.Name, Path: mpath, Expected: entry.Digest, Actual: actual}
	}
	cfg.debug("digest validated", "name", entry.Name, "digest", actual)
	return nil
}
