package sumfile

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RegisterTree registers every regular file under root, returning the
// number of files processed. Symlinks, manifests themselves, and leftover
// temporary siblings are skipped; empty directories contribute nothing.
//
// The walk is sequential and fail-fast: the first failing registration
// stops the pass and its error is returned, together with the count of
// files registered before it. Manifests are still updated one atomic
// write per registration, so an interrupted pass leaves every manifest
// either fully updated or untouched.
func RegisterTree(root string, opts ...Option) (int, error) {
	cfg := newConfig(opts)
	registered := 0
	err := fs.WalkDir(os.DirFS(root), ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		name := filepath.Base(p)
		if strings.HasPrefix(name, ".__") || isManifestName(name, cfg.algorithm) {
			return nil
		}
		target := filepath.Join(root, filepath.FromSlash(p))
		if err := Register(root, target, opts...); err != nil {
			return err
		}
		registered++
		return nil
	})
	if err != nil {
		return registered, err
	}
	cfg.debug("tree registered", "root", root, "files", registered)
	return registered, nil
}
