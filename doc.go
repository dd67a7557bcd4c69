// Package sumfile records, retrieves, and validates content digests of
// files in human-readable manifest files.
//
// A manifest is plain UTF-8 text in the coreutils checksum-file layout,
// one entry per line:
//
//	<digestHex>  <filename>
//
// Manifests and data files may be transparently compressed; the format is
// inferred from the filename suffix. All manifest updates go through an
// atomic temp-file-and-rename write (see the fsio subpackage), so a crash
// or a concurrent writer never leaves a half-written manifest at its
// final path.
//
// # Quick start
//
// Record and verify a file's digest:
//
//	err := sumfile.Register(root, filepath.Join(root, "data.csv"))
//	if err != nil {
//	    return err
//	}
//	err = sumfile.Verify(root, filepath.Join(root, "data.csv"))
//
// Check every recorded entry under a root:
//
//	for name, err := range sumfile.VerifyAll(root) {
//	    if err != nil {
//	        fmt.Printf("%s: %v\n", name, err)
//	    }
//	}
//
// # Manifest layout strategies
//
// Three layouts are supported (see [Strategy]): one manifest per directory
// named <dirname>.<alg>, one sidecar per file named <filename>.<alg>, or
// one manifest for a whole tree at <root>/<rootname>.<alg>.
//
// # Concurrency
//
// Operations are synchronous and hold no locks. Two concurrent Register
// calls against the same manifest can both read the pre-update state and
// the later rename silently wins; callers expecting multiple writers must
// serialize registrations to the same manifest externally. Atomicity means
// single-filesystem rename atomicity, nothing more.
package sumfile
