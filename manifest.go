package sumfile

import (
	"bytes"
	"iter"
	"strings"
)

// entrySeparator is the fixed delimiter between digest and name, matching
// the coreutils checksum-file layout.
const entrySeparator = "  "

// Entry is one manifest line: a name and its lowercase hex digest.
//
// Name is relative to the manifest's scope: a basename for the directory
// and sidecar strategies, a slash-separated relative path for the tree
// strategy. It never contains parent-directory segments.
type Entry struct {
	Name   string
	Digest string
}

// Manifest is the in-memory form of one manifest file: an ordered entry
// list plus the algorithm it was built for and the path it came from.
//
// A Manifest is exclusively owned by the operation that loaded it; nothing
// in this package synchronizes concurrent mutation.
type Manifest struct {
	path      string
	algorithm string
	entries   []Entry
}

// NewManifest returns an empty manifest for the given file path and
// algorithm.
func NewManifest(path, algorithm string) *Manifest {
	return &Manifest{path: path, algorithm: algorithm}
}

// ParseManifest parses the on-disk line format. Entries keep file order;
// duplicates are preserved as-is, since duplicate detection is a lookup
// concern, not a parse concern. Any malformed line fails the whole parse
// with ErrManifestInvalid carrying the manifest path.
func ParseManifest(data []byte, path, algorithm string) (*Manifest, error) {
	m := NewManifest(path, algorithm)
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		digestHex, rest, ok := strings.Cut(line, " ")
		name := strings.TrimPrefix(rest, " ")
		if !ok || name == "" || !isHexDigest(digestHex) {
			return nil, &Error{Kind: ErrManifestInvalid, Key: line, Path: path}
		}
		m.entries = append(m.entries, Entry{Name: name, Digest: digestHex})
	}
	return m, nil
}

// Path returns the manifest file's path.
func (m *Manifest) Path() string { return m.path }

// Algorithm returns the digest algorithm the manifest was built for.
func (m *Manifest) Algorithm() string { return m.algorithm }

// Len returns the number of entries.
func (m *Manifest) Len() int { return len(m.entries) }

// Entries iterates over all entries in manifest order.
func (m *Manifest) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range m.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// FindAll iterates over every entry whose name matches, in manifest order.
func (m *Manifest) FindAll(name string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range m.entries {
			if e.Name == name {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// FindUnique returns the single entry for name. Zero matches fail with
// ErrEntryMissing; more than one match fails with ErrAmbiguousEntry even
// when the duplicate digests agree, because the ambiguity itself is the
// defect.
func (m *Manifest) FindUnique(name string) (Entry, error) {
	var found Entry
	n := 0
	for e := range m.FindAll(name) {
		found = e
		n++
	}
	switch n {
	case 0:
		return Entry{}, &Error{Kind: ErrEntryMissing, Key: name, Path: m.path}
	case 1:
		return found, nil
	default:
		return Entry{}, &Error{Kind: ErrAmbiguousEntry, Key: name, Path: m.path}
	}
}

// Serialize renders the on-disk line format, entries in manifest order
// with a trailing newline. ParseManifest(Serialize(m)) reproduces m.
func (m *Manifest) Serialize() []byte {
	var buf bytes.Buffer
	for _, e := range m.entries {
		buf.WriteString(e.Digest)
		buf.WriteString(entrySeparator)
		buf.WriteString(e.Name)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// add appends an entry. Uniqueness rules are enforced by Register, not
// here.
func (m *Manifest) add(e Entry) {
	m.entries = append(m.entries, e)
}

// isHexDigest reports whether s looks like a lowercase hex digest: even
// length, at least eight characters, only [0-9a-f].
func isHexDigest(s string) bool {
	if len(s) < 8 || len(s)%2 != 0 {
		return false
	}
	for _, c := range []byte(s) {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
