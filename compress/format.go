// Package compress maps filename suffixes to compression formats and
// provides streaming codecs for reading and writing each format.
//
// The format table is fixed at process start. Lookups never allocate and
// suffix inference never fails: an unrecognized suffix resolves to [None].
package compress

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a compression format, including the identity format
// [None] for uncompressed data.
type Format uint8

const (
	None Format = iota
	Gzip
	Zip
	Bzip2
	XZ
	Zstd
	LZ4
)

// ErrUnknownFormat is returned when a format name cannot be resolved.
var ErrUnknownFormat = errors.New("compress: unknown format")

// spec holds the per-format properties. Adding a format is a table change,
// not a control-flow change: every behavior keys off this table.
type spec struct {
	name     string // canonical short name, e.g. "gz"
	fullName string // human-readable name, e.g. "gzip"
	suffix   string // recognized filename suffix; empty for None
	appendOK bool   // supports appending a new member/frame to an existing file
	codec    codec
}

var table = [...]spec{
	None:  {name: "none", fullName: "none", suffix: "", appendOK: true, codec: noneCodec{}},
	Gzip:  {name: "gz", fullName: "gzip", suffix: ".gz", appendOK: true, codec: gzipCodec{}},
	Zip:   {name: "zip", fullName: "zip", suffix: ".zip", appendOK: false, codec: zipCodec{}},
	Bzip2: {name: "bz2", fullName: "bzip2", suffix: ".bz2", appendOK: false, codec: bzip2Codec{}},
	XZ:    {name: "xz", fullName: "xz", suffix: ".xz", appendOK: false, codec: xzCodec{}},
	Zstd:  {name: "zst", fullName: "zstd", suffix: ".zst", appendOK: true, codec: zstdCodec{}},
	LZ4:   {name: "lz4", fullName: "lz4", suffix: ".lz4", appendOK: false, codec: lz4Codec{}},
}

// Formats returns every format in the table, None first.
func Formats() []Format {
	out := make([]Format, len(table))
	for i := range table {
		out[i] = Format(i)
	}
	return out
}

// Name returns the canonical short name, e.g. "gz".
func (f Format) Name() string { return table[f].name }

// FullName returns the human-readable name, e.g. "gzip".
func (f Format) FullName() string { return table[f].fullName }

// Suffix returns the recognized filename suffix including the leading dot,
// or "" for None.
func (f Format) Suffix() string { return table[f].suffix }

// Compressed reports whether the format actually compresses data.
func (f Format) Compressed() bool { return f != None }

// AppendCapable reports whether a new member or frame can be appended to an
// existing file and still decode as one stream. Block-framed formats (zip)
// and formats whose readers stop at the first frame are not append-capable.
func (f Format) AppendCapable() bool { return table[f].appendOK }

// String returns the canonical short name.
func (f Format) String() string { return table[f].name }

// Parse resolves a format from a name. Matching is case-insensitive and
// tolerates hyphens, underscores, spaces, and a leading dot, so "GZ",
// "gzip", and ".gz" all resolve to Gzip.
func Parse(token string) (Format, error) {
	t := strings.ToLower(token)
	t = strings.NewReplacer("-", "", "_", "", " ", "").Replace(t)
	t = strings.TrimPrefix(t, ".")
	for i, s := range table {
		if t == s.name || t == s.fullName {
			return Format(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownFormat, token)
}

// FromSuffix resolves a format from a suffix such as ".gz". Unrecognized
// suffixes resolve to None.
func FromSuffix(suffix string) Format {
	for i, s := range table {
		if Format(i) != None && suffix == s.suffix {
			return Format(i)
		}
	}
	return None
}

// FromPath resolves a format from a path's filename. A filename of the form
// ".<suffix>" with exactly one dot is treated as the suffix itself (so a
// file literally named ".gz" is gzip); otherwise the final extension is
// used.
func FromPath(path string) Format {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") && strings.Count(name, ".") == 1 {
		return FromSuffix(name)
	}
	return FromSuffix(filepath.Ext(name))
}

// StripSuffix removes a recognized compression suffix from path's filename,
// if present. Paths without a recognized suffix are returned unchanged.
func StripSuffix(path string) string {
	base, _ := Split(path)
	return base
}

// Split separates a recognized compression suffix from path. It always
// succeeds, defaulting to (path, None).
func Split(path string) (string, Format) {
	name := filepath.Base(path)
	for i, s := range table {
		if Format(i) == None {
			continue
		}
		if strings.HasSuffix(name, s.suffix) {
			return path[:len(path)-len(s.suffix)], Format(i)
		}
	}
	return path, None
}
