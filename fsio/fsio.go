// Package fsio writes and reads files with transparent compression and
// crash-safe replacement.
//
// Writes go through a uniquely-named hidden temporary file in the
// destination's directory and are swapped into place with a rename, so a
// reader never observes a partially written file at the final path. The
// rename is atomic only within one filesystem; the temporary sibling
// guarantees both files share one.
//
// Compression is inferred from the filename suffix via the compress
// package, or forced with [WithFormat].
package fsio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/meigma/sumfile/compress"
)

const defaultFilePerm = 0o644

// WriteOption configures Write.
type WriteOption func(*writeConfig)

type writeConfig struct {
	format    compress.Format
	formatSet bool
	appendTo  bool
	perm      os.FileMode
}

// WithFormat forces a compression format instead of inferring it from the
// filename suffix.
func WithFormat(f compress.Format) WriteOption {
	return func(c *writeConfig) {
		c.format = f
		c.formatSet = true
	}
}

// WithAppend appends to the destination in place instead of atomically
// replacing it. Only formats whose streams decode across concatenated
// members support this; Write rejects the rest with ErrUnsupported.
func WithAppend() WriteOption {
	return func(c *writeConfig) {
		c.appendTo = true
	}
}

// WithPerm sets the file mode for newly created destinations
// (default 0o644).
func WithPerm(perm os.FileMode) WriteOption {
	return func(c *writeConfig) {
		c.perm = perm
	}
}

// ReadOption configures Read.
type ReadOption func(*readConfig)

type readConfig struct {
	format    compress.Format
	formatSet bool
}

// ReadWithFormat forces a compression format instead of inferring it from
// the filename suffix.
func ReadWithFormat(f compress.Format) ReadOption {
	return func(c *readConfig) {
		c.format = f
		c.formatSet = true
	}
}

// Write writes content to path, compressed per the inferred or forced
// format.
//
// By default the write is atomic: content goes to a temporary sibling
// (see [TempPath]) which then replaces path with a rename. On any failure
// the temporary file is removed and the destination keeps its original
// content, if it had any.
//
// With [WithAppend] the destination is opened O_APPEND and a new
// compressed member is appended in place; this mode is not atomic and is
// rejected for formats that cannot append.
func Write(path string, content []byte, opts ...WriteOption) error {
	cfg := writeConfig{perm: defaultFilePerm}
	for _, opt := range opts {
		opt(&cfg)
	}
	format := cfg.format
	if !cfg.formatSet {
		format = compress.FromPath(path)
	}

	if cfg.appendTo {
		if !format.AppendCapable() {
			return fmt.Errorf("%w: append to %s", ErrUnsupported, format.FullName())
		}
		return appendFile(path, content, format, cfg.perm)
	}

	tmp := TempPath(path, "write")
	if err := writeFile(tmp, content, format, memberName(path), cfg.perm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Read returns the full decompressed content of path.
func Read(path string, opts ...ReadOption) ([]byte, error) {
	cfg := readConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	format := cfg.format
	if !cfg.formatSet {
		format = compress.FromPath(path)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrReadPermissions, path)
		}
		return nil, err
	}
	defer f.Close()

	r, err := format.NewReader(f, memberName(path))
	if err != nil {
		return nil, fmt.Errorf("open %s reader for %s: %w", format.FullName(), path, err)
	}
	data, err := io.ReadAll(r)
	if cerr := r.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func writeFile(path string, content []byte, format compress.Format, member string, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: %s", ErrWritePermissions, path)
		}
		return err
	}
	err = writeThrough(f, content, format, member)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func appendFile(path string, content []byte, format compress.Format, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, perm)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: %s", ErrWritePermissions, path)
		}
		return err
	}
	err = writeThrough(f, content, format, memberName(path))
	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// writeThrough streams content through the format's compressor into f.
func writeThrough(f *os.File, content []byte, format compress.Format, member string) error {
	w, err := format.NewWriter(f, member)
	if err != nil {
		return fmt.Errorf("open %s writer: %w", format.FullName(), err)
	}
	if _, err := w.Write(content); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// memberName is the compression-stripped basename, used by archive formats
// that record a member name.
func memberName(path string) string {
	return filepath.Base(compress.StripSuffix(path))
}
