package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// codec opens compressed streams for one format. The name parameter is the
// logical (compression-stripped) filename; only archive formats that store
// member names use it.
type codec interface {
	newWriter(w io.Writer, name string) (io.WriteCloser, error)
	newReader(r io.Reader, name string) (io.ReadCloser, error)
}

// NewWriter opens a compressing writer. name is the logical filename of the
// content, used as the member name by archive formats like zip. The caller
// must Close the returned writer to flush the stream.
func (f Format) NewWriter(w io.Writer, name string) (io.WriteCloser, error) {
	return table[f].codec.newWriter(w, name)
}

// NewReader opens a decompressing reader over r.
func (f Format) NewReader(r io.Reader, name string) (io.ReadCloser, error) {
	return table[f].codec.newReader(r, name)
}

type noneCodec struct{}

func (noneCodec) newWriter(w io.Writer, _ string) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

func (noneCodec) newReader(r io.Reader, _ string) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

type gzipCodec struct{}

func (gzipCodec) newWriter(w io.Writer, _ string) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}

func (gzipCodec) newReader(r io.Reader, _ string) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

type zstdCodec struct{}

func (zstdCodec) newWriter(w io.Writer, _ string) (io.WriteCloser, error) {
	return zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
}

func (zstdCodec) newReader(r io.Reader, _ string) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

type lz4Codec struct{}

func (lz4Codec) newWriter(w io.Writer, _ string) (io.WriteCloser, error) {
	return lz4.NewWriter(w), nil
}

func (lz4Codec) newReader(r io.Reader, _ string) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

type bzip2Codec struct{}

func (bzip2Codec) newWriter(w io.Writer, _ string) (io.WriteCloser, error) {
	return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
}

func (bzip2Codec) newReader(r io.Reader, _ string) (io.ReadCloser, error) {
	return bzip2.NewReader(r, &bzip2.ReaderConfig{})
}

type xzCodec struct{}

func (xzCodec) newWriter(w io.Writer, _ string) (io.WriteCloser, error) {
	return xz.NewWriter(w)
}

func (xzCodec) newReader(r io.Reader, _ string) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}

// zipCodec stores content as a single-member archive. The member is named
// after the compression-stripped basename so the archive remains usable
// with ordinary zip tools.
type zipCodec struct{}

func (zipCodec) newWriter(w io.Writer, name string) (io.WriteCloser, error) {
	zw := zip.NewWriter(w)
	if name == "" {
		name = "content"
	}
	fw, err := zw.Create(name)
	if err != nil {
		zw.Close()
		return nil, err
	}
	return &zipWriter{zw: zw, fw: fw}, nil
}

// newReader buffers the whole stream: the zip central directory lives at
// the end, so random access is required before any member can be opened.
func (zipCodec) newReader(r io.Reader, _ string) (io.ReadCloser, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(zr.File) == 0 {
		return nil, fmt.Errorf("compress: zip archive has no members")
	}
	return zr.File[0].Open()
}

type zipWriter struct {
	zw *zip.Writer
	fw io.Writer
}

func (w *zipWriter) Write(p []byte) (int, error) { return w.fw.Write(p) }

func (w *zipWriter) Close() error { return w.zw.Close() }

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
