package jsonfile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// compressed maps a file suffix to its decoder.
var compressed = map[string]func(io.Reader) (io.ReadCloser, error){
	".zst": func(r io.Reader) (io.ReadCloser, error) {
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	},
	".gz": func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	".xz": func(r io.Reader) (io.ReadCloser, error) {
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(xzr), nil
	},
	".lz4": func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(lz4.NewReader(r)), nil
	},
}

// baseName strips a compression suffix, so "pages.db.zst" reports "pages.db".
func baseName(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := compressed[ext]; ok {
		return strings.TrimSuffix(path, filepath.Ext(path))
	}
	return path
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var first error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// open returns a reader over the decompressed content of path.
func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	decode, ok := compressed[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return f, nil
	}
	dec, err := decode(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decompressing %s: %w", filepath.Base(path), err)
	}
	return &readCloser{Reader: dec, closers: []io.Closer{f, dec}}, nil
}

// decodeFile decodes the JSON document at path into v. Numbers are kept
// as json.Number so integer cells survive untouched.
func decodeFile(path string, v any) error {
	rc, err := open(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	dec := json.NewDecoder(rc)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return nil
}
