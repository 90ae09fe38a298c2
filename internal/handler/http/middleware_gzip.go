package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var (
	gzipWriters = sync.Pool{New: func() any { return gzip.NewWriter(io.Discard) }}
	gzipReaders = sync.Pool{New: func() any { return new(gzip.Reader) }}
)

// withGZip inflates gzip submission bodies and compresses responses for
// clients that accept gzip. Report pages are the large responses here.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasEncoding(r.Header.Get("Content-Encoding")) {
			if err := inflateBody(r); err != nil {
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}
		}

		w.Header().Add("Vary", "Accept-Encoding")
		if r.Method == http.MethodHead || !hasEncoding(r.Header.Get("Accept-Encoding")) {
			next.ServeHTTP(w, r)
			return
		}

		cw := newCompressedWriter(w)
		defer cw.release()
		next.ServeHTTP(cw, r)
	})
}

func hasEncoding(header string) bool {
	return strings.Contains(header, "gzip")
}

// inflateBody swaps r.Body for a pooled gzip reader over it.
func inflateBody(r *http.Request) error {
	if r.Body == nil {
		return nil
	}

	zr := gzipReaders.Get().(*gzip.Reader)
	if err := zr.Reset(r.Body); err != nil {
		gzipReaders.Put(zr)
		return err
	}

	r.Body = &pooledBody{Reader: zr, zr: zr}
	r.Header.Del("Content-Encoding")
	return nil
}

type pooledBody struct {
	io.Reader
	zr *gzip.Reader
}

func (b *pooledBody) Close() error {
	if b.zr == nil {
		return nil
	}
	err := b.zr.Close()
	gzipReaders.Put(b.zr)
	b.zr = nil
	return err
}

// compressedWriter defers the Content-Encoding header until the handler
// writes something, so an empty response stays empty.
type compressedWriter struct {
	http.ResponseWriter
	zw      *gzip.Writer
	started bool
}

func newCompressedWriter(w http.ResponseWriter) *compressedWriter {
	zw := gzipWriters.Get().(*gzip.Writer)
	zw.Reset(w)
	return &compressedWriter{ResponseWriter: w, zw: zw}
}

func (w *compressedWriter) WriteHeader(statusCode int) {
	if w.started {
		return
	}
	w.started = true
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *compressedWriter) Write(data []byte) (int, error) {
	if !w.started {
		w.WriteHeader(http.StatusOK)
	}
	return w.zw.Write(data)
}

func (w *compressedWriter) release() {
	if w.started {
		_ = w.zw.Close()
	}
	w.zw.Reset(io.Discard)
	gzipWriters.Put(w.zw)
}
