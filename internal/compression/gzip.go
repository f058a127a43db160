package compression

import (
	"compress/gzip"
	"io"
)

// GzipCompressor - gzip at the default level.
type GzipCompressor struct{}

func (g *GzipCompressor) Compress(data []byte) ([]byte, error) {
	return compressStream(data, func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriter(w), nil
	})
}

func (g *GzipCompressor) Decompress(data []byte) ([]byte, error) {
	return decompressStream(data, func(r io.Reader) (io.Reader, error) {
		return gzip.NewReader(r)
	})
}
