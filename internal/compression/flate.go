package compression

import (
	"compress/flate"
	"io"
)

// FlateCompressor - raw DEFLATE tuned for speed, since output is written once per task run.
type FlateCompressor struct{}

func (f *FlateCompressor) Compress(data []byte) ([]byte, error) {
	return compressStream(data, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestSpeed)
	})
}

func (f *FlateCompressor) Decompress(data []byte) ([]byte, error) {
	return decompressStream(data, func(r io.Reader) (io.Reader, error) {
		return flate.NewReader(r), nil
	})
}
