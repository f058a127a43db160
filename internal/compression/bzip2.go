package compression

import (
	"compress/bzip2"
	"io"

	libzip "github.com/dsnet/compress/bzip2"
)

// Bzip2Compressor - bzip2 at the best ratio. The standard library only decodes
// bzip2, so writing goes through dsnet/compress.
type Bzip2Compressor struct{}

func (b *Bzip2Compressor) Compress(data []byte) ([]byte, error) {
	return compressStream(data, func(w io.Writer) (io.WriteCloser, error) {
		return libzip.NewWriter(w, &libzip.WriterConfig{Level: libzip.BestCompression})
	})
}

func (b *Bzip2Compressor) Decompress(data []byte) ([]byte, error) {
	return decompressStream(data, func(r io.Reader) (io.Reader, error) {
		return bzip2.NewReader(r), nil
	})
}
