package compression

import (
	"errors"
	"fmt"
)

var ErrUnsupportedCompression = errors.New("unsupported compression type")

// Compressor - compresses captured task output before it is stored.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// CompressionType - name of a compression algorithm as written in config and journal records.
type CompressionType string

const (
	None  CompressionType = "none"
	Gzip  CompressionType = "gzip"
	Zstd  CompressionType = "zstd"
	Bzip2 CompressionType = "bzip2"
	Flate CompressionType = "flate"
)

// New - creates a compressor for the given type. An empty type means None.
func New(ct CompressionType) (Compressor, error) {
	switch ct {
	case None, "":
		return new(NoopCompressor), nil
	case Gzip:
		return new(GzipCompressor), nil
	case Zstd:
		return new(ZstdCompressor), nil
	case Bzip2:
		return new(Bzip2Compressor), nil
	case Flate:
		return new(FlateCompressor), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, ct)
}

// NoopCompressor - stores data as is.
type NoopCompressor struct{}

func (n *NoopCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (n *NoopCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
