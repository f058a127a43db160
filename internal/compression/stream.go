package compression

import (
	"bytes"
	"io"
)

// compressStream - runs data through the writer newWriter wraps around a buffer.
func compressStream(data []byte, newWriter func(io.Writer) (io.WriteCloser, error)) ([]byte, error) {
	var buf bytes.Buffer

	writer, err := newWriter(&buf)
	if err != nil {
		return nil, err
	}

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decompressStream - reads everything from the reader newReader wraps around data.
func decompressStream(data []byte, newReader func(io.Reader) (io.Reader, error)) ([]byte, error) {
	reader, err := newReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if closer, ok := reader.(io.Closer); ok {
		defer closer.Close()
	}

	return io.ReadAll(reader)
}
