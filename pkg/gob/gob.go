package gob

import (
	"bytes"
	"encoding/gob"
)

// Encode - encodes data using Gob.
func Encode(data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode - decodes Gob data into a value of type T.
func Decode[T any](data []byte) (T, error) {
	var target T
	err := gob.NewDecoder(bytes.NewReader(data)).Decode(&target)
	return target, err
}
