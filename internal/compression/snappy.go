package compression

import (
	"bytes"

	"github.com/golang/snappy"
)

// SnappyDecompressor reads the snappy framing format (what `snzip` and
// snappy.NewBufferedWriter produce)
type SnappyDecompressor struct{}

// NewSnappyDecompressor creates a new Snappy decompressor
func NewSnappyDecompressor() *SnappyDecompressor {
	return &SnappyDecompressor{}
}

// Decompress decompresses a snappy framed stream
func (s *SnappyDecompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	return readAllFrom(snappy.NewReader(bytes.NewReader(data)), "snappy")
}

// Algorithm returns Snappy
func (s *SnappyDecompressor) Algorithm() Algorithm {
	return Snappy
}
