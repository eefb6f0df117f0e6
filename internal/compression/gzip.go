package compression

import (
	"bytes"
	"compress/gzip"
	"fmt"
)

// GzipDecompressor handles gzip files, the format swift uses for *.ring.gz
type GzipDecompressor struct{}

// NewGzipDecompressor creates a new gzip decompressor
func NewGzipDecompressor() *GzipDecompressor {
	return &GzipDecompressor{}
}

// Decompress decompresses gzip data
func (g *GzipDecompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip decompress failed: %w", err)
	}
	defer func() { _ = zr.Close() }()
	return readAllFrom(zr, "gzip")
}

// Algorithm returns Gzip
func (g *GzipDecompressor) Algorithm() Algorithm {
	return Gzip
}
