package compression

import (
	"bytes"
	"fmt"
	"io"
)

// Algorithm identifies how a builder artifact is compressed on disk
type Algorithm uint8

const (
	None   Algorithm = 0
	Snappy Algorithm = 1
	Gzip   Algorithm = 2
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	// Stream identifier chunk of the snappy framing format
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case Snappy:
		return "snappy"
	case Gzip:
		return "gzip"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

// Decompressor interface for decompression algorithms
type Decompressor interface {
	// Decompress decompresses data
	Decompress(data []byte) ([]byte, error)

	// Algorithm returns the compression algorithm type
	Algorithm() Algorithm
}

// Detect sniffs the leading magic bytes of data
func Detect(data []byte) Algorithm {
	switch {
	case bytes.HasPrefix(data, snappyMagic):
		return Snappy
	case bytes.HasPrefix(data, gzipMagic):
		return Gzip
	default:
		return None
	}
}

// GetDecompressor returns a decompressor for the given algorithm
func GetDecompressor(algo Algorithm) (Decompressor, error) {
	switch algo {
	case None:
		return &NoneDecompressor{}, nil
	case Snappy:
		return NewSnappyDecompressor(), nil
	case Gzip:
		return NewGzipDecompressor(), nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %d", algo)
	}
}

// Decode detects the compression of data and returns the plain bytes
func Decode(data []byte) ([]byte, Algorithm, error) {
	algo := Detect(data)
	d, err := GetDecompressor(algo)
	if err != nil {
		return nil, algo, err
	}
	out, err := d.Decompress(data)
	return out, algo, err
}

// NoneDecompressor passes data through unchanged
type NoneDecompressor struct{}

func (n *NoneDecompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

func (n *NoneDecompressor) Algorithm() Algorithm {
	return None
}

func readAllFrom(r io.Reader, name string) ([]byte, error) {
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s decompress failed: %w", name, err)
	}
	return out, nil
}
