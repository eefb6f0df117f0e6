package ringbuilder

import (
	"fmt"
	"os"

	"github.com/cqroot/openstack-swift-exporter/internal/compression"
)

// Load reads, decompresses and decodes the builder file at path.
// The file is fully read and closed before decoding starts.
func Load(path string, opts LoadOptions) (*Builder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}

	b, err := Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Decode decodes builder bytes that may be gzip or snappy compressed
func Decode(data []byte, opts LoadOptions) (*Builder, error) {
	plain, algo, err := compression.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceMalformed, algo, err)
	}

	format := opts.Format
	if format == "" || format == FormatAuto {
		format = DetectFormat(plain)
	}

	dec, err := GetDecoder(format)
	if err != nil {
		return nil, err
	}

	doc, err := dec.Decode(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: %s decode: %w", ErrSourceMalformed, format, err)
	}

	return fromDocument(doc, format, opts)
}
