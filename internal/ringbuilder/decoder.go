package ringbuilder

import (
	"bytes"
	"fmt"
)

// Decoder turns raw builder bytes into a generic document: a mapping
// whose values are mappings, sequences or scalars
type Decoder interface {
	Decode(data []byte) (interface{}, error)
	Format() Format
}

// GetDecoder returns the decoder for a concrete format
func GetDecoder(format Format) (Decoder, error) {
	switch format {
	case FormatPickle:
		return &PickleDecoder{}, nil
	case FormatJSON:
		return &JSONDecoder{}, nil
	default:
		return nil, fmt.Errorf("no decoder for builder format %q", format)
	}
}

// DetectFormat picks JSON when the document starts with an object,
// pickle otherwise
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatPickle
}
