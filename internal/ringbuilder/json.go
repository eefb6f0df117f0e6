package ringbuilder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONDecoder reads the versioned JSON builder schema:
//
//	{"version": 1, "devs": [null, {"id": 0, "ip": "10.0.0.1", "port": 6000, "weight": 100, "device": "sda"}]}
type JSONDecoder struct{}

func (d *JSONDecoder) Format() Format {
	return FormatJSON
}

func (d *JSONDecoder) Decode(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after builder document")
	}
	return doc, nil
}
