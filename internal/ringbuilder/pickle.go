package ringbuilder

import (
	"bytes"

	"github.com/nlpodyssey/gopickle/pickle"
)

// PickleDecoder reads builders saved by swift-ring-builder, which pickles
// RingBuilder.to_dict() with protocol 2
type PickleDecoder struct{}

func (d *PickleDecoder) Format() Format {
	return FormatPickle
}

func (d *PickleDecoder) Decode(data []byte) (interface{}, error) {
	u := pickle.NewUnpickler(bytes.NewReader(data))
	u.FindClass = findClass
	return u.Load()
}

// findClass resolves classes the unpickler has no builtin for. A builder
// references array.array for its partition tables, which the summary
// never reads, so every such class becomes an opaque placeholder.
func findClass(module, name string) (interface{}, error) {
	return &opaqueClass{module: module, name: name}, nil
}

type opaqueClass struct {
	module string
	name   string
}

func (c *opaqueClass) Call(args ...interface{}) (interface{}, error) {
	return &opaqueObject{class: c}, nil
}

func (c *opaqueClass) PyNew(args ...interface{}) (interface{}, error) {
	return &opaqueObject{class: c}, nil
}

// opaqueObject swallows any state the pickle stream sets on it
type opaqueObject struct {
	class *opaqueClass
}

func (o *opaqueObject) PyStateSet(state interface{}) error {
	return nil
}

func (o *opaqueObject) PyDictSet(key, value interface{}) error {
	return nil
}
