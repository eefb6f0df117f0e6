package ringbuilder

import (
	"fmt"

	"github.com/cqroot/openstack-swift-exporter/internal/utils"
)

// pyMapping is satisfied by the unpickler's dict and OrderedDict types
type pyMapping interface {
	Get(key interface{}) (interface{}, bool)
}

// pySequence is satisfied by the unpickler's list and tuple types
type pySequence interface {
	Len() int
	Get(i int) interface{}
}

type getter func(key string) (interface{}, bool)

func asMapping(v interface{}) (getter, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return func(key string) (interface{}, bool) {
			val, ok := m[key]
			return val, ok
		}, true
	case pyMapping:
		return func(key string) (interface{}, bool) {
			return m.Get(key)
		}, true
	default:
		return nil, false
	}
}

func asSequence(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	case pySequence:
		out := make([]interface{}, s.Len())
		for i := range out {
			out[i] = s.Get(i)
		}
		return out, true
	default:
		return nil, false
	}
}

func asString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

func typeName(v interface{}) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

// fromDocument validates a decoded document into a Builder
func fromDocument(doc interface{}, format Format, opts LoadOptions) (*Builder, error) {
	top, ok := asMapping(doc)
	if !ok {
		return nil, &FieldError{Slot: -1, Field: "builder", Msg: "expected mapping, got " + typeName(doc)}
	}

	b := &Builder{}
	if raw, ok := top("version"); ok {
		if v, ok := utils.ToExactInt(raw); ok {
			b.Version = int(v)
		}
	}
	if format == FormatJSON && b.Version != SchemaVersion {
		return nil, &FieldError{Slot: -1, Field: "version",
			Msg: fmt.Sprintf("unsupported schema version %d, want %d", b.Version, SchemaVersion)}
	}

	rawDevs, ok := top("devs")
	if !ok {
		return nil, &FieldError{Slot: -1, Field: "devs", Msg: "missing"}
	}
	devs, ok := asSequence(rawDevs)
	if !ok {
		return nil, &FieldError{Slot: -1, Field: "devs", Msg: "expected list, got " + typeName(rawDevs)}
	}

	b.Devs = make([]*Device, len(devs))
	for i, raw := range devs {
		dev, err := decodeDevice(i, raw, opts)
		if err != nil {
			return nil, err
		}
		b.Devs[i] = dev
	}
	return b, nil
}

// decodeDevice validates one slot of devs. Holes decode to nil. Fields of
// inactive devices are copied when well typed and otherwise ignored.
func decodeDevice(slot int, raw interface{}, opts LoadOptions) (*Device, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := asMapping(raw)
	if !ok {
		return nil, &FieldError{Slot: slot, Msg: "expected mapping, got " + typeName(raw)}
	}

	rawWeight, ok := m("weight")
	if !ok {
		return nil, &FieldError{Slot: slot, Field: "weight", Msg: "missing"}
	}
	weight, err := utils.CoerceInt(rawWeight)
	if err != nil {
		return nil, &FieldError{Slot: slot, Field: "weight", Msg: err.Error()}
	}

	dev := &Device{ID: slot, Weight: float64(weight)}
	if f, ok := utils.ToFloat64(rawWeight); ok {
		dev.Weight = f
	}
	active := weight != 0

	intField := func(key string, dst *int) {
		if v, ok := m(key); ok {
			if i, ok := utils.ToExactInt(v); ok {
				*dst = int(i)
			}
		}
	}
	strField := func(key string, dst *string) bool {
		v, ok := m(key)
		if !ok {
			return false
		}
		s, ok := asString(v)
		if ok {
			*dst = s
		}
		return ok
	}

	intField("id", &dev.ID)
	intField("region", &dev.Region)
	intField("zone", &dev.Zone)
	intField("replication_port", &dev.ReplicationPort)
	strField("replication_ip", &dev.ReplicationIP)
	strField("meta", &dev.Meta)

	if !strField("ip", &dev.IP) || dev.IP == "" {
		if active {
			return nil, &FieldError{Slot: slot, Field: "ip", Msg: "missing or not a string"}
		}
	}

	rawPort, hasPort := m("port")
	port, isInt := utils.ToExactInt(rawPort)
	switch {
	case hasPort && isInt && port >= 0 && port <= utils.MaxPort:
		dev.Port = int(port)
	case active && !hasPort:
		return nil, &FieldError{Slot: slot, Field: "port", Msg: "missing"}
	case active:
		return nil, &FieldError{Slot: slot, Field: "port", Msg: fmt.Sprintf("invalid port %v", rawPort)}
	}

	if !strField("device", &dev.Device) && active && opts.RequireDevice {
		return nil, &FieldError{Slot: slot, Field: "device", Msg: "missing or not a string"}
	}

	return dev, nil
}
