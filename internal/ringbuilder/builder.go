// Package ringbuilder reads swift ring builder artifacts into typed device
// tables. Only the fields needed to describe where devices live are kept;
// partition assignments are ignored.
package ringbuilder

import (
	"errors"
	"fmt"
	"math"
)

// SchemaVersion is the only version of the JSON builder schema understood
const SchemaVersion = 1

var (
	// ErrSourceUnavailable is returned when a builder file cannot be read
	ErrSourceUnavailable = errors.New("ring builder unavailable")
	// ErrSourceMalformed is returned when a builder file cannot be decoded
	// or lacks fields required on an active device
	ErrSourceMalformed = errors.New("ring builder malformed")
)

// Builder is the decoded device table of one ring
type Builder struct {
	// Version is the builder's own change counter for pickled builders and
	// the schema version for JSON builders
	Version int
	// Devs is indexed by device id; nil slots are removed devices
	Devs []*Device
}

// Device is one entry of a builder's device table
type Device struct {
	ID              int
	Region          int
	Zone            int
	IP              string
	Port            int
	ReplicationIP   string
	ReplicationPort int
	Device          string
	Weight          float64
	Meta            string
}

// Active reports whether the device carries any weight. Weights are
// truncated toward zero, so 0.5 counts as inactive.
func (d *Device) Active() bool {
	return d != nil && math.Trunc(d.Weight) != 0
}

// Format selects the decoder used for a builder file
type Format string

const (
	FormatAuto   Format = "auto"
	FormatPickle Format = "pickle"
	FormatJSON   Format = "json"
)

// ParseFormat validates a format name; "" means auto
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatPickle, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown builder format %q", s)
	}
}

// LoadOptions controls how a builder file is read
type LoadOptions struct {
	Format Format
	// RequireDevice makes the device name mandatory on active devices
	RequireDevice bool
}

// FieldError describes a missing or ill-typed field of a device slot
type FieldError struct {
	Slot  int // index in devs, -1 for top level fields
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	if e.Slot < 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Field == "" {
		return fmt.Sprintf("devs[%d]: %s", e.Slot, e.Msg)
	}
	return fmt.Sprintf("devs[%d].%s: %s", e.Slot, e.Field, e.Msg)
}

func (e *FieldError) Unwrap() error {
	return ErrSourceMalformed
}
