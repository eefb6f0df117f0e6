package models

import "fmt"

// Ring names a swift storage role
type Ring string

const (
	RingAccount   Ring = "account"
	RingContainer Ring = "container"
	RingObject    Ring = "object"
)

// Rings lists the rings in the order they are summarized
var Rings = []Ring{RingAccount, RingContainer, RingObject}

// CollectsDevices reports whether summary records of this ring carry device ids
func (r Ring) CollectsDevices() bool {
	return r == RingObject
}

// HostRecord is one storage host of a ring
type HostRecord struct {
	Host string `json:"host"`
	Port string `json:"port"`
	// Devices is only set for object ring records
	Devices []string `json:"devices,omitempty"`
}

// SwiftInfo is the summary document read by the exporter
type SwiftInfo struct {
	Account   []HostRecord `json:"account"`
	Container []HostRecord `json:"container"`
	Object    []HostRecord `json:"object"`
}

// NewSwiftInfo returns a summary with every ring present and empty
func NewSwiftInfo() *SwiftInfo {
	return &SwiftInfo{
		Account:   []HostRecord{},
		Container: []HostRecord{},
		Object:    []HostRecord{},
	}
}

// Set stores the records of one ring; nil is stored as an empty list
func (s *SwiftInfo) Set(ring Ring, records []HostRecord) error {
	if records == nil {
		records = []HostRecord{}
	}
	switch ring {
	case RingAccount:
		s.Account = records
	case RingContainer:
		s.Container = records
	case RingObject:
		s.Object = records
	default:
		return fmt.Errorf("unknown ring: %q", ring)
	}
	return nil
}

// Get returns the records of one ring
func (s *SwiftInfo) Get(ring Ring) []HostRecord {
	switch ring {
	case RingAccount:
		return s.Account
	case RingContainer:
		return s.Container
	case RingObject:
		return s.Object
	default:
		return nil
	}
}
