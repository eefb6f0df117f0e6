package aggregation

import (
	"fmt"
	"strconv"

	"github.com/cqroot/openstack-swift-exporter/internal/logging"
	"github.com/cqroot/openstack-swift-exporter/internal/models"
	"github.com/cqroot/openstack-swift-exporter/internal/ringbuilder"
)

// Options controls how a ring's devices are folded into host records
type Options struct {
	WithDevices bool // Collect device names per host (object ring)
	StrictPorts bool // Fail instead of letting the last port win
	Logger      *logging.Logger
}

// Stats counts what AggregateDevices saw
type Stats struct {
	Holes         int
	Inactive      int
	Active        int
	Hosts         int
	PortConflicts int
}

// PortConflictError reports a host listed with two ports in one ring
type PortConflictError struct {
	Host     string
	Previous string
	Port     string
	Slot     int
}

func (e *PortConflictError) Error() string {
	return fmt.Sprintf("devs[%d]: host %s listed with port %s and port %s", e.Slot, e.Host, e.Previous, e.Port)
}

func (e *PortConflictError) Unwrap() error {
	return ringbuilder.ErrSourceMalformed
}

type hostEntry struct {
	port    string
	devices []string
}

// AggregateDevices folds a builder's device table into one record per
// host. Holes and devices whose weight truncates to zero are skipped.
// Records come out in the order their host was first seen.
func AggregateDevices(devs []*ringbuilder.Device, opts Options) ([]models.HostRecord, Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Global()
	}

	var stats Stats
	hosts := make(map[string]*hostEntry)
	order := make([]string, 0)

	for slot, dev := range devs {
		if dev == nil {
			stats.Holes++
			continue
		}
		if !dev.Active() {
			stats.Inactive++
			continue
		}
		stats.Active++

		port := strconv.Itoa(dev.Port)
		entry, ok := hosts[dev.IP]
		if !ok {
			entry = &hostEntry{}
			if opts.WithDevices {
				entry.devices = make([]string, 0, 1)
			}
			hosts[dev.IP] = entry
			order = append(order, dev.IP)
		} else if entry.port != port {
			stats.PortConflicts++
			conflict := &PortConflictError{Host: dev.IP, Previous: entry.port, Port: port, Slot: slot}
			if opts.StrictPorts {
				return nil, stats, conflict
			}
			logger.Warn("Host listed with conflicting ports, keeping the last one",
				"host", dev.IP, "previous_port", entry.port, "port", port, "slot", slot)
		}
		entry.port = port

		if opts.WithDevices {
			entry.devices = append(entry.devices, dev.Device)
		}
	}

	records := make([]models.HostRecord, 0, len(order))
	for _, ip := range order {
		entry := hosts[ip]
		records = append(records, models.HostRecord{
			Host:    ip,
			Port:    entry.port,
			Devices: entry.devices,
		})
	}
	stats.Hosts = len(records)

	return records, stats, nil
}
