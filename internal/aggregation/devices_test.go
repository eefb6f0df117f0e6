package aggregation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/cqroot/openstack-swift-exporter/internal/logging"
	"github.com/cqroot/openstack-swift-exporter/internal/models"
	"github.com/cqroot/openstack-swift-exporter/internal/ringbuilder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dev(ip string, port int, weight float64, device string) *ringbuilder.Device {
	return &ringbuilder.Device{IP: ip, Port: port, Weight: weight, Device: device}
}

func scenarioDevs() []*ringbuilder.Device {
	return []*ringbuilder.Device{
		dev("10.0.0.1", 6000, 100, "d1"),
		dev("10.0.0.1", 6000, 100, "d2"),
		nil,
		dev("10.0.0.2", 6001, 0, "d3"),
	}
}

func quiet() Options {
	return Options{Logger: logging.Nop()}
}

func TestAggregateDevices_ObjectRing(t *testing.T) {
	opts := quiet()
	opts.WithDevices = true

	records, stats, err := AggregateDevices(scenarioDevs(), opts)
	require.NoError(t, err)

	assert.Equal(t, []models.HostRecord{
		{Host: "10.0.0.1", Port: "6000", Devices: []string{"d1", "d2"}},
	}, records)
	assert.Equal(t, Stats{Holes: 1, Inactive: 1, Active: 2, Hosts: 1}, stats)
}

func TestAggregateDevices_AccountRing(t *testing.T) {
	records, _, err := AggregateDevices(scenarioDevs(), quiet())
	require.NoError(t, err)

	assert.Equal(t, []models.HostRecord{{Host: "10.0.0.1", Port: "6000"}}, records)

	data, err := json.Marshal(records)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"host": "10.0.0.1", "port": "6000"}]`, string(data))
}

func TestAggregateDevices_Empty(t *testing.T) {
	for _, devs := range [][]*ringbuilder.Device{nil, {}, {nil, nil}} {
		records, stats, err := AggregateDevices(devs, quiet())
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
		assert.Zero(t, stats.Hosts)
	}
}

func TestAggregateDevices_FractionalWeights(t *testing.T) {
	devs := []*ringbuilder.Device{
		dev("10.0.0.1", 6000, 0.5, "d1"),
		dev("10.0.0.2", 6000, 1.5, "d2"),
	}

	records, stats, err := AggregateDevices(devs, quiet())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "10.0.0.2", records[0].Host)
	assert.Equal(t, 1, stats.Inactive)
}

func TestAggregateDevices_DuplicateDeviceNamesKept(t *testing.T) {
	opts := quiet()
	opts.WithDevices = true
	devs := []*ringbuilder.Device{
		dev("10.0.0.1", 6000, 1, "sdb"),
		dev("10.0.0.2", 6000, 1, "sdb"),
		dev("10.0.0.1", 6000, 1, "sdb"),
	}

	records, _, err := AggregateDevices(devs, opts)
	require.NoError(t, err)

	assert.Equal(t, []models.HostRecord{
		{Host: "10.0.0.1", Port: "6000", Devices: []string{"sdb", "sdb"}},
		{Host: "10.0.0.2", Port: "6000", Devices: []string{"sdb"}},
	}, records)
}

func TestAggregateDevices_PortConflict(t *testing.T) {
	devs := []*ringbuilder.Device{
		dev("10.0.0.1", 6000, 1, "d1"),
		dev("10.0.0.1", 6010, 1, "d2"),
	}

	t.Run("last port wins", func(t *testing.T) {
		records, stats, err := AggregateDevices(devs, quiet())
		require.NoError(t, err)
		assert.Equal(t, []models.HostRecord{{Host: "10.0.0.1", Port: "6010"}}, records)
		assert.Equal(t, 1, stats.PortConflicts)
	})

	t.Run("strict", func(t *testing.T) {
		opts := quiet()
		opts.StrictPorts = true

		_, _, err := AggregateDevices(devs, opts)
		require.Error(t, err)

		var conflict *PortConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "10.0.0.1", conflict.Host)
		assert.Equal(t, "6000", conflict.Previous)
		assert.Equal(t, "6010", conflict.Port)
		assert.Equal(t, 1, conflict.Slot)
		assert.True(t, errors.Is(err, ringbuilder.ErrSourceMalformed))
	})
}

// randomDevs builds a device table over a handful of hosts with holes and
// zero weights sprinkled in.
func randomDevs(r *rand.Rand, n int) []*ringbuilder.Device {
	devs := make([]*ringbuilder.Device, n)
	for i := range devs {
		if r.Intn(5) == 0 {
			continue
		}
		host := r.Intn(6)
		devs[i] = dev(
			fmt.Sprintf("10.0.0.%d", host),
			6000+host,
			float64(r.Intn(3))*50,
			fmt.Sprintf("d%d", i),
		)
	}
	return devs
}

func TestAggregateDevices_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	opts := quiet()
	opts.WithDevices = true

	for i := 0; i < 200; i++ {
		devs := randomDevs(r, r.Intn(40))

		activePerHost := make(map[string]int)
		for _, d := range devs {
			if d != nil && d.Weight != 0 {
				activePerHost[d.IP]++
			}
		}

		records, stats, err := AggregateDevices(devs, opts)
		require.NoError(t, err)

		// one record per distinct active host
		require.Len(t, records, len(activePerHost))
		assert.Equal(t, len(activePerHost), stats.Hosts)

		for _, rec := range records {
			// zero weight devices never show up
			count, ok := activePerHost[rec.Host]
			require.True(t, ok, "host %s has no active device", rec.Host)
			// device list length matches active devices of the host
			assert.Len(t, rec.Devices, count)
		}

		// idempotent up to ordering
		again, _, err := AggregateDevices(devs, opts)
		require.NoError(t, err)
		assert.ElementsMatch(t, records, again)

		// no devices key without WithDevices
		plain, _, err := AggregateDevices(devs, quiet())
		require.NoError(t, err)
		for _, rec := range plain {
			assert.Nil(t, rec.Devices)
		}
	}
}
