package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwiftInfo_JSONShape(t *testing.T) {
	info := NewSwiftInfo()
	require.NoError(t, info.Set(RingAccount, []HostRecord{{Host: "10.0.0.1", Port: "6002"}}))
	require.NoError(t, info.Set(RingContainer, nil))
	require.NoError(t, info.Set(RingObject, []HostRecord{{Host: "10.0.0.1", Port: "6000", Devices: []string{"d1", "d2"}}}))

	data, err := json.Marshal(info)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"account": [{"host": "10.0.0.1", "port": "6002"}],
		"container": [],
		"object": [{"host": "10.0.0.1", "port": "6000", "devices": ["d1", "d2"]}]
	}`, string(data))
}

func TestSwiftInfo_SetUnknownRing(t *testing.T) {
	info := NewSwiftInfo()
	assert.Error(t, info.Set(Ring("proxy"), nil))
	assert.Nil(t, info.Get(Ring("proxy")))
}

func TestRing_CollectsDevices(t *testing.T) {
	assert.False(t, RingAccount.CollectsDevices())
	assert.False(t, RingContainer.CollectsDevices())
	assert.True(t, RingObject.CollectsDevices())
	assert.Equal(t, []Ring{RingAccount, RingContainer, RingObject}, Rings)
}
