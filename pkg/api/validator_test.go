package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuePayload_Validate(t *testing.T) {
	var p ValuePayload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
	assert.Error(t, p.Validate())

	require.NoError(t, json.Unmarshal([]byte(`{"value": 0}`), &p))
	assert.NoError(t, p.Validate(), "zero is clamped later, not rejected")
}

func TestControlRequest_Validate(t *testing.T) {
	assert.Error(t, ControlRequest{}.Validate())

	n := 10
	assert.NoError(t, ControlRequest{IntervalSeconds: &n}.Validate())
}
