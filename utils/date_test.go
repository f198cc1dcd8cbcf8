package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomDateJSON(t *testing.T) {
	var payload struct {
		From CustomDate  `json:"from"`
		To   *CustomDate `json:"to"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"from":"2025-03-09","to":"2025-03-12T18:30:00Z"}`), &payload))
	assert.Equal(t, "2025-03-09", payload.From.String())
	require.NotNil(t, payload.To)
	assert.Equal(t, "2025-03-12", payload.To.String())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"2025-03-09","to":"2025-03-12"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"from":"09/03/2025"}`), &payload))
}

func TestCustomDateScan(t *testing.T) {
	var d CustomDate
	require.NoError(t, d.Scan("2024-12-31"))
	assert.Equal(t, "2024-12", d.MonthKey())

	require.NoError(t, d.Scan([]byte("2024-01-05 00:00:00+00:00")))
	assert.Equal(t, "2024-01-05", d.String())

	require.NoError(t, d.Scan(time.Date(2024, 2, 29, 15, 4, 0, 0, time.UTC)))
	assert.Equal(t, "2024-02-29", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Error(t, d.Scan(42))
}
