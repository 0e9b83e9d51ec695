package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	var payload struct {
		Since *Date `json:"vendor_since"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"vendor_since":"2023-04-09"}`), &payload))
	require.NotNil(t, payload.Since)
	assert.Equal(t, "2023-04-09", payload.Since.String())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"vendor_since":"2023-04-09"}`, string(out))
}

func TestDateAcceptsTimestamps(t *testing.T) {
	d, err := ParseDate("2023-04-09T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, "2023-04-09", d.String())

	_, err = ParseDate("04/09/2023")
	assert.Error(t, err)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 1, 2, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-02", d.String())
	require.NoError(t, d.Scan([]byte("2024-02-03")))
	assert.Equal(t, "2024-02-03", d.String())
	assert.Error(t, d.Scan(42))
}
