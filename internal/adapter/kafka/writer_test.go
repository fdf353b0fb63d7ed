package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/hurdat2-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	wind := 110
	ingested := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	obs := domain.Observation{
		StormID:    "AL122005",
		Basin:      "AL",
		Status:     "HU",
		Latitude:   25.4,
		Longitude:  -90.2,
		MaxWindKts: &wind,
		IngestedAt: ingested,
	}

	msg, err := serializeToMessage(obs)
	require.NoError(t, err)

	assert.Equal(t, []byte("AL122005"), msg.Key)
	assert.Contains(t, string(msg.Value), `"storm_id":"AL122005"`)
	assert.Contains(t, string(msg.Value), `"max_wind_kts":110`)
	assert.Contains(t, string(msg.Value), `"min_pressure_mb":null`)
	assert.Contains(t, string(msg.Value), `"longitude":-90.2`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "basin", msg.Headers[0].Key)
	assert.Equal(t, []byte("AL"), msg.Headers[0].Value)
	assert.Equal(t, "ingested_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(ingested.Format(time.RFC3339)), msg.Headers[1].Value)
}
