package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFile = "atlantic.txt"

func katrinaHeader() StormHeader {
	return StormHeader{
		Basin:         "AL",
		CycloneNumber: "12",
		Year:          2005,
		Name:          "KATRINA",
		EntryCount:    34,
	}
}

func detailFields(overrides map[int]string) []string {
	fields := []string{
		"20050829", "1200", "", "HU", "25.4N", "90.2W", "110", "902",
		"120", "60", "60", "90", "90", "40", "40", "60", "40", "20", "20", "40",
	}
	for i, v := range overrides {
		fields[i] = v
	}
	return fields
}

func TestSplitLine(t *testing.T) {
	t.Run("trims fields and drops trailing empties", func(t *testing.T) {
		fields := SplitLine("20050829, 1200,  , HU, 25.4N,  90.2W, 110,  902,")
		assert.Equal(t, []string{"20050829", "1200", "", "HU", "25.4N", "90.2W", "110", "902"}, fields)
	})

	t.Run("keeps interior empty record identifier", func(t *testing.T) {
		fields := SplitLine("a, , b,")
		assert.Equal(t, []string{"a", "", "b"}, fields)
	})
}

func TestClassifyLine(t *testing.T) {
	assert.Equal(t, KindHeader, ClassifyLine(SplitLine("AL122005,            KATRINA,     34,")))
	assert.Equal(t, KindDetail, ClassifyLine(SplitLine("20050829, 1200,  , HU, 25.4N,  90.2W, 110,  902,")))
	assert.Equal(t, KindHeader, ClassifyLine(nil))
}

func TestParseHeader(t *testing.T) {
	t.Run("named storm", func(t *testing.T) {
		h, err := ParseHeader([]string{"AL122005", "KATRINA", "34"}, testFile, 1)
		require.NoError(t, err)
		assert.Equal(t, katrinaHeader(), h)
		assert.Equal(t, "AL122005", h.StormID())
	})

	t.Run("unnamed storm", func(t *testing.T) {
		h, err := ParseHeader([]string{"EP011949", "UNNAMED", "14"}, testFile, 1)
		require.NoError(t, err)
		assert.Empty(t, h.Name)
		assert.Equal(t, "EP", h.Basin)
		assert.Equal(t, 1949, h.Year)
	})

	t.Run("too few fields", func(t *testing.T) {
		_, err := ParseHeader([]string{"AL122005", "KATRINA"}, testFile, 7)
		require.Error(t, err)
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, 7, fe.Line)
		assert.Contains(t, err.Error(), "atlantic.txt:7")
	})

	t.Run("malformed identifier", func(t *testing.T) {
		_, err := ParseHeader([]string{"AL12", "KATRINA", "34"}, testFile, 1)
		assert.Error(t, err)
	})

	t.Run("malformed entry count", func(t *testing.T) {
		_, err := ParseHeader([]string{"AL122005", "KATRINA", "many"}, testFile, 1)
		assert.Error(t, err)
	})
}

func TestParseObservation(t *testing.T) {
	raw := func(fields []string) RawObservation {
		return RawObservation{Header: katrinaHeader(), Fields: fields, File: testFile, Line: 12}
	}

	t.Run("katrina peak intensity line", func(t *testing.T) {
		obs, err := ParseObservation(raw(detailFields(nil)))
		require.NoError(t, err)

		assert.Equal(t, "AL122005", obs.StormID)
		assert.Equal(t, time.Date(2005, 8, 29, 12, 0, 0, 0, time.UTC), obs.ObservedAt)
		assert.Equal(t, "2005-08-29T12:00:00", obs.ObservedAt.Format(TimestampLayout))
		assert.Empty(t, obs.RecordIdentifier)
		assert.Equal(t, "HU", obs.Status)
		assert.Equal(t, 25.4, obs.Latitude)
		assert.Equal(t, -90.2, obs.Longitude)
		require.NotNil(t, obs.MaxWindKts)
		assert.Equal(t, 110, *obs.MaxWindKts)
		require.NotNil(t, obs.MinPressureMb)
		assert.Equal(t, 902, *obs.MinPressureMb)
		require.NotNil(t, obs.Radii.NE34)
		assert.Equal(t, 120, *obs.Radii.NE34)
		require.NotNil(t, obs.Radii.NW64)
		assert.Equal(t, 40, *obs.Radii.NW64)
	})

	t.Run("southern and eastern hemisphere suffixes", func(t *testing.T) {
		obs, err := ParseObservation(raw(detailFields(map[int]string{4: "12.1S", 5: "135.9E"})))
		require.NoError(t, err)
		assert.Equal(t, -12.1, obs.Latitude)
		assert.Equal(t, 135.9, obs.Longitude)
	})

	t.Run("wind sentinel -99 becomes null", func(t *testing.T) {
		obs, err := ParseObservation(raw(detailFields(map[int]string{6: "-99"})))
		require.NoError(t, err)
		assert.Nil(t, obs.MaxWindKts)
	})

	t.Run("pressure and radii sentinel -999 becomes null", func(t *testing.T) {
		overrides := map[int]string{7: "-999"}
		for i := 8; i < 20; i++ {
			overrides[i] = "-999"
		}
		obs, err := ParseObservation(raw(detailFields(overrides)))
		require.NoError(t, err)
		assert.Nil(t, obs.MinPressureMb)
		assert.Nil(t, obs.Radii.NE34)
		assert.Nil(t, obs.Radii.SW50)
		assert.Nil(t, obs.Radii.NW64)
	})

	t.Run("record identifier passes through", func(t *testing.T) {
		obs, err := ParseObservation(raw(detailFields(map[int]string{2: "L"})))
		require.NoError(t, err)
		assert.Equal(t, "L", obs.RecordIdentifier)
	})

	t.Run("too few fields", func(t *testing.T) {
		_, err := ParseObservation(raw([]string{"20050829", "1200"}))
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, 12, fe.Line)
	})

	t.Run("malformed coordinate suffix", func(t *testing.T) {
		_, err := ParseObservation(raw(detailFields(map[int]string{4: "25.4W"})))
		assert.Error(t, err)
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		_, err := ParseObservation(raw(detailFields(map[int]string{1: "2500"})))
		assert.Error(t, err)
	})

	t.Run("malformed wind", func(t *testing.T) {
		_, err := ParseObservation(raw(detailFields(map[int]string{6: "fast"})))
		assert.Error(t, err)
	})
}

// The combined timestamp must round-trip to the original date+time pair.
func TestTimestampRoundTrip(t *testing.T) {
	tests := []struct {
		date string
		hhmm string
	}{
		{"20050829", "1200"},
		{"18510625", "0000"},
		{"20201231", "1830"},
	}

	for _, tc := range tests {
		ts, err := parseTimestamp(tc.date, tc.hhmm)
		require.NoError(t, err)
		assert.Equal(t, tc.date, ts.Format("20060102"))
		assert.Equal(t, tc.hhmm, ts.Format("1504"))
	}
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		pos     string
		neg     string
		want    float64
		wantErr bool
	}{
		{"north positive", "25.4N", "N", "S", 25.4, false},
		{"south negative", "25.4S", "N", "S", -25.4, false},
		{"east positive", "135.9E", "E", "W", 135.9, false},
		{"west negative", "90.2W", "E", "W", -90.2, false},
		{"missing suffix", "25.4", "N", "S", 0, true},
		{"wrong axis suffix", "90.2W", "N", "S", 0, true},
		{"empty", "", "N", "S", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := parseCoordinate(tc.in, tc.pos, tc.neg)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}
