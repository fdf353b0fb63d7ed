package domain

import (
	"strconv"
	"strings"
	"time"
)

const (
	// windSentinel marks an unrecorded maximum wind.
	windSentinel = -99
	// missingSentinel marks an unrecorded value in every other numeric column.
	missingSentinel = -999

	headerFieldCount = 3
	detailFieldCount = 20

	atcfIDLen = 8 // basin (2) + cyclone number (2) + year (4)

	unnamedStorm = "UNNAMED"
)

// SplitLine splits a raw HURDAT2 line into trimmed fields, dropping the
// empty trailing fields produced by the format's trailing commas. Interior
// empty fields (the record-identifier column is usually blank) survive.
func SplitLine(line string) []string {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// ClassifyLine reports whether a split line is a header or a detail line.
// Detail lines start with a numeric date field; headers start with the
// alphanumeric ATCF identifier.
func ClassifyLine(fields []string) LineKind {
	if len(fields) == 0 {
		return KindHeader
	}
	if _, err := strconv.ParseFloat(fields[0], 64); err == nil {
		return KindDetail
	}
	return KindHeader
}

// ParseHeader parses a header line into a StormHeader.
// Expected shape: "AL122005, KATRINA, 34".
func ParseHeader(fields []string, file string, line int) (StormHeader, error) {
	if len(fields) < headerFieldCount {
		return StormHeader{}, NewFormatError(file, line, "header has %d fields, want %d", len(fields), headerFieldCount)
	}

	id := fields[0]
	if len(id) != atcfIDLen {
		return StormHeader{}, NewFormatError(file, line, "malformed ATCF identifier %q", id)
	}
	year, err := strconv.Atoi(id[4:])
	if err != nil {
		return StormHeader{}, NewFormatError(file, line, "malformed year in ATCF identifier %q", id)
	}

	count, err := strconv.Atoi(fields[2])
	if err != nil || count < 0 {
		return StormHeader{}, NewFormatError(file, line, "malformed entry count %q", fields[2])
	}

	name := fields[1]
	if strings.EqualFold(name, unnamedStorm) {
		name = ""
	}

	return StormHeader{
		Basin:         id[:2],
		CycloneNumber: id[2:4],
		Year:          year,
		Name:          name,
		EntryCount:    count,
	}, nil
}

// ParseObservation normalizes one detail line into an Observation:
// combined UTC timestamp, signed decimal coordinates, sentinel values
// replaced by nil. Code columns pass through unchanged.
func ParseObservation(raw RawObservation) (Observation, error) {
	f := raw.Fields
	if len(f) < detailFieldCount {
		return Observation{}, NewFormatError(raw.File, raw.Line, "detail line has %d fields, want %d", len(f), detailFieldCount)
	}

	observedAt, err := parseTimestamp(f[0], f[1])
	if err != nil {
		return Observation{}, NewFormatError(raw.File, raw.Line, "malformed timestamp %q %q", f[0], f[1])
	}

	lat, err := parseCoordinate(f[4], "N", "S")
	if err != nil {
		return Observation{}, NewFormatError(raw.File, raw.Line, "malformed latitude %q", f[4])
	}
	lon, err := parseCoordinate(f[5], "E", "W")
	if err != nil {
		return Observation{}, NewFormatError(raw.File, raw.Line, "malformed longitude %q", f[5])
	}

	wind, err := parseNullableInt(f[6], windSentinel)
	if err != nil {
		return Observation{}, NewFormatError(raw.File, raw.Line, "malformed maximum wind %q", f[6])
	}
	pressure, err := parseNullableInt(f[7], missingSentinel)
	if err != nil {
		return Observation{}, NewFormatError(raw.File, raw.Line, "malformed minimum pressure %q", f[7])
	}

	var radii [12]*int
	for i := range radii {
		v, err := parseNullableInt(f[8+i], missingSentinel)
		if err != nil {
			return Observation{}, NewFormatError(raw.File, raw.Line, "malformed wind radius %q", f[8+i])
		}
		radii[i] = v
	}

	h := raw.Header
	return Observation{
		StormID:          h.StormID(),
		Basin:            h.Basin,
		CycloneNumber:    h.CycloneNumber,
		Year:             h.Year,
		Name:             h.Name,
		EntryCount:       h.EntryCount,
		ObservedAt:       observedAt,
		RecordIdentifier: f[2],
		Status:           f[3],
		Latitude:         lat,
		Longitude:        lon,
		MaxWindKts:       wind,
		MinPressureMb:    pressure,
		Radii: WindRadii{
			NE34: radii[0], SE34: radii[1], SW34: radii[2], NW34: radii[3],
			NE50: radii[4], SE50: radii[5], SW50: radii[6], NW50: radii[7],
			NE64: radii[8], SE64: radii[9], SW64: radii[10], NW64: radii[11],
		},
	}, nil
}

// parseTimestamp combines a YYYYMMDD date and an HHMM time into a UTC time.
func parseTimestamp(date, hhmm string) (time.Time, error) {
	return time.ParseInLocation("200601021504", date+hhmm, time.UTC)
}

// parseCoordinate converts suffix notation ("25.4N", "90.2W") into signed
// decimal degrees: positive for the given positive suffix, negated for the
// negative one.
func parseCoordinate(s, positive, negative string) (float64, error) {
	if len(s) < 2 {
		return 0, &strconv.NumError{Func: "parseCoordinate", Num: s, Err: strconv.ErrSyntax}
	}
	suffix := s[len(s)-1:]
	v, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return 0, err
	}
	switch suffix {
	case positive:
		return v, nil
	case negative:
		return -v, nil
	default:
		return 0, &strconv.NumError{Func: "parseCoordinate", Num: s, Err: strconv.ErrSyntax}
	}
}

// parseNullableInt parses an integer column, mapping the sentinel and the
// empty string to nil.
func parseNullableInt(s string, sentinel int) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	if v == sentinel {
		return nil, nil
	}
	return &v, nil
}
