package domain

import (
	"fmt"
	"time"
)

// LineKind distinguishes the two record kinds in a HURDAT2 file.
type LineKind int

const (
	// KindHeader is a storm header line (ATCF id, name, entry count).
	KindHeader LineKind = iota
	// KindDetail is a per-timestep observation line.
	KindDetail
)

// StormHeader is the parsed form of a header line. It scopes the detail
// lines that follow it to a single storm.
type StormHeader struct {
	Basin         string // two-letter basin code, e.g. "AL"
	CycloneNumber string // two-digit ATCF cyclone number, e.g. "12"
	Year          int
	Name          string // empty when the source says UNNAMED
	EntryCount    int    // declared number of detail lines
}

// StormID returns the ATCF cyclone identifier, e.g. "AL122005".
func (h StormHeader) StormID() string {
	return fmt.Sprintf("%s%s%04d", h.Basin, h.CycloneNumber, h.Year)
}

// RawObservation is a detail line split into trimmed fields, paired with
// the header that introduced it and its position in the source file.
type RawObservation struct {
	Header StormHeader
	Fields []string
	File   string
	Line   int
}

// WindRadii holds the twelve wind-radius extents in nautical miles:
// 34/50/64 kt thresholds by NE/SE/SW/NW quadrant. Nil means not recorded.
type WindRadii struct {
	NE34 *int `json:"ne_34_kt_nm"`
	SE34 *int `json:"se_34_kt_nm"`
	SW34 *int `json:"sw_34_kt_nm"`
	NW34 *int `json:"nw_34_kt_nm"`
	NE50 *int `json:"ne_50_kt_nm"`
	SE50 *int `json:"se_50_kt_nm"`
	SW50 *int `json:"sw_50_kt_nm"`
	NW50 *int `json:"nw_50_kt_nm"`
	NE64 *int `json:"ne_64_kt_nm"`
	SE64 *int `json:"se_64_kt_nm"`
	SW64 *int `json:"sw_64_kt_nm"`
	NW64 *int `json:"nw_64_kt_nm"`
}

// Observation is the normalized, write-once row produced from one detail
// line. Header fields are flattened in so each row is self-describing.
type Observation struct {
	StormID       string `json:"storm_id"`
	Basin         string `json:"basin"`
	CycloneNumber string `json:"cyclone_number"`
	Year          int    `json:"year"`
	Name          string `json:"name,omitempty"`
	EntryCount    int    `json:"entry_count"`

	ObservedAt       time.Time `json:"observed_at"`
	RecordIdentifier string    `json:"record_identifier,omitempty"` // empty → null in the sinks
	Status           string    `json:"status"`
	Latitude         float64   `json:"latitude"` // signed decimal degrees
	Longitude        float64   `json:"longitude"`
	MaxWindKts       *int      `json:"max_wind_kts"`
	MinPressureMb    *int      `json:"min_pressure_mb"`
	Radii            WindRadii `json:"wind_radii"`

	// Category is the Saffir-Simpson style label derived from MaxWindKts.
	Category *string `json:"category"`

	IngestedAt time.Time `json:"ingested_at"`
}

// TimestampLayout renders ObservedAt the way the sinks store it.
const TimestampLayout = "2006-01-02T15:04:05"

// FormatError reports a malformed source line with file and line context.
// Per the converter's contract it is always fatal; the tool is re-run from
// scratch after the input is fixed.
type FormatError struct {
	File string
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// NewFormatError builds a FormatError with a formatted message.
func NewFormatError(file string, line int, format string, args ...any) *FormatError {
	return &FormatError{File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}
