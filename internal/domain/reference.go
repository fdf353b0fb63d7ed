package domain

// Reference tables are embedded here rather than read from the input: the
// code lists are fixed by the HURDAT2 format documentation. The SQLite sink
// materializes them so code columns can be joined at query time.

// Basin maps a two-letter basin code to its ocean region.
type Basin struct {
	Code string
	Name string
}

// RecordIdentifier maps a record-identifier code to its meaning.
type RecordIdentifier struct {
	Code        string
	Description string
}

// Status maps a system-status code to its meaning and intensity range.
type Status struct {
	Code        string
	Description string
	Intensity   string
}

// Basins lists the basin codes appearing across both source datasets.
var Basins = []Basin{
	{"AL", "Atlantic"},
	{"EP", "Northeast Pacific"},
	{"CP", "North Central Pacific"},
}

// RecordIdentifiers lists the valid record-identifier codes.
var RecordIdentifiers = []RecordIdentifier{
	{"C", "Closest approach to a coast, not followed by a landfall"},
	{"G", "Genesis"},
	{"I", "An intensity peak in terms of both pressure and maximum wind"},
	{"L", "Landfall (center of system crossing a coastline)"},
	{"P", "Minimum in central pressure"},
	{"R", "Provides additional detail on the intensity of the cyclone when rapid changes are underway"},
	{"S", "Change of status of the system"},
	{"T", "Provides additional detail on the track (position) of the cyclone"},
}

// Statuses lists the valid system-status codes.
var Statuses = []Status{
	{"TD", "Tropical cyclone of tropical depression intensity", "< 34 knots"},
	{"TS", "Tropical cyclone of tropical storm intensity", "34-63 knots"},
	{"HU", "Tropical cyclone of hurricane intensity", "> 64 knots"},
	{"EX", "Extratropical cyclone", "any intensity"},
	{"SD", "Subtropical cyclone of subtropical depression intensity", "< 34 knots"},
	{"SS", "Subtropical cyclone of subtropical storm intensity", "> 34 knots"},
	{"LO", "A low that is neither a tropical cyclone, a subtropical cyclone, nor an extratropical cyclone", "any intensity"},
	{"DB", "Disturbance", "any intensity"},
}

// LookupBasin resolves a basin code, returning false for unknown codes.
func LookupBasin(code string) (Basin, bool) {
	for _, b := range Basins {
		if b.Code == code {
			return b, true
		}
	}
	return Basin{}, false
}

// LookupRecordIdentifier resolves a record-identifier code.
func LookupRecordIdentifier(code string) (RecordIdentifier, bool) {
	for _, r := range RecordIdentifiers {
		if r.Code == code {
			return r, true
		}
	}
	return RecordIdentifier{}, false
}

// LookupStatus resolves a status code.
func LookupStatus(code string) (Status, bool) {
	for _, s := range Statuses {
		if s.Code == code {
			return s, true
		}
	}
	return Status{}, false
}
