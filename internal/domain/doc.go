// Package domain models NOAA HURDAT2 best-track storm data.
//
// # Data Source
//
// Best-track files are published by the NOAA National Hurricane Center at
// https://www.nhc.noaa.gov/data/#hurdat, one file per basin (Atlantic,
// Northeast/North-Central Pacific). A file is a flat sequence of
// comma-delimited lines of two kinds:
//
//	Header:  AL122005,            KATRINA,     34,
//	Detail:  20050829, 1200,  , HU, 25.4N,  90.2W, 110,  902, 120, ...
//
// A header introduces one storm and declares how many detail lines follow.
// Every detail line belongs to the most recent header. The first header
// field is the ATCF cyclone identifier: a two-letter basin code, a
// two-digit cyclone number, and a four-digit year.
//
// # Field Conventions
//
// Timestamps:
//
//	Date is YYYYMMDD, time is HHMM, both UTC. They are combined into a
//	single time.Time during normalization and rendered as ISO-8601
//	("2005-08-29T12:00:00") by the sinks. Splitting the rendered value
//	back apart recovers the original pair.
//
// Coordinates:
//
//	Latitude and longitude carry a trailing compass suffix: "25.4N",
//	"90.2W". Normalization strips the suffix and negates the value for
//	the southern and western hemispheres.
//
// Sentinel values:
//
//	-99 in the maximum-wind column and -999 in any other numeric column
//	mean "not recorded" and are normalized to null. Wind radii before
//	2004 are almost entirely -999.
//
// Codes:
//
//	Basin, record-identifier, and status codes pass through unchanged and
//	are resolved against the embedded reference tables at query time. The
//	Atlantic and Pacific datasets have overlapping but not identical
//	valid code ranges; no reconciliation is performed between them.
//
// # Derived Fields
//
// A Saffir-Simpson style category label ("td", "ts", "cat1".."cat5") is
// derived from the maximum sustained wind by [EnrichObservation], and is
// null when the wind is null.
package domain
