// Package csvfile provides the flat delimited sink for normalized observations.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/couchcryptid/hurdat2-etl/internal/domain"
)

// columns is the header row; one output row per observation, with the storm
// header fields flattened in. Null values are written as empty cells.
var columns = []string{
	"storm_id",
	"basin_id",
	"cyclone_number",
	"year",
	"name",
	"entry_count",
	"observed_at",
	"record_identifier",
	"status",
	"latitude",
	"longitude",
	"max_wind_kts",
	"min_pressure_mb",
	"ne_34_kt_radius_nm",
	"se_34_kt_radius_nm",
	"sw_34_kt_radius_nm",
	"nw_34_kt_radius_nm",
	"ne_50_kt_radius_nm",
	"se_50_kt_radius_nm",
	"sw_50_kt_radius_nm",
	"nw_50_kt_radius_nm",
	"ne_64_kt_radius_nm",
	"se_64_kt_radius_nm",
	"sw_64_kt_radius_nm",
	"nw_64_kt_radius_nm",
	"category",
	"ingested_at",
}

// Writer serializes the row buffer to one delimited file. It implements
// pipeline.Loader.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer targeting the given file path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "csv" }

// LoadBatch writes the header row followed by every observation in order.
// The file is created or truncated; a failed run leaves no partial output
// to append to on retry.
func (w *Writer) LoadBatch(ctx context.Context, rows []domain.Observation) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cw.Write(record(row)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}

	w.logger.Debug("csv file written", "path", w.path, "rows", len(rows))
	return nil
}

func record(row domain.Observation) []string {
	r := row.Radii
	return []string{
		row.StormID,
		row.Basin,
		row.CycloneNumber,
		strconv.Itoa(row.Year),
		row.Name,
		strconv.Itoa(row.EntryCount),
		row.ObservedAt.Format(domain.TimestampLayout),
		row.RecordIdentifier,
		row.Status,
		formatFloat(row.Latitude),
		formatFloat(row.Longitude),
		formatNullInt(row.MaxWindKts),
		formatNullInt(row.MinPressureMb),
		formatNullInt(r.NE34), formatNullInt(r.SE34), formatNullInt(r.SW34), formatNullInt(r.NW34),
		formatNullInt(r.NE50), formatNullInt(r.SE50), formatNullInt(r.SW50), formatNullInt(r.NW50),
		formatNullInt(r.NE64), formatNullInt(r.SE64), formatNullInt(r.SW64), formatNullInt(r.NW64),
		formatNullString(row.Category),
		row.IngestedAt.Format(domain.TimestampLayout),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatNullInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func formatNullString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
