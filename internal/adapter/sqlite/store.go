// Package sqlite provides the relational sink for normalized observations.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/couchcryptid/hurdat2-etl/internal/domain"
)

// Store writes storms, observations, and the static reference tables to a
// SQLite database file. It implements pipeline.Loader.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// New opens (or creates) the database at path and ensures the schema and
// reference tables exist.
func New(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Single writer; the converter is single-threaded anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, path: path, logger: logger}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Name identifies the sink in logs and metrics.
func (s *Store) Name() string { return "sqlite" }

// DB exposes the underlying connection for queries (used by validate).
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) initSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS basins (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS record_identifiers (
	id          TEXT PRIMARY KEY,
	description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS statuses (
	id          TEXT PRIMARY KEY,
	description TEXT NOT NULL,
	intensity   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS storms (
	id             TEXT PRIMARY KEY,
	basin_id       TEXT NOT NULL,
	cyclone_number TEXT NOT NULL,
	year           INTEGER NOT NULL,
	name           TEXT,
	entry_count    INTEGER NOT NULL,
	CONSTRAINT chk_basin CHECK (basin_id IN ('AL', 'EP', 'CP')),
	FOREIGN KEY (basin_id) REFERENCES basins(id)
);

CREATE TABLE IF NOT EXISTS observations (
	storm_id           TEXT NOT NULL,
	observed_at        TEXT NOT NULL,
	record_identifier  TEXT,
	status             TEXT NOT NULL,
	latitude           REAL NOT NULL,
	longitude          REAL NOT NULL,
	max_wind_kts       INTEGER,
	min_pressure_mb    INTEGER,
	ne_34_kt_radius_nm INTEGER,
	se_34_kt_radius_nm INTEGER,
	sw_34_kt_radius_nm INTEGER,
	nw_34_kt_radius_nm INTEGER,
	ne_50_kt_radius_nm INTEGER,
	se_50_kt_radius_nm INTEGER,
	sw_50_kt_radius_nm INTEGER,
	nw_50_kt_radius_nm INTEGER,
	ne_64_kt_radius_nm INTEGER,
	se_64_kt_radius_nm INTEGER,
	sw_64_kt_radius_nm INTEGER,
	nw_64_kt_radius_nm INTEGER,
	category           TEXT,
	ingested_at        TEXT NOT NULL,
	CONSTRAINT chk_record CHECK (record_identifier IS NULL OR record_identifier IN ('C', 'G', 'I', 'L', 'P', 'R', 'S', 'T')),
	CONSTRAINT chk_status CHECK (status IN ('TD', 'TS', 'HU', 'EX', 'SD', 'SS', 'LO', 'DB')),
	FOREIGN KEY (storm_id) REFERENCES storms(id)
);

CREATE INDEX IF NOT EXISTS idx_observations_storm ON observations(storm_id);
CREATE INDEX IF NOT EXISTS idx_observations_observed_at ON observations(observed_at);
CREATE INDEX IF NOT EXISTS idx_storms_year ON storms(year);
`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.seedReferenceTables()
}

// seedReferenceTables writes the embedded code tables. INSERT OR REPLACE
// keeps re-runs idempotent.
func (s *Store) seedReferenceTables() error {
	for _, b := range domain.Basins {
		if _, err := s.db.Exec(`INSERT OR REPLACE INTO basins (id, name) VALUES (?, ?)`, b.Code, b.Name); err != nil {
			return fmt.Errorf("seed basins: %w", err)
		}
	}
	for _, r := range domain.RecordIdentifiers {
		if _, err := s.db.Exec(`INSERT OR REPLACE INTO record_identifiers (id, description) VALUES (?, ?)`, r.Code, r.Description); err != nil {
			return fmt.Errorf("seed record identifiers: %w", err)
		}
	}
	for _, st := range domain.Statuses {
		if _, err := s.db.Exec(`INSERT OR REPLACE INTO statuses (id, description, intensity) VALUES (?, ?, ?)`, st.Code, st.Description, st.Intensity); err != nil {
			return fmt.Errorf("seed statuses: %w", err)
		}
	}
	return nil
}

// LoadBatch writes the complete row buffer in one transaction: storm
// headers first (deduplicated, upserted), then every observation in order.
func (s *Store) LoadBatch(ctx context.Context, rows []domain.Observation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := insertStorms(ctx, tx, rows); err != nil {
		return err
	}
	if err := insertObservations(ctx, tx, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug("sqlite batch committed", "path", s.path, "rows", len(rows))
	return nil
}

func insertStorms(ctx context.Context, tx *sql.Tx, rows []domain.Observation) error {
	stmt, err := tx.PrepareContext(ctx, `
INSERT OR REPLACE INTO storms (id, basin_id, cyclone_number, year, name, entry_count)
VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare storms: %w", err)
	}
	defer stmt.Close()

	seen := make(map[string]bool)
	for _, row := range rows {
		if seen[row.StormID] {
			continue
		}
		seen[row.StormID] = true
		if _, err := stmt.ExecContext(ctx,
			row.StormID, row.Basin, row.CycloneNumber, row.Year,
			nullString(row.Name), row.EntryCount,
		); err != nil {
			return fmt.Errorf("insert storm %s: %w", row.StormID, err)
		}
	}
	return nil
}

func insertObservations(ctx context.Context, tx *sql.Tx, rows []domain.Observation) error {
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO observations (
	storm_id, observed_at, record_identifier, status, latitude, longitude,
	max_wind_kts, min_pressure_mb,
	ne_34_kt_radius_nm, se_34_kt_radius_nm, sw_34_kt_radius_nm, nw_34_kt_radius_nm,
	ne_50_kt_radius_nm, se_50_kt_radius_nm, sw_50_kt_radius_nm, nw_50_kt_radius_nm,
	ne_64_kt_radius_nm, se_64_kt_radius_nm, sw_64_kt_radius_nm, nw_64_kt_radius_nm,
	category, ingested_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare observations: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		r := row.Radii
		if _, err := stmt.ExecContext(ctx,
			row.StormID,
			row.ObservedAt.Format(domain.TimestampLayout),
			nullString(row.RecordIdentifier),
			row.Status,
			row.Latitude,
			row.Longitude,
			nullInt(row.MaxWindKts),
			nullInt(row.MinPressureMb),
			nullInt(r.NE34), nullInt(r.SE34), nullInt(r.SW34), nullInt(r.NW34),
			nullInt(r.NE50), nullInt(r.SE50), nullInt(r.SW50), nullInt(r.NW50),
			nullInt(r.NE64), nullInt(r.SE64), nullInt(r.SW64), nullInt(r.NW64),
			nullStringPtr(row.Category),
			row.IngestedAt.Format(domain.TimestampLayout),
		); err != nil {
			return fmt.Errorf("insert observation %s %s: %w", row.StormID, row.ObservedAt.Format(domain.TimestampLayout), err)
		}
	}
	return nil
}

// CountMismatch reports a storm whose stored observation count differs from
// the entry count its header declared.
type CountMismatch struct {
	StormID  string
	Declared int
	Stored   int
}

// AuditEntryCounts rechecks the declared-count invariant against the stored
// rows. Only meaningful for conversions performed without a row filter.
func (s *Store) AuditEntryCounts(ctx context.Context) ([]CountMismatch, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT s.id, s.entry_count, COUNT(o.storm_id)
FROM storms s
LEFT JOIN observations o ON o.storm_id = s.id
GROUP BY s.id
HAVING s.entry_count != COUNT(o.storm_id)
ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("audit query: %w", err)
	}
	defer rows.Close()

	var mismatches []CountMismatch
	for rows.Next() {
		var m CountMismatch
		if err := rows.Scan(&m.StormID, &m.Declared, &m.Stored); err != nil {
			return nil, fmt.Errorf("audit scan: %w", err)
		}
		mismatches = append(mismatches, m)
	}
	return mismatches, rows.Err()
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullStringPtr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
