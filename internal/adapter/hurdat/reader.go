// Package hurdat reads raw HURDAT2 best-track files.
package hurdat

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/hurdat2-etl/internal/domain"
)

// Reader extracts raw observations from one best-track file. It implements
// pipeline.Extractor.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for the given file path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Extract performs a single pass over the file and returns every detail
// line as a RawObservation paired with its storm header, in source order.
//
// A detail line before any header, or a structurally malformed header, is
// fatal. A mismatch between a header's declared entry count and the number
// of detail lines observed is logged and tolerated, matching the published
// datasets which contain a handful of such discrepancies.
func (r *Reader) Extract(ctx context.Context) ([]domain.RawObservation, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var (
		raws     []domain.RawObservation
		header   domain.StormHeader
		haveHead bool
		observed int
		lineNo   int
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++

		fields := domain.SplitLine(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch domain.ClassifyLine(fields) {
		case domain.KindHeader:
			if haveHead {
				r.checkEntryCount(header, observed)
			}
			header, err = domain.ParseHeader(fields, r.path, lineNo)
			if err != nil {
				return nil, err
			}
			haveHead = true
			observed = 0

		case domain.KindDetail:
			if !haveHead {
				return nil, domain.NewFormatError(r.path, lineNo, "detail line with no preceding storm header")
			}
			observed++
			raws = append(raws, domain.RawObservation{
				Header: header,
				Fields: fields,
				File:   r.path,
				Line:   lineNo,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if haveHead {
		r.checkEntryCount(header, observed)
	}

	r.logger.Info("extracted best-track file", "path", r.path, "lines", lineNo, "observations", len(raws))
	return raws, nil
}

func (r *Reader) checkEntryCount(header domain.StormHeader, observed int) {
	if observed != header.EntryCount {
		r.logger.Warn("entry count mismatch",
			"storm", header.StormID(),
			"declared", header.EntryCount,
			"observed", observed,
		)
	}
}
