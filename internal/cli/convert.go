package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/hurdat2-etl/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/hurdat2-etl/internal/adapter/http"
	"github.com/couchcryptid/hurdat2-etl/internal/adapter/hurdat"
	kafkaadapter "github.com/couchcryptid/hurdat2-etl/internal/adapter/kafka"
	"github.com/couchcryptid/hurdat2-etl/internal/adapter/sqlite"
	"github.com/couchcryptid/hurdat2-etl/internal/config"
	"github.com/couchcryptid/hurdat2-etl/internal/filter"
	"github.com/couchcryptid/hurdat2-etl/internal/observability"
	"github.com/couchcryptid/hurdat2-etl/internal/pipeline"
)

const (
	basinAtlantic = "atlantic"
	basinPacific  = "pacific"
	basinBoth     = "both"

	formatSQLite = "sqlite"
	formatCSV    = "csv"
	formatBoth   = "both"
)

var convertOpts struct {
	atlantic     string
	pacific      string
	basin        string
	out          string
	format       string
	where        string
	kafkaTopic   string
	kafkaBrokers []string
	metricsAddr  string
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Run the conversion pipeline over one or both basin files",
	RunE:  runConvert,
}

var (
	metricsOnce sync.Once
	metrics     *observability.Metrics
)

// converterMetrics registers the pipeline metrics once per process; Execute
// may run more than once in tests.
func converterMetrics() *observability.Metrics {
	metricsOnce.Do(func() { metrics = observability.NewMetrics() })
	return metrics
}

func init() {
	f := convertCmd.Flags()
	f.StringVar(&convertOpts.atlantic, "atlantic", "", "path to the Atlantic best-track file")
	f.StringVar(&convertOpts.pacific, "pacific", "", "path to the Pacific best-track file")
	f.StringVar(&convertOpts.basin, "basin", basinBoth, "basin to convert: atlantic, pacific, or both")
	f.StringVar(&convertOpts.out, "out", "hurricane", "output path without extension (.db/.csv is appended per format)")
	f.StringVar(&convertOpts.format, "format", formatSQLite, "output format: sqlite, csv, or both")
	f.StringVar(&convertOpts.where, "where", "", `row filter expression, e.g. 'basin == "AL" && wind >= 96'`)
	f.StringVar(&convertOpts.kafkaTopic, "kafka-topic", "", "also publish rows to this Kafka topic")
	f.StringSliceVar(&convertOpts.kafkaBrokers, "kafka-brokers", nil, "Kafka brokers for --kafka-topic (default: KAFKA_BROKERS)")
	f.StringVar(&convertOpts.metricsAddr, "metrics-addr", "", "serve /metrics and health endpoints on this address during the run (default: METRICS_ADDR)")
}

func runConvert(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	extractors, err := buildExtractors(logger)
	if err != nil {
		return err
	}

	loaders, closers, err := buildLoaders(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				logger.Error("sink close error", "error", err)
			}
		}
	}()

	var rowFilter pipeline.RowFilter
	if convertOpts.where != "" {
		compiled, err := filter.Compile(convertOpts.where)
		if err != nil {
			return err
		}
		rowFilter = compiled
		logger.Info("row filter active", "expression", compiled.String())
	}

	p := pipeline.New(extractors, pipeline.NewTransformer(), loaders, rowFilter, logger, converterMetrics())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if addr := metricsAddr(cfg); addr != "" {
		srv := httpadapter.NewServer(addr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics endpoint error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics endpoint shutdown error", "error", err)
			}
		}()
	}

	if err := p.Run(ctx); err != nil {
		logger.Error("conversion failed", "error", err)
		return err
	}
	return nil
}

// buildExtractors maps the basin selector onto the input path flags.
// Atlantic rows always precede Pacific rows in a merged conversion.
func buildExtractors(logger *slog.Logger) ([]pipeline.Extractor, error) {
	var extractors []pipeline.Extractor

	switch convertOpts.basin {
	case basinAtlantic, basinPacific, basinBoth:
	default:
		return nil, fmt.Errorf("unknown basin %q (want atlantic, pacific, or both)", convertOpts.basin)
	}

	if convertOpts.basin != basinPacific {
		if convertOpts.atlantic == "" {
			return nil, errors.New("--atlantic is required for this basin selection")
		}
		extractors = append(extractors, hurdat.NewReader(convertOpts.atlantic, logger))
	}
	if convertOpts.basin != basinAtlantic {
		if convertOpts.pacific == "" {
			return nil, errors.New("--pacific is required for this basin selection")
		}
		extractors = append(extractors, hurdat.NewReader(convertOpts.pacific, logger))
	}
	return extractors, nil
}

// buildLoaders assembles the sinks for the selected format plus the optional
// Kafka sink, returning the ones that need closing after the run.
func buildLoaders(cfg *config.Config, logger *slog.Logger) ([]pipeline.Loader, []io.Closer, error) {
	var (
		loaders []pipeline.Loader
		closers []io.Closer
	)

	switch convertOpts.format {
	case formatSQLite, formatCSV, formatBoth:
	default:
		return nil, nil, fmt.Errorf("unknown format %q (want sqlite, csv, or both)", convertOpts.format)
	}

	if convertOpts.format != formatCSV {
		store, err := sqlite.New(convertOpts.out+".db", logger)
		if err != nil {
			return nil, nil, err
		}
		loaders = append(loaders, store)
		closers = append(closers, store)
	}
	if convertOpts.format != formatSQLite {
		loaders = append(loaders, csvfile.NewWriter(convertOpts.out+".csv", logger))
	}

	if convertOpts.kafkaTopic != "" {
		brokers := convertOpts.kafkaBrokers
		if len(brokers) == 0 {
			brokers = cfg.KafkaBrokers
		}
		writer := kafkaadapter.NewWriter(brokers, convertOpts.kafkaTopic, logger)
		loaders = append(loaders, writer)
		closers = append(closers, writer)
	}

	return loaders, closers, nil
}

func metricsAddr(cfg *config.Config) string {
	if convertOpts.metricsAddr != "" {
		return convertOpts.metricsAddr
	}
	return cfg.MetricsAddr
}
