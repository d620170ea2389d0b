package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zzstudio/invoicedesk/internal/app"
	"github.com/zzstudio/invoicedesk/internal/common"
	"github.com/zzstudio/invoicedesk/internal/export"
	"github.com/zzstudio/invoicedesk/internal/extract"
	"github.com/zzstudio/invoicedesk/internal/ingest"
	"github.com/zzstudio/invoicedesk/internal/layout"
	"github.com/zzstudio/invoicedesk/internal/ledger"
	"github.com/zzstudio/invoicedesk/internal/printing"
	"github.com/zzstudio/invoicedesk/internal/query"
)

var version = "1.0.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "invoicedesk",
	Short: "Invoice ingest, grid printing and ledger reporting",
	Long: `invoicedesk extracts structured fields from invoice documents, arranges
them onto gridded print-ready pages, keeps a durable per-invoice ledger of
everything that was printed, and answers filtered/grouped queries over that
ledger for reporting and export.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// services wires the whole application graph once per command run.
type services struct {
	cfg       *common.Config
	store     *ledger.Store
	ingest    *ingest.Service
	query     *query.Engine
	export    *export.Service
	committer *app.Committer
}

func buildServices() *services {
	cfg := common.LoadConfig()
	logger := slog.Default()

	store := ledger.NewStore(cfg.Ledger.Path, logger)
	store.Load()

	builder := extract.NewBuilder(
		extract.NewPDFTextExtractor(logger),
		extract.NewFieldExtractor(extract.BuyerFirst),
		logger,
	)

	raster := layout.NewCommandRasterizer(cfg.Layout.Rasterizer, cfg.Layout.DPI, logger)
	engine := layout.NewEngine(raster, logger)
	worker := layout.NewWorker(engine, logger)
	printer := printing.NewLPSubmitter(cfg.Printer.Timeout, logger)

	queryEngine := query.NewEngine(store, logger)

	return &services{
		cfg:       cfg,
		store:     store,
		ingest:    ingest.NewService(builder, store, logger),
		query:     queryEngine,
		export:    export.NewService(queryEngine, logger),
		committer: app.NewCommitter(worker, store, printer, logger),
	}
}
