// upsextract extracts Package Ref No.1 / Tracking No. pairs from a UPS Daily
// Shipment Detail Report PDF and prints or saves the result.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/constants"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/common"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/export"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/extract"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/history"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/pdftext"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/pipeline"
)

var (
	flagOutput string
	flagFormat string
	flagJSON   bool
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and maps its outcome to an exit code: 0 success,
// 2 usage (bad flags or arguments), 1 any other failure.
func run(args []string) int {
	usage := false

	root := &cobra.Command{
		Use:   "upsextract [pdf]",
		Short: "Extract shipment records from a UPS Daily Shipment Detail Report PDF",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				usage = true
				return err
			}
			return nil
		},
		RunE: runExtract,
		// Errors are logged by runExtract with context already.
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		usage = true
		return err
	})
	root.Flags().StringVarP(&flagOutput, "output", "o", "", "output file path (CSV or XLSX)")
	root.Flags().StringVar(&flagFormat, "format", "", "output format: csv or xlsx")
	root.Flags().BoolVar(&flagJSON, "json", false, "print records as JSON to stdout")

	root.AddCommand(historyCmd())
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if usage {
			return 2
		}
		return 1
	}
	return 0
}

func buildPipeline(ctx context.Context) (*pipeline.Pipeline, *history.Store, error) {
	cfg, err := common.LoadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	// The CLI keeps stdout for tables/JSON; logs go to stderr at warn level
	// unless the operator asks for more.
	level := cfg.LogLevel
	if level == "info" {
		level = "warn"
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(level),
	}))

	var hist *history.Store
	if cfg.History.DSN != "" {
		hist, err = history.Open(ctx, cfg.History.DSN, logger)
		if err != nil {
			return nil, nil, err
		}
	}

	source := pdftext.NewSource(pdftext.Config{Pdftotext: cfg.PDF.Pdftotext, Timeout: cfg.PDF.Timeout}, logger)
	rebuilder := extract.NewRebuilder(cfg.Extract.CarrierPrefix, nil)
	return pipeline.New(source, extract.New(rebuilder), hist, logger), hist, nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	pipe, hist, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	if hist != nil {
		defer hist.Close()
	}

	if len(args) == 0 {
		return runInteractive(ctx, pipe)
	}

	pdfPath := cleanPath(args[0])
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("file not found: %s", pdfPath)
	}

	res, err := pipe.Run(ctx, pdfPath)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(res.Records)
	}

	fmt.Printf("Reading: %s\n", pdfPath)
	export.WriteTable(os.Stdout, res.Records)

	output, format := resolveOutput(pdfPath)
	if output == "" {
		return nil
	}
	return saveRecords(res.Records, output, format)
}

// resolveOutput combines --output and --format the way the original tool did:
// an explicit output path wins, its extension picks the format unless
// overridden; --format alone derives the path from the input name.
func resolveOutput(pdfPath string) (output, format string) {
	if flagOutput != "" {
		format = flagFormat
		if format == "" {
			format = constants.NormalizeExt(filepath.Ext(flagOutput))
		}
		if format != "csv" && format != "xlsx" {
			format = "csv"
		}
		return flagOutput, format
	}
	if flagFormat == "csv" || flagFormat == "xlsx" {
		base := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath))
		return base + "." + flagFormat, flagFormat
	}
	return "", ""
}

func saveRecords(records []extract.Record, output, format string) error {
	switch format {
	case "xlsx":
		data, err := export.BuildXLSX(records)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return err
		}
	default:
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		if err := export.WriteCSV(f, records); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	fmt.Printf("Saved %d records to %s\n", len(records), output)
	return nil
}

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent extraction runs (requires UPSX_HISTORY_DSN)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := common.LoadConfig(ctx)
			if err != nil {
				return err
			}
			if cfg.History.DSN == "" {
				return fmt.Errorf("history is disabled: set UPSX_HISTORY_DSN")
			}
			store, err := history.Open(ctx, cfg.History.DSN, slog.Default())
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded.")
				return nil
			}
			for _, r := range runs {
				fmt.Printf("%s  %-24s  pages=%d records=%d voided=%d  %s  %dms\n",
					r.CreatedAt.Format("2006-01-02 15:04:05"), r.SourceName,
					r.Pages, r.RecordCount, r.VoidCount, r.Status, r.Duration.Milliseconds())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	return cmd
}

func slogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
