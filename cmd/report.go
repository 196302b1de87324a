package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/frahmantamala/restaurant-ledger/internal/core/datamodel"
	"github.com/frahmantamala/restaurant-ledger/internal/report"
	"github.com/frahmantamala/restaurant-ledger/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	reportFrom   string
	reportTo     string
	reportFormat string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a date-range report",
	Long:  `Generate the income report for an inclusive date window and write it as CSV or XLSX.`,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "first day, YYYY-MM-DD (default today)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "last day, YYYY-MM-DD (default today)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "csv", "csv or xlsx")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output file (default restaurant-report-{from}-to-{to}.{format}, - for stdout)")
}

func parseBound(raw string) (datamodel.Date, error) {
	if raw == "" {
		return "", nil
	}
	return datamodel.ParseDate(raw)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if reportFormat != "csv" && reportFormat != "xlsx" {
		return fmt.Errorf("unsupported format %q, want csv or xlsx", reportFormat)
	}
	from, err := parseBound(reportFrom)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parseBound(reportTo)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger.InitWithLevel(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	gormDB, err := openGorm(cfg.Database, db)
	if err != nil {
		return err
	}
	svc := buildServices(cfg, gormDB, nil, lg)

	summary, err := svc.Report.Generate(context.Background(), from, to)
	if err != nil {
		return err
	}

	out := reportOut
	if out == "" {
		out = summary.Filename(reportFormat)
	}
	if out == "-" {
		return writeReport(cmd.OutOrStdout(), summary, reportFormat)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := writeReport(f, summary, reportFormat); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report exported successfully: %s\n", out)
	return nil
}

func writeReport(w io.Writer, summary *report.Summary, format string) error {
	if format == "xlsx" {
		return summary.WriteXLSX(w)
	}
	_, err := w.Write(summary.CSV())
	return err
}
