package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/diillson/anthropic-cost-report-go/internal/domain/entity"
	"github.com/diillson/anthropic-cost-report-go/internal/domain/period"
	"github.com/diillson/anthropic-cost-report-go/internal/domain/repository"
	"github.com/diillson/anthropic-cost-report-go/internal/shared/clock"
	"github.com/diillson/anthropic-cost-report-go/internal/shared/types"
)

// CostRepositoryFactory builds a CostRepository for the given base URL and
// timeout. The factory indirection lets a config file retarget the service
// without the use case knowing how the client is constructed.
type CostRepositoryFactory func(baseURL string, timeout time.Duration) repository.CostRepository

// ReportUseCase handles the main cost report flow: resolve the period,
// fetch the data, render or export it.
type ReportUseCase struct {
	costFactory CostRepositoryFactory
	exportRepo  repository.ExportRepository
	configRepo  repository.ConfigRepository
	credsRepo   repository.CredentialsRepository
	console     types.ConsoleInterface
	clock       clock.Clock
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	costFactory CostRepositoryFactory,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	credsRepo repository.CredentialsRepository,
	console types.ConsoleInterface,
	clk clock.Clock,
) *ReportUseCase {
	return &ReportUseCase{
		costFactory: costFactory,
		exportRepo:  exportRepo,
		configRepo:  configRepo,
		credsRepo:   credsRepo,
		console:     console,
		clock:       clk,
	}
}

// RunReport executa o fluxo completo do relatório de custos.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	cfg, err := uc.loadConfig(args)
	if err != nil {
		return err
	}
	uc.mergeConfig(args, cfg)

	// The period resolves before anything touches the network; a bad
	// expression never costs an API call.
	rng, err := period.Resolve(args.Period, uc.clock.Now())
	if err != nil {
		return err
	}

	apiKey, err := uc.credsRepo.LoadAPIKey()
	if err != nil {
		return err
	}

	costRepo := uc.costFactory(cfg.BaseURL, time.Duration(cfg.TimeoutSeconds)*time.Second)

	// Keep stdout pipe-clean in json mode: no spinner, no log lines.
	var status types.StatusHandle
	if args.Format != "json" {
		status = uc.console.Status(fmt.Sprintf("Fetching cost report for %s...", rng.String()))
	}
	report, err := costRepo.GetCostReport(ctx, rng, apiKey)
	if status != nil {
		status.Stop()
	}
	if err != nil {
		return err
	}

	switch args.Format {
	case "json":
		uc.printRaw(report)
	default:
		uc.printTable(report)
	}

	return uc.exportReport(report, args)
}

// loadConfig loads the config file named by the CLI args, or an empty
// config when none was given.
func (uc *ReportUseCase) loadConfig(args *types.CLIArgs) (*types.Config, error) {
	if args.ConfigFile == "" {
		return &types.Config{}, nil
	}
	return uc.configRepo.LoadConfigFile(args.ConfigFile)
}

// mergeConfig fills CLI args from config file values. Flags win over the
// file; the file wins over defaults.
func (uc *ReportUseCase) mergeConfig(args *types.CLIArgs, cfg *types.Config) {
	if args.Format == "" {
		args.Format = cfg.Format
	}
	if args.Format == "" {
		args.Format = "table"
	}
	if args.ReportName == "" {
		args.ReportName = cfg.ReportName
	}
	if len(args.ReportType) == 0 {
		args.ReportType = cfg.ReportType
	}
	if args.Dir == "" {
		args.Dir = cfg.Dir
	}
}

// printRaw emits the response payload unmodified, plus a trailing newline
// when the payload itself doesn't carry one.
func (uc *ReportUseCase) printRaw(report entity.Report) {
	uc.console.Print(string(report.Raw))
	if !bytes.HasSuffix(report.Raw, []byte("\n")) {
		uc.console.Println()
	}
}

// printTable renders one row per day plus a total row. Days the service
// didn't report are not synthesized.
func (uc *ReportUseCase) printTable(report entity.Report) {
	if len(report.Buckets) == 0 {
		uc.console.Println("No cost data found for the specified period.")
		return
	}

	table := uc.console.CreateTable()
	table.AddColumn("Date")
	table.AddColumn("Cost")
	for _, bucket := range report.Buckets {
		table.AddRow(bucket.Date.Format("2006-01-02"), entity.FormatCents(bucket.AmountCents))
	}
	table.AddRow("Total", entity.FormatCents(report.TotalCents))
	uc.console.Println(table.Render())
}

// exportReport writes the report to each requested file format.
func (uc *ReportUseCase) exportReport(report entity.Report, args *types.CLIArgs) error {
	if args.ReportName == "" || len(args.ReportType) == 0 {
		return nil
	}

	for _, reportType := range args.ReportType {
		var (
			path string
			err  error
		)
		switch reportType {
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(report, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(report, args.ReportName, args.Dir)
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(report, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unknown report type '%s', skipping", reportType)
			continue
		}
		if err != nil {
			return fmt.Errorf("exporting %s report: %w", reportType, err)
		}
		uc.console.LogSuccess("Report saved to %s", path)
	}
	return nil
}
