package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/diillson/anthropic-cost-report-go/pkg/version"

	"github.com/diillson/anthropic-cost-report-go/internal/application/usecase"
	"github.com/diillson/anthropic-cost-report-go/internal/shared/types"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:   "cost-report <period>",
		Short: "Anthropic API cost report CLI",
		Long: `Fetches the Anthropic API cost report for a time period and prints it
as a table or as the raw JSON payload.

Periods: 'today', 'yesterday', 'this week', 'last week', 'this month',
'last month', 'last N days', 'YYYY-MM-DD', 'YYYY-MM-DD to YYYY-MM-DD',
'january', 'feb 2025', ...`,
		Args:         cobra.ExactArgs(1),
		Version:      formattedVersion,
		RunE:         app.runCommand,
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "Anthropic Cost Report version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format: table or json (default: table)")
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Specify report types: csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(positional []string) (*types.CLIArgs, error) {
	format, _ := app.rootCmd.Flags().GetString("format")
	configFile, _ := app.rootCmd.Flags().GetString("config-file")
	reportName, _ := app.rootCmd.Flags().GetString("report-name")
	reportType, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	dir, _ := app.rootCmd.Flags().GetString("dir")

	if format != "" && format != "table" && format != "json" {
		return nil, fmt.Errorf("invalid format %q: must be table or json", format)
	}

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		Period:     positional[0],
		Format:     format,
		ConfigFile: configFile,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, positional []string) error {
	cliArgs, err := app.parseArgs(positional)
	if err != nil {
		return err
	}

	// The banner stays off the json output path so stdout can be piped.
	if cliArgs.Format != "json" {
		displayWelcomeBanner(app.version)
		go version.CheckLatestVersion(app.version)
	}

	ctx := context.Background()
	return app.reportUseCase.RunReport(ctx, cliArgs)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}
