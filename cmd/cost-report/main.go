package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/diillson/anthropic-cost-report-go/internal/adapter/driven/anthropic"
	"github.com/diillson/anthropic-cost-report-go/internal/adapter/driven/config"
	"github.com/diillson/anthropic-cost-report-go/internal/adapter/driven/credentials"
	"github.com/diillson/anthropic-cost-report-go/internal/adapter/driven/export"
	"github.com/diillson/anthropic-cost-report-go/internal/adapter/driving/cli"
	"github.com/diillson/anthropic-cost-report-go/internal/application/usecase"
	"github.com/diillson/anthropic-cost-report-go/internal/domain/repository"
	"github.com/diillson/anthropic-cost-report-go/internal/shared/clock"
	"github.com/diillson/anthropic-cost-report-go/internal/shared/types"
	"github.com/diillson/anthropic-cost-report-go/pkg/console"
	"github.com/diillson/anthropic-cost-report-go/pkg/version"
)

// Exit codes distinguish the failure kinds for scripting.
const (
	exitOK         = 0
	exitFailure    = 1
	exitBadPeriod  = 2
	exitAuthError  = 3
	exitNetwork    = 4
	exitAPIFailure = 5
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	costFactory := func(baseURL string, timeout time.Duration) repository.CostRepository {
		return anthropic.NewCostRepositoryWithOptions(baseURL, timeout)
	}
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	credsRepo := credentials.NewCredentialsRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	reportUseCase := usecase.NewReportUseCase(
		costFactory,
		exportRepo,
		configRepo,
		credsRepo,
		consoleImpl,
		clock.RealClock{},
	)

	// Define o caso de uso no aplicativo CLI
	app.SetReportUseCase(reportUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to its taxonomy exit status.
func exitCode(err error) int {
	var apiErr *types.APIError
	switch {
	case errors.Is(err, types.ErrUnrecognizedPeriod), errors.Is(err, types.ErrInvalidRange):
		return exitBadPeriod
	case errors.Is(err, types.ErrMissingCredential), errors.Is(err, types.ErrInvalidCredential):
		return exitAuthError
	case errors.Is(err, types.ErrNetwork):
		return exitNetwork
	case errors.As(err, &apiErr):
		return exitAPIFailure
	default:
		return exitFailure
	}
}
