// Package app wires the stores, services and shell of the application.
package app

import (
	"io"
	"log/slog"

	"github.com/JuanS3/INTER-seguridad-taller3/internal/config"
	"github.com/JuanS3/INTER-seguridad-taller3/internal/service"
	"github.com/JuanS3/INTER-seguridad-taller3/internal/shell"
	"github.com/JuanS3/INTER-seguridad-taller3/internal/store"
)

type Dependencies struct {
	Inventory service.InventoryService
	Reports   service.ReportService
	Logger    *slog.Logger
}

// SetupDependencies builds the services on top of the JSON file stores named in cfg.
// Unreadable data files are reported on out.
func SetupDependencies(cfg config.StorageConfig, logger *slog.Logger, out io.Writer) *Dependencies {
	products := store.NewProductFileStore(cfg.Products, logger)
	sales := store.NewSaleFileStore(cfg.Sales, logger)
	onMalformed := service.WithMalformedDataHandler(shell.MalformedDataReporter(out))

	return &Dependencies{
		Inventory: service.NewInventory(products, sales, logger, onMalformed),
		Reports:   service.NewReports(sales, logger, onMalformed),
		Logger:    logger,
	}
}

// SetupShell creates the interactive menu reading from in and writing to out.
// Used by E2E tests to drive the application with scripted input.
func SetupShell(deps *Dependencies, cfg config.ShellConfig, in shell.LineReader, out io.Writer) *shell.Shell {
	return shell.New(deps.Inventory, deps.Reports, in, out, deps.Logger, shell.WithPrompt(cfg.Prompt))
}
