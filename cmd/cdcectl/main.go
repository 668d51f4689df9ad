// cdcectl operates on the console's store directly: it exports and
// restores backups, renders list exports and reports, and reseeds the
// sample data. It reads the same environment as the API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/clock"
	"github.com/spec-kit/cdce-console/internal/config"
	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/events"
	"github.com/spec-kit/cdce-console/internal/gemini"
	"github.com/spec-kit/cdce-console/internal/observability"
	"github.com/spec-kit/cdce-console/internal/persistence"
	"github.com/spec-kit/cdce-console/internal/report"
	"github.com/spec-kit/cdce-console/internal/repository"
	"github.com/spec-kit/cdce-console/internal/service"
)

const usage = `usage: cdcectl <command> [flags]

commands:
  backup   [-o FILE]                        write a backup document
  restore  FILE                             replace all data from a backup
  export   history|inventory [--format pdf|word|email] [-q QUERY] [-o FILE]
  report   [--start YYYY-MM-DD --end YYYY-MM-DD] [--format text|pdf|word] [-o FILE]
  seed                                      reset to the sample data
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type command func(ctx context.Context, app *console, args []string, stdout io.Writer) error

var commands = map[string]command{
	"backup":  runBackup,
	"restore": runRestore,
	"export":  runExport,
	"report":  runReport,
	"seed":    runSeed,
}

// run dispatches a subcommand. Results go to stdout; flag help and usage
// errors go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fmt.Fprint(stdout, usage)
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}

	app, err := openConsole(ctx)
	if err != nil {
		return err
	}
	defer app.close()
	app.stderr = stderr
	return cmd(ctx, app, args[1:], stdout)
}

// console holds the services a command needs.
type console struct {
	cfg       *config.Config
	logger    *zap.Logger
	profile   domain.Profile
	store     persistence.SlotStore
	state     *service.State
	deps      service.Dependencies
	tickets   *service.TicketService
	inventory *service.InventoryService
	backup    *service.BackupService
	reports   *service.ReportService
	stderr    io.Writer
}

func openConsole(ctx context.Context) (*console, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewCLILogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	profile, err := config.LoadProfile(cfg.Institution.ProfilePath)
	if err != nil {
		return nil, err
	}
	store, err := persistence.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	state := service.NewState(ctx,
		repository.NewTicketRepository(store, logger),
		repository.NewInventoryRepository(store, logger),
		logger)
	deps := service.Dependencies{
		State:      state,
		Profile:    profile,
		Clock:      clock.Real(),
		Dispatcher: events.NewInMemoryDispatcher(logger),
		Logger:     logger,
	}

	var generator report.Generator
	if cfg.Report.APIKey != "" {
		client, err := gemini.NewClient(cfg.Report.APIKey,
			gemini.WithBaseURL(cfg.Report.BaseURL), gemini.WithModel(cfg.Report.Model))
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		generator = client
	}
	composer := report.NewComposer(generator, profile, cfg.Report.Timeout(), logger)

	return &console{
		cfg:       cfg,
		logger:    logger,
		profile:   profile,
		store:     store,
		state:     state,
		deps:      deps,
		tickets:   service.NewTicketService(deps),
		inventory: service.NewInventoryService(deps),
		backup:    service.NewBackupService(deps, nil),
		reports:   service.NewReportService(deps, composer, cfg.App.Location()),
	}, nil
}

func (c *console) close() {
	if err := c.store.Close(); err != nil {
		c.logger.Warn("close store", zap.Error(err))
	}
	_ = c.logger.Sync()
}

func (c *console) newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("cdcectl "+name, pflag.ContinueOnError)
	out := c.stderr
	if out == nil {
		out = io.Discard
	}
	fs.SetOutput(out)
	return fs
}

// writeOutput writes content to path, or to stdout when path is empty.
func writeOutput(path string, content []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(content)
		return err
	}
	return os.WriteFile(path, content, 0o644)
}
