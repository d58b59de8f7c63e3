// File: app/app.go
package app

import (
	"context"
	"flag"
	"io"
	"os"

	"go-ledger/config"
	"go-ledger/db"
	"go-ledger/handler"
	"go-ledger/logger"
	"go-ledger/repository"
	"go-ledger/router"
	"go-ledger/service"

	"github.com/google/subcommands"
)

const appName = "ledger"

// App holds the wired layers for one invocation.
type App struct {
	Service   *service.LedgerService
	Commander *subcommands.Commander
}

// New wires service, handler and router over repo. Command output goes to out.
func New(repo repository.ILedgerRepository, flags *flag.FlagSet, out io.Writer) *App {
	ledgerService := service.NewLedgerService(repo)
	accountHandler := handler.NewAccountHandler(ledgerService, out)

	cdr := router.NewRouter(accountHandler, flags, appName)
	cdr.Output = out
	return &App{Service: ledgerService, Commander: cdr}
}

func Run() int {
	return Execute(context.Background(), os.Args[1:], os.Stdout)
}

// Execute parses args, loads configuration, opens the configured store and
// runs one command. The result is a process exit code.
func Execute(ctx context.Context, args []string, out io.Writer) int {
	logger.Init()

	flags := flag.NewFlagSet(appName, flag.ContinueOnError)
	configPath := flags.String("config", ".", "Directory containing config.yml.")
	if err := flags.Parse(args); err != nil {
		return int(subcommands.ExitUsageError)
	}

	if err := config.LoadConfig(*configPath); err != nil {
		logger.Log.WithError(err).Error("Configuration could not be loaded")
		return int(subcommands.ExitFailure)
	}
	if err := logger.SetLevel(config.AppConfig.Log.Level); err != nil {
		logger.Log.WithError(err).Warn("Unknown log level, keeping info")
	}
	logger.Log.WithField("backend", config.AppConfig.Store.Backend).Debug("Configuration loaded successfully")

	repo, closeStore, err := openRepository()
	if err != nil {
		logger.Log.WithError(err).Error("Ledger store could not be opened")
		return int(subcommands.ExitFailure)
	}
	defer closeStore()

	a := New(repo, flags, out)
	return int(a.Commander.Execute(ctx))
}

// openRepository picks the store named by store.backend. The returned func
// releases any connection it opened.
func openRepository() (repository.ILedgerRepository, func(), error) {
	cfg := config.AppConfig

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		database, err := db.Connect()
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(database); err != nil {
			database.Close()
			return nil, nil, err
		}
		return repository.NewPostgresLedgerRepository(database), func() { database.Close() }, nil

	case config.BackendRedis:
		client, err := db.ConnectRedis()
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisLedgerRepository(client, cfg.Redis.Key), func() { client.Close() }, nil

	default:
		return repository.NewFileLedgerRepository(cfg.Store.Path), func() {}, nil
	}
}
