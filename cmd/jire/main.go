package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/akettner/jire/internal/cli"
	"github.com/akettner/jire/internal/config"
	"github.com/akettner/jire/internal/db"
	"github.com/akettner/jire/internal/repository"
	"github.com/akettner/jire/internal/service"
)

func main() {
	if err := run(); err != nil {
		switch {
		case errors.Is(err, config.ErrNotFound):
			fmt.Fprintf(os.Stderr, "Missing config file: please create %s\n", config.FileName)
		case errors.Is(err, config.ErrInvalid):
			fmt.Fprintf(os.Stderr, "Invalid config file: %v\n", err)
		case errors.Is(err, repository.ErrBusy):
			fmt.Fprintln(os.Stderr, "The ticket database is locked by another process; please re-run in a moment.")
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	logger := newLogger()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}

	cfgPath, err := config.FindPath(cwd)
	if err != nil {
		return err
	}
	logger.Debug().Str("path", cfgPath).Msg("config file found")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath, db.Options{BusyTimeoutMS: cfg.BusyTimeoutMS})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug().Str("db", cfg.DBPath).Msg("database ready")

	repo := repository.NewSQLiteTicketRepo(database, logger)
	svc := service.NewTicketService(repo, currentUser(), func() time.Time {
		return time.Now().UTC()
	})

	app := &cli.App{
		Tickets:        svc,
		DefaultProject: cfg.Project,
	}

	return cli.NewRootCmd(app).Execute()
}

// newLogger returns a debug logger on stderr when JIRE_DEBUG is set,
// otherwise a no-op logger.
func newLogger() zerolog.Logger {
	if os.Getenv("JIRE_DEBUG") == "" {
		return zerolog.Nop()
	}
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()),
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// currentUser resolves the caller identity: the JIRE_USER override
// first, then the OS account name.
func currentUser() string {
	if name := os.Getenv("JIRE_USER"); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}
