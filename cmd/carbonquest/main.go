package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/carbonquest/carbonquest/internal/cli"
	"github.com/carbonquest/carbonquest/internal/constants"
	apperrors "github.com/carbonquest/carbonquest/internal/errors"
	"github.com/carbonquest/carbonquest/internal/keyring"
	"github.com/carbonquest/carbonquest/internal/logger"
	"github.com/carbonquest/carbonquest/internal/models"
	"github.com/carbonquest/carbonquest/internal/notifier"
	"github.com/carbonquest/carbonquest/internal/progress"
	"github.com/carbonquest/carbonquest/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path or PostgreSQL connection string. Connection strings must NOT embed credentials; use CARBONQUEST_DB_CONNECTION, .pgpass, or the OS keyring." default:"~/.config/carbonquest/carbonquest.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init         cli.InitCmd         `cmd:"" help:"Initialize storage and seed starter habits."`
	Tui          cli.TuiCmd          `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Habit        cli.HabitCmd        `cmd:"" help:"Manage habits."`
	Achievements cli.AchievementsCmd `cmd:"" help:"Show achievements and progress."`
	Streak       cli.StreakCmd       `cmd:"" help:"Show the current daily streak."`
	History      cli.HistoryCmd      `cmd:"" help:"Show the achievement unlock history."`
	Today        cli.TodayCmd        `cmd:"" help:"Show today's habit checklist and totals."`
	Impact       cli.ImpactCmd       `cmd:"" help:"Compute the CO₂ impact of an activity quantity."`
	Doctor       cli.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	ConfigCmd    cli.ConfigCmd       `cmd:"" name:"config" help:"Manage application configuration."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Carbon-emission habit tracker: log green habits, build streaks, level achievements"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandHome(CLI.Config)
	if err := logger.Setup(filepath.Dir(configPath), CLI.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to set up logging: %v\n", err)
	}

	store, err := selectStore(configPath)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{Store: store}

	// init creates storage, config only touches the keyring, and doctor must
	// be able to diagnose a broken store, so none of them preload state.
	command := ctx.Command()
	if command != "init" && command != "doctor" && !strings.HasPrefix(command, "config") {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		snap, err := store.LoadSnapshot()
		if err != nil {
			apperrors.Fatal(err)
		}

		tracker := progress.New(snap, store)
		tracker.Subscribe(func(ev models.AchievementEvent) {
			// Best effort: the tray companion may not be running.
			if err := notifier.New().NotifyUnlock(ev); err != nil {
				logger.Debug("Unlock notification not delivered", "error", err)
			}
		})
		// Day-boundary check on every entry, the closest a CLI gets to an
		// app-foreground hook.
		tracker.CheckDailyRollover()
		appCtx.Tracker = tracker
	}

	err = ctx.Run(appCtx)
	store.Close()
	apperrors.Fatal(err)
}

// selectStore picks the provider. A postgres:// config value selects
// PostgreSQL directly; otherwise a connection string from the environment or
// the OS keyring takes precedence, then the config path selects the JSON or
// SQLite file store by extension.
func selectStore(config string) (storage.Provider, error) {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if storage.HasEmbeddedCredentials(config) {
			return nil, fmt.Errorf("connection strings with embedded credentials are not allowed; " +
				"use 'carbonquest config keyring set' or CARBONQUEST_DB_CONNECTION instead")
		}
		return storage.NewPostgresStore(config), nil
	}

	if env := os.Getenv("CARBONQUEST_DB_CONNECTION"); env != "" {
		return storage.NewPostgresStore(env), nil
	}
	if connStr, err := keyring.GetConnectionString(); err == nil {
		return storage.NewPostgresStore(connStr), nil
	}

	if strings.HasSuffix(config, ".json") {
		return storage.NewJSONStore(config), nil
	}
	return storage.NewSQLiteStore(config), nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
