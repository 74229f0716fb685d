package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/platefit/platefit-cli/internal/api"
	"github.com/platefit/platefit-cli/internal/cli"
	"github.com/platefit/platefit-cli/internal/constants"
	"github.com/platefit/platefit-cli/internal/errors"
	"github.com/platefit/platefit-cli/internal/keyring"
	"github.com/platefit/platefit-cli/internal/ledger"
	"github.com/platefit/platefit-cli/internal/logger"
	"github.com/platefit/platefit-cli/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path (.json or .db)." type:"path" default:"~/.config/platefit/platefit.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize platefit storage."`
	Login  cli.LoginCmd  `cmd:"" help:"Store an API token for sync."`
	Logout cli.LogoutCmd `cmd:"" help:"Remove the stored API token."`
	Log    struct {
		Add    cli.LogAddCmd    `cmd:"" help:"Log a food entry." default:"1"`
		List   cli.LogListCmd   `cmd:"" help:"List a day's food entries."`
		Remove cli.LogRemoveCmd `cmd:"" help:"Remove a food entry."`
		Edit   cli.LogEditCmd   `cmd:"" help:"Edit a food entry."`
	} `cmd:"" help:"Manage logged food entries."`
	Day   cli.DayCmd `cmd:"" help:"Show a day's nutrition summary."`
	Goals struct {
		Show cli.GoalsShowCmd `cmd:"" help:"Show daily goals and remaining macros." default:"1"`
		Set  cli.GoalsSetCmd  `cmd:"" help:"Set daily nutrition goals."`
	} `cmd:"" help:"Manage daily nutrition goals."`
	User struct {
		Set   cli.UserSetCmd   `cmd:"" help:"Set or update the active user."`
		Show  cli.UserShowCmd  `cmd:"" help:"Show the active user." default:"1"`
		Clear cli.UserClearCmd `cmd:"" help:"Clear the active user, keeping history."`
	} `cmd:"" help:"Manage the active user."`
	Sync   cli.SyncCmd  `cmd:"" help:"Push unsynced days and pull remote changes."`
	Fetch  cli.FetchCmd `cmd:"" help:"Fetch a single day from the server."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Offline-first nutrition tracking companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Pick the storage backend from the store file extension
	var store storage.Provider
	if strings.EqualFold(filepath.Ext(CLI.Config), ".db") {
		store = storage.NewSQLiteStore(CLI.Config)
	} else {
		store = storage.NewJSONStore(CLI.Config)
	}

	// Load the store before running the command (Init command will handle its own loading)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	baseURL := os.Getenv("PLATEFIT_API_URL")
	if baseURL == "" {
		baseURL = constants.DefaultAPIBaseURL
	}

	led := ledger.New(ledger.Options{
		Store: store,
		API:   api.NewHTTPClient(baseURL),
	})

	appCtx := &cli.Context{
		Store:  store,
		Ledger: led,
		Token:  keyring.CurrentToken,
	}

	err := ctx.Run(appCtx)
	// Let in-flight persistence settle before the process exits
	led.Flush()
	if err != nil {
		errors.Fatal(err)
	}
}
