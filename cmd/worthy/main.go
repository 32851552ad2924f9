package main

import (
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/worthy/internal/cli"
	"github.com/julianstephens/worthy/internal/config"
	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/errors"
	"github.com/julianstephens/worthy/internal/lock"
	"github.com/julianstephens/worthy/internal/logger"
	"github.com/julianstephens/worthy/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Journal file. A .json extension selects the JSON engine." placeholder:"PATH"`
	Engine  string `help:"Storage engine (sqlite or json). Inferred from --data when empty."`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Create the journal if needed and show where it lives."`
	Browse   cli.BrowseCmd   `cmd:"" help:"Browse entries interactively." default:"1"`
	Write    cli.WriteCmd    `cmd:"" help:"Record a new entry."`
	List     cli.ListCmd     `cmd:"" help:"List entries, newest first."`
	Show     cli.ShowCmd     `cmd:"" help:"Show one entry."`
	Favorite cli.FavoriteCmd `cmd:"" help:"Toggle the favorite mark on an entry."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete an entry."`
	Stats    cli.StatsCmd    `cmd:"" help:"Summarize moods and words."`
	Export   cli.ExportCmd   `cmd:"" help:"Export the journal to a JSON document."`
	Import   cli.ImportCmd   `cmd:"" help:"Merge an exported JSON document into the journal."`
	Remind   cli.RemindCmd   `cmd:"" help:"Print the writing reminder when it is due."`
	Backup   struct {
		List    cli.BackupListCmd    `cmd:"" help:"List backup files." default:"1"`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup file."`
	} `cmd:"" help:"Manage backup files."`
	Settings struct {
		Show cli.SettingsShowCmd `cmd:"" help:"Show settings." default:"1"`
		Set  cli.SettingsSetCmd  `cmd:"" help:"Change settings."`
	} `cmd:"" help:"View or change settings."`
	Tag struct {
		List cli.TagListCmd `cmd:"" help:"List default and custom tags." default:"1"`
		Add  cli.TagAddCmd  `cmd:"" help:"Add a custom tag."`
	} `cmd:"" help:"Manage tags."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A journal for the evidence that you are worthy."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(config.YAML, config.ConfigPaths()...),
		kong.Vars{"version": constants.Version},
	)

	if err := run(ctx); err != nil {
		errors.Fatal(err)
	}
}

func run(ctx *kong.Context) error {
	dataPath, err := config.ResolveDataPath(CLI.Data)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: filepath.Dir(dataPath)}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	l, err := lock.Acquire(dataPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "path", l.Path(), "error", err)
		}
	}()

	store, err := storage.New(CLI.Engine, dataPath)
	if err != nil {
		return err
	}
	if err := store.Open(); err != nil {
		return err
	}
	defer store.Close()

	logger.Debug("Running command", "command", ctx.Command(), "data", dataPath, "engine", store.Engine())
	return ctx.Run(cli.NewContext(store))
}
