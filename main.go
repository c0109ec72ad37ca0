package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/outline-engine/internal/app"
	"github.com/pstuifzand/outline-engine/internal/config"
	"github.com/pstuifzand/outline-engine/internal/logger"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	debug      bool
	socketDir  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "outliner [file]",
		Short: "Terminal outline editor",
		Long: `outliner edits an outline: a list of lines, each with an indent level.
Documents are stored as JSON snapshots. Other files are imported on open
and can be exported with :export.

Commands that work on files:
  outliner search <file> <query>         Print matches
  outliner replace <file> <query> <with> Replace every match
  outliner import <src> <dest.json>      Convert markdown or text to JSON
  outliner export <src.json> <dest>      Convert JSON to markdown or text

Commands that talk to a running editor:
  outliner snapshot [--apply file]       Print or replace its document
  outliner append <text>                 Append a line`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runEditor,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/outline-engine/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging and status info")
	rootCmd.PersistentFlags().StringVar(&socketDir, "socket-dir", "", "directory for the control socket")

	rootCmd.AddCommand(
		newSearchCmd(),
		newReplaceCmd(),
		newImportCmd(),
		newExportCmd(),
		newSnapshotCmd(),
		newAppendCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func openLogger(cfg *config.Config) (*logger.Logger, error) {
	level := cfg.SlogLevel()
	if debug {
		level = slog.LevelDebug
	}
	path, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	return logger.New(level, path)
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := openLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer log.Close()

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	application, err := app.New(app.Options{
		FilePath:  filePath,
		Config:    cfg,
		Logger:    log,
		SocketDir: socketDir,
	})
	if err != nil {
		return err
	}
	application.SetDebugMode(debug)

	if err := application.Run(); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}
