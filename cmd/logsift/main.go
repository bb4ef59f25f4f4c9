package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/TimelordUK/logsift/internal/config"
	"github.com/TimelordUK/logsift/internal/export"
	"github.com/TimelordUK/logsift/internal/filter"
	"github.com/TimelordUK/logsift/internal/logging"
	"github.com/TimelordUK/logsift/internal/session"
	"github.com/TimelordUK/logsift/internal/settings"
	"github.com/TimelordUK/logsift/internal/ui"
	"github.com/TimelordUK/logsift/pkg/logformat"
)

var (
	configPath   string
	settingsPath string
	logPath      string
	gotoLine     int
	andFilters   []string
	orFilters    []string
	ignoreCase   bool
	debug        bool

	exportOut     string
	exportNumbers bool
)

var rootCmd = &cobra.Command{
	Use:   "logsift [file]",
	Short: "A terminal viewer for filtering and searching log files",
	Long: `logsift opens plain, gzip, zstd, zip and tar log files and narrows them
down with AND/OR substring filters, colored highlights and search.

Usage:
  logsift app.log                       # Open a file
  logsift app.log.gz --and ERROR -i     # Only lines containing "error"
  logsift app.log --or timeout --or 503 # Lines containing either term
  logsift export app.log -o errors.txt --and ERROR`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, closeLog, err := setup()
		if err != nil {
			return err
		}
		defer closeLog()

		file := ""
		if len(args) > 0 {
			file = args[0]
		}

		model := ui.NewModel(ui.Options{
			Config:       cfg,
			Logger:       logger,
			SettingsPath: cfg.Paths.SettingsFile,
			File:         file,
			Line:         gotoLine,
			AndFilters:   andFilters,
			OrFilters:    orFilters,
			IgnoreCase:   ignoreCase,
		})

		p := tea.NewProgram(model, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Filter a file and write the displayed lines without opening the viewer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, closeLog, err := setup()
		if err != nil {
			return err
		}
		defer closeLog()

		info, err := runExport(exportRequest{
			Config:       cfg,
			Logger:       logger,
			SettingsPath: settingsPath,
			File:         args[0],
			Out:          exportOut,
			WithNumbers:  exportNumbers,
			AndFilters:   andFilters,
			OrFilters:    orFilters,
			IgnoreCase:   ignoreCase,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d lines to %s\n", info.Lines, info.Path)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the default config file if none exists and print its path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}
		path, err := config.ExpandPath(path)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.Save(config.DefaultConfig(), path); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/logsift/config.toml)")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Settings file holding filters, highlights and memo")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Write diagnostic logs to this file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().StringArrayVar(&andFilters, "and", nil, "AND filter term, repeatable")
	rootCmd.PersistentFlags().StringArrayVar(&orFilters, "or", nil, "OR filter term, repeatable")
	rootCmd.PersistentFlags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Match filter and search terms case-insensitively")
	rootCmd.Flags().IntVarP(&gotoLine, "line", "n", 0, "Open at this 1-based line number")

	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Destination file")
	exportCmd.Flags().BoolVar(&exportNumbers, "numbers", false, "Prefix lines with their original line numbers")
	_ = exportCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(exportCmd, configCmd)
}

// setup loads config and opens the log file. Flags override config values.
func setup() (*config.Config, *slog.Logger, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if settingsPath != "" {
		if cfg.Paths.SettingsFile, err = config.ExpandPath(settingsPath); err != nil {
			return nil, nil, nil, err
		}
	}
	if logPath != "" {
		if cfg.Paths.LogFile, err = config.ExpandPath(logPath); err != nil {
			return nil, nil, nil, err
		}
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger, closer, err := logging.Open(cfg.Paths.LogFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return cfg, logger, func() { _ = closer.Close() }, nil
}

type exportRequest struct {
	Config       *config.Config
	Logger       *slog.Logger
	SettingsPath string // empty skips saved rules
	File         string
	Out          string
	WithNumbers  bool
	AndFilters   []string
	OrFilters    []string
	IgnoreCase   bool
}

// runExport performs load, filter and export on a fresh session. A load
// failure is returned before anything is written.
func runExport(req exportRequest) (*export.Info, error) {
	detector := logformat.NewLevelDetector(&req.Config.LogLevels)
	s := session.New(session.Options{Logger: req.Logger, Detector: detector.Detect})

	if req.SettingsPath != "" {
		st, err := settings.Load(req.SettingsPath)
		if err != nil {
			return nil, err
		}
		s.ApplySettings(st)
	}

	add := func(list filter.List, terms []string) error {
		for _, term := range terms {
			cmd := session.FilterChanged{Op: session.OpAdd, List: list, Term: term, CaseInsensitive: req.IgnoreCase}
			if _, err := s.Dispatch(cmd); err != nil {
				return fmt.Errorf("%s filter %q: %w", list, term, err)
			}
		}
		return nil
	}
	if err := add(filter.ListAnd, req.AndFilters); err != nil {
		return nil, err
	}
	if err := add(filter.ListOr, req.OrFilters); err != nil {
		return nil, err
	}

	if _, err := s.Dispatch(session.LoadFile{Path: req.File}); err != nil {
		return nil, err
	}
	res, err := s.Dispatch(session.ExportRequested{Path: req.Out, WithNumbers: req.WithNumbers})
	if err != nil {
		return nil, err
	}
	return res.Export, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
