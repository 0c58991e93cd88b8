// Package main provides the CLI entrypoint for tuiboy.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuiboy/internal/config"
	"github.com/verte-zerg/tuiboy/internal/logging"
	"github.com/verte-zerg/tuiboy/internal/menu"
	"github.com/verte-zerg/tuiboy/internal/model"
	"github.com/verte-zerg/tuiboy/internal/stats"
	"github.com/verte-zerg/tuiboy/internal/tui"
)

const (
	defaultRows   = 8
	defaultCols   = 8
	defaultMines  = 10
	defaultTickMs = 100
	maxSide       = 99
)

const smallScreenHint = "Your screen resolution might be too small to render all game elements. Please try running in fullscreen."

var (
	boardRows  int
	boardCols  int
	boardMines int
	boardSeed  int64
	uiTickMs   int
	uiASCII    bool

	logLevel string
	logFile  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuiboy",
		Short:         "Terminal mini-games",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runMenuCmd,
	}
	addBoardFlags(rootCmd)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file (default: no logs)")

	rootCmd.AddCommand(newMinesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&boardRows, "rows", defaultRows, "board rows")
	cmd.Flags().IntVar(&boardCols, "cols", defaultCols, "board columns")
	cmd.Flags().IntVar(&boardMines, "mines", defaultMines, "number of mines")
	cmd.Flags().Int64Var(&boardSeed, "seed", 0, "seed for reproducible layouts (0: random)")
	cmd.Flags().IntVar(&uiTickMs, "tick-ms", defaultTickMs, "clock tick interval in milliseconds")
	cmd.Flags().BoolVar(&uiASCII, "ascii", false, "use ASCII symbols instead of unicode glyphs")
}

func newMinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mines",
		Short: "Play minesweeper without the menu",
		Args:  cobra.NoArgs,
		RunE:  runMinesCmd,
	}
	addBoardFlags(cmd)
	return cmd
}

func runMenuCmd(cmd *cobra.Command, _ []string) error {
	return runProgram(cmd, func(cfg model.Config, log *logrus.Logger) (tea.Model, error) {
		return menu.NewModel(cfg, log, stats.NewTally()), nil
	})
}

func runMinesCmd(cmd *cobra.Command, _ []string) error {
	return runProgram(cmd, func(cfg model.Config, log *logrus.Logger) (tea.Model, error) {
		return tui.NewModel(cfg, log, stats.NewTally(), nil)
	})
}

func runProgram(cmd *cobra.Command, build func(model.Config, *logrus.Logger) (tea.Model, error)) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := preflight(cfg); err != nil {
		return err
	}

	log, closeLog, err := logging.New(logLevel, logFile)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	m, err := build(cfg, log)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"rows":    cfg.Rows,
		"cols":    cfg.Cols,
		"mines":   cfg.Mines,
	}).Info("starting")
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "rows", &boardRows, fileCfg.Minesweeper.Rows)
	applyIntConfig(cmd, "cols", &boardCols, fileCfg.Minesweeper.Cols)
	applyIntConfig(cmd, "mines", &boardMines, fileCfg.Minesweeper.Mines)
	applyInt64Config(cmd, "seed", &boardSeed, fileCfg.Minesweeper.Seed)
	applyIntConfig(cmd, "tick-ms", &uiTickMs, fileCfg.UI.TickMs)
	applyBoolConfig(cmd, "ascii", &uiASCII, fileCfg.UI.ASCII)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	cfg := model.Config{
		Rows:         boardRows,
		Cols:         boardCols,
		Mines:        boardMines,
		Seed:         boardSeed,
		TickInterval: time.Duration(uiTickMs) * time.Millisecond,
		ASCII:        uiASCII,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// preflight refuses to start when stdout is a terminal too small for the board.
func preflight(cfg model.Config) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("failed to read terminal size: %w", err)
	}
	return checkSize(cfg, width, height)
}

func checkSize(cfg model.Config, width, height int) error {
	needW, needH := tui.MinSize(cfg)
	if width < needW || height < needH {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d\n%s", width, height, needW, needH, smallScreenHint)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuiboy configuration
# Uncomment a value to enable it. CLI flags override config values.

[minesweeper]
# rows = %d               # Board rows
# cols = %d               # Board columns
# mines = %d             # Number of mines
# seed = 0                # Seed for reproducible layouts (0: random)

[ui]
# tick-ms = %d           # Clock tick interval in milliseconds
# ascii = false           # Use ASCII symbols instead of unicode glyphs

[log]
# level = %q          # trace, debug, info, warn, error
# file = %q
`,
		defaultRows,
		defaultCols,
		defaultMines,
		defaultTickMs,
		logging.DefaultLevel,
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Rows <= 0 || cfg.Rows > maxSide {
		return fmt.Errorf("--rows must be between 1 and %d", maxSide)
	}
	if cfg.Cols <= 0 || cfg.Cols > maxSide {
		return fmt.Errorf("--cols must be between 1 and %d", maxSide)
	}
	if cfg.Mines <= 0 || cfg.Mines >= cfg.Rows*cfg.Cols {
		return fmt.Errorf("--mines must be between 1 and %d", cfg.Rows*cfg.Cols-1)
	}
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("--tick-ms must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
