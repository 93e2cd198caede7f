package commands

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/rf24docs/internal/config"
	"git.home.luguber.info/inful/rf24docs/internal/style"
)

// DefaultConfigFile is used when -c is not given.
const DefaultConfigFile = "rf24docs.yaml"

// Global is shared state handed to every command.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: ./rf24docs.yaml)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init      InitCmd      `cmd:"" help:"Write the default configuration file"`
	Check     CheckCmd     `cmd:"" help:"Load and validate the configuration and print a summary"`
	Styles    StylesCmd    `cmd:"" help:"List the registered highlighting styles"`
	Highlight HighlightCmd `cmd:"" help:"Highlight a source file or snippet with a registered style"`
	Build     BuildCmd     `cmd:"" help:"Build documentation in one output format"`
	Inventory InventoryCmd `cmd:"" help:"Load the object inventories of the cross-reference targets"`
	Preview   PreviewCmd   `cmd:"" help:"Serve the HTML build and rebuild on changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(c.Logger())
	return nil
}

// Logger builds the process logger. RF24DOCS_LOG_LEVEL overrides the level
// chosen by -v.
func (c *CLI) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
}

func parseLogLevel(verbose bool) slog.Level {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	switch strings.ToLower(os.Getenv(config.EnvLogLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return level
}

// ConfigPath is the -c value, or the default file in the working directory.
func (c *CLI) ConfigPath() string {
	if c.Config == "" {
		return DefaultConfigFile
	}
	return c.Config
}

// LoadConfig reads the configuration file. An empty path selects
// DefaultConfigFile in the working directory, and only that file may be
// missing, in which case the built-in configuration is used.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); os.IsNotExist(err) {
			slog.Debug("No configuration file; using built-in defaults", "path", DefaultConfigFile)
			return config.Parse(nil)
		}
		path = DefaultConfigFile
	}
	return config.Load(path)
}

// loadWithStyles loads the configuration and its style registry.
func loadWithStyles(path string) (*config.Config, *style.Registry, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	reg, err := cfg.StyleRegistry()
	if err != nil {
		return nil, nil, err
	}
	return cfg, reg, nil
}

// baseDir is the directory relative paths in the configuration refer to.
func baseDir(configPath string) string {
	return filepath.Dir(configPath)
}
