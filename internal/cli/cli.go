// Package cli implements the seqviz command-line interface.
//
// This package provides commands for rendering sequence logos,
// co-evolution logos, secondary-structure cartoons, and position coupling
// graphs, plus a local preview server. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - logo: Render a sequence or co-evolution logo from an alignment
//   - structure: Render a secondary-structure cartoon from DSSP labels
//   - pairs: Render a coupling graph of co-evolving positions
//   - serve: Run a local preview server with render caching
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// live on the CLI struct and in context.Context for structured progress
// tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/seqviz/seqviz/pkg/buildinfo"
	"github.com/seqviz/seqviz/pkg/cache"
)

const (
	// appName is the application name used for directories and display.
	appName = "seqviz"

	// defaultFormat is the output format used when --format is empty.
	defaultFormat = "svg"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "seqviz",
		Short:        "Seqviz renders sequence logos and structure cartoons",
		Long:         `Seqviz is a layout engine for biological sequence visualizations: frequency logos over alignments, co-evolution logos over position pairs, and secondary-structure cartoons, rendered to SVG, PNG, PDF, or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.logoCommand())
	root.AddCommand(c.structureCommand())
	root.AddCommand(c.pairsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache builds the render cache: a file cache under the XDG cache
// directory, falling back to no caching when the directory is unavailable.
func newCache() (cache.Cache, error) {
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/seqviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{defaultFormat}
	}
	return strings.Split(s, ",")
}
