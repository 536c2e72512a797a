// Package cli implements the diaviz command-line interface.
//
// The root command is the converter itself:
//
//	diaviz worker-0.json > dia.dot
//
// Subcommands cover rendering through an embedded Graphviz (render),
// per-category summaries (stats), the render cache (cache) and shell
// completion. All diagnostics go to stderr through charmbracelet/log;
// stdout carries only the requested output.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/diaviz/pkg/buildinfo"
	"github.com/matzehuels/diaviz/pkg/cache"
	"github.com/matzehuels/diaviz/pkg/observability"
	"github.com/matzehuels/diaviz/pkg/pipeline"
	"github.com/matzehuels/diaviz/pkg/render/nodelink"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "diaviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	stylesPath string
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root command takes exactly one log file and writes its DOT graph to
// stdout. Any other argument count prints a usage line to stdout and
// succeeds without producing a graph.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName + " <thrill-worker-log.json>",
		Short: "diaviz turns Thrill worker logs into Graphviz DIA graphs",
		Long: `diaviz reads the JSON log written by a Thrill worker, collects the DIA
creation events and prints the dataflow graph as Graphviz DOT. Sources,
transforms, actions, caches and collapses are colored and shaped by category.

  diaviz worker-0.json | dot -Tsvg > dia.svg`,
		Version:       buildinfo.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			observability.SetPipelineHooks(&logHooks{logger: c.Logger})
			observability.SetCacheHooks(&logHooks{logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				printUsage(cmd.OutOrStdout(), cmd.Root().Name())
				return nil
			}
			return c.runDOT(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.stylesPath, "styles", "", "TOML file replacing the operator style table")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// printUsage writes the one-line usage message for a wrong argument count.
func printUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage: %s <thrill-worker-log.json>\n", name)
}

// runDOT writes the DOT graph for the log at path to w.
func (c *CLI) runDOT(ctx context.Context, w io.Writer, path string) error {
	styles, err := c.loadStyles()
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	res, err := pipeline.NewRunner(nil, c.Logger).Execute(ctx, pipeline.Options{
		Path:   path,
		Format: pipeline.FormatDOT,
		Styles: styles,
	})
	if err != nil {
		return err
	}

	if _, err := w.Write(res.Output); err != nil {
		return fmt.Errorf("write DOT: %w", err)
	}
	prog.debug(fmt.Sprintf("Converted %d DIA nodes, %d edges", res.Graph.Len(), res.Graph.EdgeCount()))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(noCache), c.Logger)
}

func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache()
	}
	return fc
}

// loadStyles returns the style table named by --styles, or nil for the
// built-in table.
func (c *CLI) loadStyles() (*nodelink.Styles, error) {
	if c.stylesPath == "" {
		return nil, nil
	}
	s, err := nodelink.LoadStyles(c.stylesPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded styles", "path", c.stylesPath, "categories", len(s.Categories))
	return s, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/diaviz/).
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
