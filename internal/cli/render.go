package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diaviz/pkg/errors"
	"github.com/matzehuels/diaviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path; empty writes to stdout
	format  string // svg, png, dot or json
	noCache bool   // bypass the render cache
}

// renderCommand creates the render command, which runs the DOT graph through
// the embedded Graphviz.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render <thrill-worker-log.json>",
		Short: "Render the DIA graph to SVG or PNG",
		Long: `Render the DIA graph of a Thrill worker log with the embedded Graphviz.

No dot binary is needed. SVG and PNG results are cached by the DOT text, so
re-rendering an unchanged log is immediate. --format dot and --format json
write the DOT text or the parsed node list instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png, dot, json")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdout, stderr io.Writer, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	styles, err := c.loadStyles()
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	runner := c.newRunner(opts.noCache)
	defer runner.Cache.Close()

	res, err := runner.Execute(ctx, pipeline.Options{
		Path:   path,
		Format: opts.format,
		Styles: styles,
	})
	if err != nil {
		return err
	}

	if opts.output == "" {
		if _, err := stdout.Write(res.Output); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write output")
		}
		prog.debug(fmt.Sprintf("Rendered %s", res.Format))
		return nil
	}

	if err := os.WriteFile(opts.output, res.Output, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
	}
	prog.done(fmt.Sprintf("Rendered %s", res.Format))
	printSuccess(stderr, "Wrote %s", res.Format)
	printFile(stderr, opts.output)
	printStats(stderr, res.Graph.Len(), res.Graph.EdgeCount(), res.CacheHit)
	return nil
}
