// Package pipeline runs the read → DOT → render pipeline shared by every
// diaviz command.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Read: parse a Thrill worker log into a [dia.Graph]
//  2. DOT: describe the graph in Graphviz DOT with category styling
//  3. Render: produce the requested output (DOT, JSON, SVG or PNG)
//
// Rendering through Graphviz is the only costly stage, so SVG and PNG output
// is cached by a hash of the DOT text.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:   "worker-0.json",
//	    Format: pipeline.FormatSVG,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"time"

	"github.com/matzehuels/diaviz/pkg/dia"
	"github.com/matzehuels/diaviz/pkg/errors"
	diaio "github.com/matzehuels/diaviz/pkg/io"
	"github.com/matzehuels/diaviz/pkg/render/nodelink"
)

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// DefaultRenderTTL is how long rendered SVG/PNG output stays cached.
const DefaultRenderTTL = 7 * 24 * time.Hour

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatJSON: true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// ValidateFormat checks that format is supported. Matching is case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be dot, json, svg or png)", format)
	}
	return nil
}

// Options configures a pipeline run.
type Options struct {
	// Path is the Thrill worker log to read.
	Path string

	// Format selects the output. Empty means [FormatDOT].
	Format string

	// Styles overrides the built-in operator classification. Nil uses
	// [nodelink.DefaultStyles].
	Styles *nodelink.Styles
}

// ValidateAndSetDefaults fills in defaults and checks the options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "log path is required")
	}
	if o.Format == "" {
		o.Format = FormatDOT
	}
	if o.Styles == nil {
		o.Styles = nodelink.DefaultStyles()
	}
	return ValidateFormat(o.Format)
}

// Result is the outcome of [Runner.Execute].
type Result struct {
	Graph    *dia.Graph
	Stats    diaio.Stats
	DOT      string
	Format   string
	Output   []byte
	CacheHit bool

	ReadTime   time.Duration
	RenderTime time.Duration
}
