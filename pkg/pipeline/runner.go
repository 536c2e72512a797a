package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diaviz/pkg/cache"
	"github.com/matzehuels/diaviz/pkg/dia"
	"github.com/matzehuels/diaviz/pkg/errors"
	diaio "github.com/matzehuels/diaviz/pkg/io"
	"github.com/matzehuels/diaviz/pkg/observability"
	"github.com/matzehuels/diaviz/pkg/render/nodelink"
)

// Runner executes the pipeline with render caching.
//
// The Runner holds no per-run state, so one Runner can serve several runs.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// uses log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute reads the log, builds DOT and produces the requested output.
// The log is read completely before any output is produced.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	res := &Result{Format: opts.Format}

	readStart := time.Now()
	g, st, err := r.Read(ctx, opts.Path)
	if err != nil {
		return nil, err
	}
	res.Graph, res.Stats = g, st
	res.ReadTime = time.Since(readStart)

	r.Logger.Debug("read log",
		"path", opts.Path,
		"lines", st.Lines,
		"nodes", g.Len(),
		"edges", g.EdgeCount(),
		"skipped", st.Skipped,
		"duration", res.ReadTime)
	if st.Overwritten > 0 {
		r.Logger.Debug("duplicate creation records replaced earlier nodes", "count", st.Overwritten)
	}
	if dangling := g.Dangling(); len(dangling) > 0 {
		r.Logger.Debug("edges reference undeclared nodes", "ids", dangling)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.DOT = nodelink.ToDOT(g, nodelink.Options{Styles: opts.Styles})

	renderStart := time.Now()
	out, hit, err := r.Render(ctx, g, res.DOT, opts.Format)
	if err != nil {
		return nil, err
	}
	res.Output, res.CacheHit = out, hit
	res.RenderTime = time.Since(renderStart)

	return res, nil
}

// Read parses the log at path and reports the read to the pipeline hooks.
func (r *Runner) Read(ctx context.Context, path string) (*dia.Graph, diaio.Stats, error) {
	hooks := observability.Pipeline()
	hooks.OnReadStart(ctx, path)
	start := time.Now()

	g, st, err := diaio.ImportLog(path)

	nodes, edges := 0, 0
	if g != nil {
		nodes, edges = g.Len(), g.EdgeCount()
	}
	hooks.OnReadComplete(ctx, path, nodes, edges, time.Since(start), err)
	return g, st, err
}

// Render produces format from the graph and its DOT text. SVG and PNG are
// served from the cache when possible; the second result reports a hit.
func (r *Runner) Render(ctx context.Context, g *dia.Graph, dot, format string) ([]byte, bool, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), false, nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := diaio.WriteJSON(g, &buf); err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "export JSON")
		}
		return buf.Bytes(), false, nil
	case FormatSVG, FormatPNG:
		return r.renderGraphviz(ctx, dot, format)
	default:
		return nil, false, ValidateFormat(format)
	}
}

func (r *Runner) renderGraphviz(ctx context.Context, dot, format string) ([]byte, bool, error) {
	key := cache.RenderKey(format, dot)
	if data, ok, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "error", err)
	} else if ok {
		if looksRendered(format, data) {
			r.Logger.Debug("render cache hit", "format", format)
			return data, true, nil
		}
		r.Logger.Debug("dropping unusable cache entry", "format", format, "bytes", len(data))
		if err := r.Cache.Delete(ctx, key); err != nil {
			r.Logger.Warn("cache delete failed", "error", err)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	var (
		out []byte
		err error
	)
	if format == FormatSVG {
		out, err = nodelink.RenderSVG(dot)
	} else {
		out, err = nodelink.RenderPNG(dot)
	}
	hooks.OnRenderComplete(ctx, format, len(out), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, out, DefaultRenderTTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	}
	return out, false, nil
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// looksRendered reports whether data plausibly holds format output.
func looksRendered(format string, data []byte) bool {
	if format == FormatPNG {
		return bytes.HasPrefix(data, pngMagic)
	}
	return bytes.Contains(data, []byte("<svg"))
}
