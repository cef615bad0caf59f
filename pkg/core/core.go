// Package core bundles loading, path resolution and rendering behind one
// Engine for embedding hosts.
package core

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/diggity/internal/formatter"
	"github.com/oakwood-commons/diggity/pkg/dig"
	"github.com/oakwood-commons/diggity/pkg/loader"
)

// Output selects a rendering format.
type Output = formatter.Output

// Output formats accepted by Engine.Render.
const (
	OutputAuto = formatter.OutputAuto
	OutputYAML = formatter.OutputYAML
	OutputJSON = formatter.OutputJSON
	OutputTOML = formatter.OutputTOML
	OutputRaw  = formatter.OutputRaw
	OutputGo   = formatter.OutputGo
)

// RenderOptions tune rendering.
type RenderOptions = formatter.Options

// YAMLOptions tune YAML rendering.
type YAMLOptions = formatter.YAMLFormatOptions

// Formatter defines rendering behavior.
type Formatter interface {
	Render(v any, out Output, opts RenderOptions) (string, error)
}

// Request describes one resolution. Keys, when non-empty, win over Path. An
// empty Separator means the engine separator. Fallback is only applied when
// HasFallback is set, so a navigator's own fallback is otherwise kept.
type Request struct {
	Path        string
	Keys        []any
	Separator   string
	Fallback    any
	HasFallback bool
}

// Engine provides a minimal shared API for loading, resolving and rendering data.
type Engine struct {
	Navigator     dig.Navigator
	Formatter     Formatter
	RenderOptions RenderOptions
	Logger        logr.Logger
	// Separator splits paths of requests without their own separator. New
	// sets it to dig.DefaultSeparator; an empty value is an invocation error.
	Separator string
}

// Option configures the Engine.
type Option func(*Engine)

// WithNavigator sets a custom navigator.
func WithNavigator(n dig.Navigator) Option {
	return func(e *Engine) {
		e.Navigator = n
	}
}

// WithFormatter sets a custom formatter.
func WithFormatter(f Formatter) Option {
	return func(e *Engine) {
		e.Formatter = f
	}
}

// WithRenderOptions sets the options passed to the formatter.
func WithRenderOptions(opts RenderOptions) Option {
	return func(e *Engine) {
		e.RenderOptions = opts
	}
}

// WithSeparator sets the engine separator.
func WithSeparator(sep string) Option {
	return func(e *Engine) {
		e.Separator = sep
	}
}

// WithLogger sets the logger handed to the navigator for step diagnostics.
func WithLogger(log logr.Logger) Option {
	return func(e *Engine) {
		e.Logger = log
	}
}

// New creates an Engine. The navigator defaults to dig.Default() at the time
// of the call.
func New(opts ...Option) *Engine {
	engine := &Engine{Logger: logr.Discard(), Separator: dig.DefaultSeparator}
	for _, opt := range opts {
		opt(engine)
	}
	engine.ensureNavigator()
	engine.ensureFormatter()
	return engine
}

// LoadRoot parses input into a single root node; multi-doc inputs return a slice.
func LoadRoot(input string) (any, error) {
	return loader.LoadRoot(input)
}

// LoadFile reads a file and parses it into a single root node.
func LoadFile(path string) (any, error) {
	return loader.LoadFile(path)
}

// Resolve resolves req against root.
func (e *Engine) Resolve(root any, req Request) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("engine is not configured")
	}
	e.ensureNavigator()
	path, opts := e.request(req)
	return e.Navigator.Resolve(root, path, opts...)
}

// Trace resolves req against root and reports every step taken.
func (e *Engine) Trace(root any, req Request) (dig.Outcome, error) {
	if e == nil {
		return dig.Outcome{}, fmt.Errorf("engine is not configured")
	}
	e.ensureNavigator()
	path, opts := e.request(req)
	return e.Navigator.Trace(root, path, opts...)
}

// Render formats v with the engine formatter.
func (e *Engine) Render(v any, out Output) (string, error) {
	if e == nil {
		return "", fmt.Errorf("engine is not configured")
	}
	e.ensureFormatter()
	return e.Formatter.Render(v, out, e.RenderOptions)
}

func (e *Engine) request(req Request) (any, []dig.Option) {
	sep := req.Separator
	if sep == "" {
		sep = e.Separator
	}
	opts := []dig.Option{dig.WithSeparator(sep), dig.WithLogger(e.Logger)}
	if req.HasFallback {
		opts = append(opts, dig.WithFallback(req.Fallback))
	}
	if len(req.Keys) > 0 {
		return req.Keys, opts
	}
	return req.Path, opts
}

type defaultFormatter struct{}

func (defaultFormatter) Render(v any, out Output, opts RenderOptions) (string, error) {
	return formatter.Render(v, out, opts)
}

func (e *Engine) ensureNavigator() {
	if e.Navigator == nil {
		e.Navigator = dig.Default()
	}
}

func (e *Engine) ensureFormatter() {
	if e.Formatter == nil {
		e.Formatter = defaultFormatter{}
	}
}
