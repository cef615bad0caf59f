// Package dig resolves values nested inside arbitrary object graphs by
// following a delimited path string or an explicit sequence of keys. Any step
// that cannot be resolved produces a fallback value instead of an error.
package dig

import (
	"github.com/go-logr/logr"
)

// DefaultSeparator splits string paths when no separator is configured.
const DefaultSeparator = "."

type options struct {
	separator string
	fallback  any
	keys      []any
	log       logr.Logger
}

// Option configures a Resolver or a single resolution call.
type Option func(*options)

// WithSeparator sets the delimiter used to split string paths.
func WithSeparator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// WithFallback sets the value returned when a step cannot be resolved.
func WithFallback(v any) Option {
	return func(o *options) {
		o.fallback = v
	}
}

// WithKeys supplies an explicit key sequence. When non-empty it is used
// instead of any path argument.
func WithKeys(keys ...any) Option {
	return func(o *options) {
		o.keys = keys
	}
}

// WithLogger enables per-step debug logging at V(1).
func WithLogger(log logr.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

func newOptions(base *options, opts []Option) options {
	o := options{separator: DefaultSeparator, log: logr.Discard()}
	if base != nil {
		o = *base
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Resolver holds resolution settings. It is safe for concurrent use.
type Resolver struct {
	opts options
}

// New returns a Resolver configured with opts.
func New(opts ...Option) *Resolver {
	return &Resolver{opts: newOptions(nil, opts)}
}

// Step records how one key was resolved.
type Step struct {
	Key    Key
	Access Access
}

// Outcome is the detailed result of a resolution.
type Outcome struct {
	// Value is the resolved value, or the fallback when Found is false.
	Value any
	Found bool
	Steps []Step
	// FailedAt is the index of the key that missed, or -1.
	FailedAt  int
	FailedKey Key
}

// Path resolves a delimited path string. Strings are leaves: a position
// key never indexes into a string value.
func (r *Resolver) Path(root any, path string, opts ...Option) (any, error) {
	return r.Resolve(root, path, opts...)
}

// Keys resolves an explicit key sequence. Sequence mode has no invocation
// errors.
func (r *Resolver) Keys(root any, keys []any, opts ...Option) any {
	o := newOptions(&r.opts, opts)
	return walk(root, KeysOf(keys...), o).Value
}

// Resolve resolves path against root. path may be nil, a string, a Key, or a
// []Key, []string or []any sequence. Keys supplied with WithKeys win.
func (r *Resolver) Resolve(root any, path any, opts ...Option) (any, error) {
	out, err := r.Trace(root, path, opts...)
	if err != nil {
		return nil, err
	}
	return out.Value, nil
}

// Trace resolves like Resolve and reports each step. A miss is not an error.
func (r *Resolver) Trace(root any, path any, opts ...Option) (Outcome, error) {
	o := newOptions(&r.opts, opts)
	keys, err := pathKeys(path, o)
	if err != nil {
		return Outcome{FailedAt: -1}, err
	}
	return walk(root, keys, o), nil
}

func pathKeys(path any, o options) ([]Key, error) {
	if len(o.keys) > 0 {
		return KeysOf(o.keys...), nil
	}
	switch p := path.(type) {
	case nil:
		return nil, nil
	case string:
		return Split(p, o.separator)
	case Key:
		return []Key{p}, nil
	case []Key:
		keys := make([]Key, len(p))
		for i, k := range p {
			if k == nil {
				k = OpaqueKey{}
			}
			keys[i] = k
		}
		return keys, nil
	case []string:
		keys := make([]Key, len(p))
		for i, s := range p {
			keys[i] = Label(s)
		}
		return keys, nil
	case []any:
		return KeysOf(p...), nil
	}
	return nil, unsupportedPath(path)
}

func walk(root any, keys []Key, o options) Outcome {
	out := Outcome{Value: root, Found: true, FailedAt: -1}
	if len(keys) == 0 {
		return out
	}
	log := o.log.V(1)
	cur := root
	out.Steps = make([]Step, 0, len(keys))
	for i, key := range keys {
		next, access, ok := step(cur, key)
		if !ok {
			log.Info("path step missed", "index", i, "key", key.String(), "nodeType", typeName(cur))
			return Outcome{
				Value:     o.fallback,
				Steps:     out.Steps,
				FailedAt:  i,
				FailedKey: key,
			}
		}
		log.Info("path step resolved", "index", i, "key", key.String(), "access", string(access))
		out.Steps = append(out.Steps, Step{Key: key, Access: access})
		cur = next
	}
	out.Value = cur
	return out
}
