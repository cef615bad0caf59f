package dig

import (
	"fmt"
	"sync/atomic"
)

// Navigator is the interface for path resolution used by host layers.
type Navigator interface {
	Resolve(root any, path any, opts ...Option) (any, error)
	Trace(root any, path any, opts ...Option) (Outcome, error)
}

var defaultNavigator atomic.Value // Navigator

func init() { //nolint:gochecknoinits // seed the package default
	defaultNavigator.Store(navigatorBox{New()})
}

// navigatorBox keeps the stored concrete type stable for atomic.Value.
type navigatorBox struct {
	Navigator
}

// SetDefault overrides the navigator used by the package-level functions.
// A nil navigator is ignored.
func SetDefault(n Navigator) {
	if n != nil {
		defaultNavigator.Store(navigatorBox{n})
	}
}

// Default returns the current package navigator.
func Default() Navigator {
	return defaultNavigator.Load().(navigatorBox).Navigator
}

// Resolve resolves path against root with the default navigator.
func Resolve(root any, path any, opts ...Option) (any, error) {
	return Default().Resolve(root, path, opts...)
}

// Path resolves a delimited path string with the default navigator.
// Strings are leaves and are not indexed by position.
func Path(root any, path string, opts ...Option) (any, error) {
	return Default().Resolve(root, path, opts...)
}

// Keys resolves an explicit key sequence with the default navigator. A
// custom navigator that rejects the sequence yields the fallback.
func Keys(root any, keys []any, opts ...Option) any {
	v, err := Default().Resolve(root, keys, opts...)
	if err != nil {
		return newOptions(nil, opts).fallback
	}
	return v
}

// Trace resolves with the default navigator and reports each step.
func Trace(root any, path any, opts ...Option) (Outcome, error) {
	return Default().Trace(root, path, opts...)
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
