package dig

import (
	"errors"
	"fmt"
)

// ErrInvocation is the class of errors caused by malformed arguments to the
// resolver. Traversal misses never produce an error.
var ErrInvocation = errors.New("invalid invocation")

var (
	// ErrEmptySeparator is returned when a string path is split on "".
	ErrEmptySeparator = fmt.Errorf("%w: separator must not be empty", ErrInvocation)

	// ErrUnsupportedPath is returned when a path argument is neither a string
	// nor a key sequence.
	ErrUnsupportedPath = fmt.Errorf("%w: unsupported path type", ErrInvocation)
)

func unsupportedPath(path any) error {
	return fmt.Errorf("%w %T", ErrUnsupportedPath, path)
}
