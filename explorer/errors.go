package explorer

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable    = errors.New("variable data is not loaded")
	ErrNotFound       = errors.New("not found")
	ErrClosed         = errors.New("tree is closed")
	ErrUnknownBackend = errors.New("unknown backend")
	ErrNotNumeric     = errors.New("variable is not numeric")
)

// OpenError reports a file that could not be opened. Nothing from the attempt is
// retained.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// SchemaError reports a group whose enumeration stopped early. It is stored on the
// group; the rest of the tree is unaffected.
type SchemaError struct {
	Group string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("group %s: %v", e.Group, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ReadError reports a variable whose data could not be loaded. The variable stays
// unloaded and the load may be retried.
type ReadError struct {
	Group    string
	Variable string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s in %s: %v", e.Variable, e.Group, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
