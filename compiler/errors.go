package compiler

import (
	"github.com/hashicorp/go-multierror"
)

// CompileError wraps every distinct error surfaced during one Compile call.
// A statement-level panic-mode recovery contributes at most one error here;
// the multierror lets the CLI print every distinct failure from one source
// rather than only the first.
type CompileError struct {
	Errors *multierror.Error
}

func (e *CompileError) Error() string {
	return e.Errors.Error()
}
