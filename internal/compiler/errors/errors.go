package errors

import "fmt"

// Kind is the reporting subcategory of a parse failure.
type Kind string

const (
	Lexical    Kind = "lexical"
	Structural Kind = "structural"
	Contextual Kind = "contextual"
)

// CompileError is the single error kind the front end produces.
// The first failure aborts the parse; there are no warnings at this layer.
type CompileError struct {
	File    string
	Line    int
	Kind    Kind
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s(%d): %s", e.File, e.Line, e.Message)
}

// Throw aborts the current parse. The panic is recovered by Guard at the
// public entry points; any other panic value passes through.
func Throw(file string, line int, kind Kind, format string, args ...any) {
	panic(&CompileError{File: file, Line: line, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Guard runs fn and converts a CompileError abort into a returned error.
func Guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*CompileError)
			if !ok {
				panic(r)
			}
			err = ce
		}
	}()
	fn()
	return nil
}
