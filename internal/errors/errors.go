// Package errors combines stdlib errors with pkg/errors stacks and adds helpers
// for reporting where a failure started.
package errors

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"runtime"

	pkgerrors "github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// stackHelpers are the functions whose own frame tops every stack recorded through them.
//
//nolint:gochecknoglobals
var stackHelpers = map[string]struct{}{
	funcName(WithStack): {},
	funcName(Wrap):      {},
	funcName(Wrapf):     {},
	funcName(Errorf):    {},
}

func funcName(fn any) string {
	return runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
}

func isStackHelper(frame pkgerrors.Frame) bool {
	fn := runtime.FuncForPC(uintptr(frame) - 1)
	if fn == nil {
		return false
	}
	_, ok := stackHelpers[fn.Name()]

	return ok
}

// New returns an error that formats as the given text.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// AsType finds the first error in err's tree assignable to T.
func AsType[T error](err error) (T, bool) {
	var target T
	if stderrors.As(err, &target) {
		return target, true
	}

	return target, false
}

// Wrap returns an error annotating err with a stack trace and the supplied message.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf returns an error annotating err with a stack trace and the format specifier.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack annotates err with a stack trace at the point WithStack was called.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Errorf formats according to a format specifier and returns an error with a stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

// deepestStack walks the wrap chain and returns the stack recorded closest to the root cause.
func deepestStack(err error) pkgerrors.StackTrace {
	var deepest pkgerrors.StackTrace
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			deepest = st.StackTrace()
		}
	}

	return deepest
}

// Origin returns "function file:line" of the first frame outside this package's
// stack-recording helpers, or an empty string when no stack was recorded.
func Origin(err error) string {
	for _, frame := range deepestStack(err) {
		if isStackHelper(frame) {
			continue
		}

		return fmt.Sprintf("%n %s:%d", frame, frame, frame)
	}

	return ""
}

// StackTrace formats the deepest recorded stack of err, one frame per line.
func StackTrace(err error) string {
	stack := deepestStack(err)
	if len(stack) == 0 {
		return ""
	}

	return fmt.Sprintf("%+v", stack)
}
