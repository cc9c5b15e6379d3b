// error.go: Rendering errors and their captured stack traces as text
//
// XLogger software is published under GPLv2 license
//
// Author : Siarhei Skavarodkin
// email  : komarevsky (at) gmail (dot) com

package xlogger

import (
	"fmt"
	"runtime"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// stackTracer is the trace contract of github.com/pkg/errors: errors created
// with errors.New / errors.Wrap / errors.WithStack carry the call stack
// captured at construction time.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// ErrorToString renders err as a multi-line string:
//
//	<ErrorType>  <message>:
//	<function>:<line>
//	<function>:<line>
//	...
//
// with one line per frame of the error's captured stack trace, innermost
// first. A nil error renders as the literal "null"; an error without a
// captured trace renders zero frame lines. ErrorToString never fails, even
// for malformed or partially populated error values.
func ErrorToString(err error) string {
	if err == nil {
		return "null"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%T", err))
	b.WriteString("  ")
	b.WriteString(safeMessage(err))
	b.WriteString(":\n")

	if st, ok := err.(stackTracer); ok {
		for _, frame := range safeStackTrace(st) {
			// Frame is a program counter +1, per pkg/errors convention.
			pc := uintptr(frame) - 1
			fn := runtime.FuncForPC(pc)
			if fn == nil {
				continue
			}
			_, line := fn.FileLine(pc)
			fmt.Fprintf(&b, "%s:%d\n", fn.Name(), line)
		}
	}

	return b.String()
}

// safeMessage extracts err.Error() without letting a broken implementation
// take the logging path down with it. A panicking Error method yields an
// empty message.
func safeMessage(err error) (msg string) {
	defer func() {
		if recover() != nil {
			msg = ""
		}
	}()
	return err.Error()
}

// safeStackTrace is the same guard for StackTrace implementations.
func safeStackTrace(st stackTracer) (trace pkgerrors.StackTrace) {
	defer func() {
		if recover() != nil {
			trace = nil
		}
	}()
	return st.StackTrace()
}
