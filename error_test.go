// error_test.go: Error formatting tests
//
// XLogger software is published under GPLv2 license
//
// Author : Siarhei Skavarodkin
// email  : komarevsky (at) gmail (dot) com

package xlogger

import (
	"errors"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStringNil(t *testing.T) {
	assert.Equal(t, "null", ErrorToString(nil))
}

func TestErrorToStringPlainError(t *testing.T) {
	out := ErrorToString(errors.New("plain failure"))

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 1, "a plain error has no captured trace, so no frame lines")
	assert.True(t, strings.HasSuffix(lines[0], "  plain failure:"), "header line: %q", lines[0])
}

func TestErrorToStringCapturedTrace(t *testing.T) {
	err := pkgerrors.New("boom")

	out := ErrorToString(err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	st, ok := err.(stackTracer)
	require.True(t, ok)
	require.Len(t, lines, 1+len(st.StackTrace()),
		"one header line plus one line per captured frame")

	assert.True(t, strings.HasSuffix(lines[0], "  boom:"), "header line: %q", lines[0])
	// Innermost frame first: the frame where pkgerrors.New was called.
	assert.Contains(t, lines[1], "TestErrorToStringCapturedTrace")
	assert.Contains(t, lines[1], ":")
}

func TestErrorToStringWrappedError(t *testing.T) {
	base := errors.New("disk gone")
	err := pkgerrors.WithStack(base)

	out := ErrorToString(err)
	assert.True(t, strings.HasPrefix(out, "*errors.withStack  disk gone:\n"), "got: %q", out)
	assert.Contains(t, out, "TestErrorToStringWrappedError")
}

// brokenError panics from Error, simulating a malformed error value.
type brokenError struct{}

func (brokenError) Error() string { panic("broken Error method") }

// brokenTrace panics from StackTrace.
type brokenTrace struct{}

func (brokenTrace) Error() string { return "half built" }

func (brokenTrace) StackTrace() pkgerrors.StackTrace { panic("broken StackTrace method") }

func TestErrorToStringNeverFails(t *testing.T) {
	assert.NotPanics(t, func() {
		out := ErrorToString(brokenError{})
		// Missing message renders as empty.
		assert.True(t, strings.HasSuffix(out, "  :\n"), "got: %q", out)
	})

	assert.NotPanics(t, func() {
		out := ErrorToString(brokenTrace{})
		// Missing trace renders zero frame lines.
		assert.True(t, strings.HasSuffix(out, "  half built:\n"), "got: %q", out)
		assert.Equal(t, 1, strings.Count(out, "\n"))
	})
}
