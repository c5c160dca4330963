// Package tiletest provides utility functions for testing grids and
// assembled programs.
package tiletest

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/nodegrid/tis100sim/tile"
	"github.com/nodegrid/tis100sim/tile/asm"
)

// Trace logs a pkg/errors stack trace attached to err, if any. It is a
// no-op for errors that were not created or wrapped with pkg/errors.
func Trace(t *testing.T, err error) {
	t.Helper()
	if st, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range st.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

// MustParse assembles source and fails the test immediately, with a
// stack trace, on a parse error.
func MustParse(t *testing.T, source string) *tile.Program {
	t.Helper()
	prog, err := asm.Parse(source)
	if err != nil {
		Trace(t, err)
		t.Fatalf("assembling program: %v", err)
	}
	return prog
}

// RunAndExpectSuccess runs the grid to completion within maxCycles and
// asserts the run both succeeded and did so within the given cycle
// budget.
func RunAndExpectSuccess(t *testing.T, g *tile.Grid, maxCycles int) tile.RunResult {
	t.Helper()
	result, err := g.RunOnce(maxCycles)
	if err != nil {
		Trace(t, err)
	}
	require.NoError(t, err)
	require.True(t, result.Success, "expected success, got mismatch at output %d after %d cycles", result.MismatchAt, result.Cycles)
	return result
}
