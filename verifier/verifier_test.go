package verifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestParsePrecedence tests that NOT binds tighter than AND, and AND tighter
// than OR.
func TestParsePrecedence(t *testing.T) {
	t.Parallel()

	// "A&B|!C" must parse as OR(AND(A,B), NOT(C)).
	root := ParseString("A&B|!C")
	require.NoError(t, root.Err())

	require.Equal(t, OpOr, root.Op)
	require.Equal(t, OpAnd, root.Left.Op)
	require.Equal(t, "A", root.Left.Left.Var)
	require.Equal(t, "B", root.Left.Right.Var)
	require.Equal(t, OpNot, root.Right.Op)
	require.Equal(t, "C", root.Right.Left.Var)

	result, err := root.Evaluate(map[string]bool{
		"A": true, "B": false, "C": false,
	})
	require.NoError(t, err)
	require.True(t, result)
}

// TestParseParentheses tests that parentheses override precedence.
func TestParseParentheses(t *testing.T) {
	t.Parallel()

	root := ParseString("(A|B)&C")
	require.NoError(t, root.Err())

	require.Equal(t, OpAnd, root.Op)
	require.Equal(t, OpOr, root.Left.Op)
	require.Equal(t, "C", root.Right.Var)

	result, err := root.Evaluate(map[string]bool{
		"A": false, "B": true, "C": true,
	})
	require.NoError(t, err)
	require.True(t, result)

	// Nested groups and double negation.
	root = ParseString("!(!(A))")
	require.NoError(t, root.Err())
	result, err = root.Evaluate(map[string]bool{"A": true})
	require.NoError(t, err)
	require.True(t, result)

	root = ParseString("!!A")
	require.NoError(t, root.Err())
	result, err = root.Evaluate(map[string]bool{"A": true})
	require.NoError(t, err)
	require.True(t, result)
}

// TestEvaluate tests evaluation over a few full truth assignments.
func TestEvaluate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		expr     string
		bindings map[string]bool
		expected bool
	}{
		{"A", map[string]bool{"A": true}, true},
		{"A", map[string]bool{"A": false}, false},
		{"!A", map[string]bool{"A": false}, true},
		{"A&B", map[string]bool{"A": true, "B": true}, true},
		{"A&B", map[string]bool{"A": true, "B": false}, false},
		{"A|B", map[string]bool{"A": false, "B": true}, true},
		{"A|B", map[string]bool{"A": false, "B": false}, false},
		{
			"A&!(B|C)",
			map[string]bool{"A": true, "B": false, "C": false},
			true,
		},
		{
			"KYC&!BANNED",
			map[string]bool{"KYC": true, "BANNED": false},
			true,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.expr, func(t *testing.T) {
			root := ParseString(tc.expr)
			require.NoError(t, root.Err())

			result, err := root.Evaluate(tc.bindings)
			require.NoError(t, err)
			require.Equal(t, tc.expected, result)
		})
	}
}

// TestEvaluateUnboundVariable tests that a missing binding is a hard
// failure, never treated as false.
func TestEvaluateUnboundVariable(t *testing.T) {
	t.Parallel()

	root := ParseString("A&B")
	require.NoError(t, root.Err())

	_, err := root.Evaluate(map[string]bool{"A": true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "B")
}

// TestParseSyntaxErrors tests that malformed expressions embed an error in
// the tree instead of failing the parse, and that evaluation then fails with
// that error.
func TestParseSyntaxErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		expr string
	}{
		{"empty", ""},
		{"too long", strings.Repeat("A", MaxParseLength+1)},
		{"dangling not", "A!"},
		{"no right side of and", "A&"},
		{"no left side of and", "&A"},
		{"no right side of or", "A|"},
		{"no left side of or", "|A"},
		{"adjacent items", "A(B)"},
		{"empty group", "()"},
		{"unterminated group", "(A"},
		{"stray close", "A)"},
		{"bad token", "A friend"},
		{"lowercase variable", "a"},
		{"not before operator", "A!&B"},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			root := ParseString(tc.expr)
			require.Error(t, root.Err())

			_, err := root.Evaluate(map[string]bool{"A": true})
			require.Error(t, err)
		})
	}
}

// TestCompressVerifierString tests that whitespace and qualifier markers are
// stripped before parsing.
func TestCompressVerifierString(t *testing.T) {
	t.Parallel()

	require.Equal(
		t, "KYC&!BANNED",
		CompressVerifierString("#KYC & !#BANNED"),
	)

	root := ParseVerifierString("#KYC & !#BANNED")
	require.NoError(t, root.Err())

	result, err := root.Evaluate(map[string]bool{
		"KYC": true, "BANNED": false,
	})
	require.NoError(t, err)
	require.True(t, result)

	// The raw parser, by contrast, rejects whitespace.
	require.Error(t, ParseString("A B").Err())
}

// TestVars tests variable enumeration order and deduplication.
func TestVars(t *testing.T) {
	t.Parallel()

	root := ParseString("A&(B|A)&!C")
	require.NoError(t, root.Err())
	require.Equal(t, []string{"A", "B", "C"}, root.Vars())

	var first string
	stopped := root.ForEachVar(func(name string) bool {
		first = name
		return true
	})
	require.True(t, stopped)
	require.Equal(t, "A", first)
}

// TestParseNeverPanics tests that arbitrary input parses to a tree and that
// a clean tree always evaluates once all its variables are bound.
func TestParseNeverPanics(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(r *rapid.T) {
		expr := rapid.StringN(0, 120, -1).Draw(r, "expr")

		root := ParseVerifierString(expr)
		require.NotNil(r, root)

		if root.Err() != nil {
			return
		}

		bindings := make(map[string]bool)
		for _, name := range root.Vars() {
			bindings[name] = true
		}
		_, err := root.Evaluate(bindings)
		require.NoError(r, err)
	})
}
