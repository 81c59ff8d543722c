// Package verifier parses and evaluates the boolean verifier strings that
// gate transfers of restricted assets. A verifier string is an expression
// over qualifier names, e.g. "KYC&!BANNED", with NOT binding tighter than
// AND, AND tighter than OR, and parentheses overriding precedence.
//
// Parsing never fails with an error value: syntax problems are embedded in
// the returned tree as a terminal node carrying a message, and surface either
// through Err or when the tree is evaluated. This mirrors how the wallet
// treats verifier strings: they are untrusted chain data that must still
// produce a displayable object.
package verifier

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	// MaxParseLength is the longest verifier string the parser accepts.
	MaxParseLength = 80

	// MaxGenerateLength is the longest verifier string a wallet may
	// produce for embedding in a tag script. The parse limit is
	// deliberately looser so that scripts generated by other
	// implementations still decode.
	MaxGenerateLength = 75

	// maxNestingDepth caps the recursion of the parser and of tree
	// traversals. Input length already bounds sensible nesting; the cap
	// is a backstop against adversarial parenthesis runs.
	maxNestingDepth = MaxParseLength
)

// Op enumerates the node kinds of a parsed verifier expression.
type Op uint8

const (
	// OpNone marks a node that carries a parse error instead of an
	// expression.
	OpNone Op = iota

	// OpAnd is a conjunction of the left and right children.
	OpAnd

	// OpOr is a disjunction of the left and right children.
	OpOr

	// OpNot negates the single (left) child.
	OpNot

	// OpVar is a leaf referencing a qualifier name.
	OpVar
)

// String returns a human-readable description of the op.
func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpNot:
		return "not"
	case OpVar:
		return "var"
	default:
		return "<unknown>"
	}
}

// Node is a single node of a parsed verifier expression. Nodes form a strict
// tree, are immutable after parsing, and may be evaluated any number of
// times against different bindings.
type Node struct {
	// Op is the node kind.
	Op Op

	// Left is the left operand of OpAnd/OpOr and the sole operand of
	// OpNot.
	Left *Node

	// Right is the right operand of OpAnd/OpOr.
	Right *Node

	// Var is the referenced qualifier name for OpVar leaves.
	Var string

	// errMsg is the parse failure carried by OpNone nodes.
	errMsg string
}

func errorNode(msg string) *Node {
	return &Node{Op: OpNone, errMsg: msg}
}

func varNode(name string) *Node {
	return &Node{Op: OpVar, Var: name}
}

// Err returns the first syntax error embedded in the tree, depth first and
// left before right, or nil if the expression parsed cleanly.
func (n *Node) Err() error {
	if n.errMsg != "" {
		return errors.New(n.errMsg)
	}
	if n.Op == OpVar {
		return nil
	}
	if n.Left != nil {
		if err := n.Left.Err(); err != nil {
			return err
		}
	}
	if n.Right != nil {
		if err := n.Right.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate computes the expression against the given qualifier bindings. It
// fails if the tree carries a parse error or if a referenced variable is
// missing from the bindings; an absent qualifier is never treated as false.
func (n *Node) Evaluate(bindings map[string]bool) (bool, error) {
	if n.errMsg != "" {
		return false, errors.New(n.errMsg)
	}

	switch n.Op {
	case OpAnd:
		left, err := n.Left.Evaluate(bindings)
		if err != nil {
			return false, err
		}
		right, err := n.Right.Evaluate(bindings)
		if err != nil {
			return false, err
		}
		return left && right, nil

	case OpOr:
		left, err := n.Left.Evaluate(bindings)
		if err != nil {
			return false, err
		}
		right, err := n.Right.Evaluate(bindings)
		if err != nil {
			return false, err
		}
		return left || right, nil

	case OpNot:
		val, err := n.Left.Evaluate(bindings)
		if err != nil {
			return false, err
		}
		return !val, nil

	case OpVar:
		val, ok := bindings[n.Var]
		if !ok {
			return false, fmt.Errorf("variable %q is not bound",
				n.Var)
		}
		return val, nil

	default:
		return false, fmt.Errorf("unknown op %v", n.Op)
	}
}

// ForEachVar walks the tree depth first, left before right, calling visit for
// every variable leaf. The walk stops early if visit returns true, and
// ForEachVar reports whether it was stopped.
func (n *Node) ForEachVar(visit func(name string) bool) bool {
	if n.Op == OpVar {
		return visit(n.Var)
	}
	if n.Left != nil && n.Left.ForEachVar(visit) {
		return true
	}
	if n.Right != nil && n.Right.ForEachVar(visit) {
		return true
	}
	return false
}

// Vars returns the distinct qualifier names referenced by the expression, in
// first-appearance order.
func (n *Node) Vars() []string {
	var vars []string
	n.ForEachVar(func(name string) bool {
		if !slices.Contains(vars, name) {
			vars = append(vars, name)
		}
		return false
	})
	return vars
}

// CompressVerifierString strips the characters that are ignored by consensus
// before a verifier string is parsed: whitespace and the qualifier tag
// marker.
func CompressVerifierString(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "#", "")
}

// ParseVerifierString compresses and parses a verifier string as it appears
// on chain.
func ParseVerifierString(s string) *Node {
	return ParseString(CompressVerifierString(s))
}

// ParseString parses an already compressed verifier string into an
// expression tree. Syntax errors are embedded in the result, never returned.
func ParseString(s string) *Node {
	return parseExpr(s, 0)
}

// isVarChar reports whether ch may appear in a qualifier name. Variables are
// maximal runs of these characters.
func isVarChar(ch byte) bool {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return true
	case ch >= '0' && ch <= '9':
		return true
	case ch == '.' || ch == '_':
		return true
	default:
		return false
	}
}

// token is one item of the flat top-level sequence produced by the scanner:
// either a finished subtree or a raw operator character.
type token struct {
	node *Node
	op   byte
}

// parseExpr is the recursive core of the parser. It scans the string left to
// right tracking parenthesis nesting, emits variable leaves, operator tokens
// and recursively parsed parenthesized subtrees, then folds the flat
// sequence in three passes: NOT first, then AND, then OR.
func parseExpr(s string, depth int) *Node {
	if depth > maxNestingDepth {
		return errorNode("expression is nested too deeply")
	}
	if len(s) == 0 {
		return errorNode("empty verifier string")
	}
	if len(s) > MaxParseLength {
		return errorNode("verifier string is too long")
	}

	var (
		items      []token
		nameStart  = -1
		parenStart = -1
		open       int
		closed     int
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]

		if parenStart == -1 {
			if isVarChar(ch) {
				if nameStart == -1 {
					nameStart = i
				}
				continue
			}
			if nameStart != -1 {
				items = append(items, token{
					node: varNode(s[nameStart:i]),
				})
				nameStart = -1
			}
		}

		switch ch {
		case '(':
			if open == 0 {
				parenStart = i
			}
			open++
		case ')':
			closed++
		}

		// The matching close of the remembered open parenthesis:
		// everything strictly between them parses as one subtree.
		if open == closed && parenStart != -1 {
			items = append(items, token{
				node: parseExpr(s[parenStart+1:i], depth+1),
			})
			open, closed = 0, 0
			parenStart = -1
			continue
		}

		if parenStart != -1 {
			continue
		}

		switch ch {
		case '&', '|', '!':
			items = append(items, token{op: ch})
		default:
			return errorNode(fmt.Sprintf("unable to parse "+
				"token %q", ch))
		}
	}
	if nameStart != -1 {
		items = append(items, token{node: varNode(s[nameStart:])})
	}
	if parenStart != -1 {
		return errorNode("unterminated parenthesis")
	}

	// Pass 1: fold every '!' into its immediately following item.
	var (
		folded      []token
		negate      bool
		danglingNot bool
	)
	for _, it := range items {
		if it.node == nil && it.op == '!' {
			negate = !negate
			danglingNot = true
			continue
		}
		danglingNot = false

		if it.node == nil {
			if negate {
				return errorNode("bad NOT placement")
			}
			folded = append(folded, it)
			continue
		}
		if negate {
			negate = false
			it = token{node: &Node{Op: OpNot, Left: it.node}}
		}
		folded = append(folded, it)
	}
	if danglingNot {
		return errorNode("bad NOT placement")
	}

	// Pass 2: fold every '&' with its left and right neighbors.
	anded, errNode := foldBinary(folded, '&', OpAnd, "AND")
	if errNode != nil {
		return errNode
	}

	// Pass 3: fold every '|' the same way.
	ored, errNode := foldBinary(anded, '|', OpOr, "OR")
	if errNode != nil {
		return errNode
	}

	if len(ored) != 1 {
		return errorNode("variables exist with no operators between " +
			"them")
	}
	return ored[0].node
}

// foldBinary performs one left-to-right reduction pass for a binary operator,
// replacing every occurrence of the operator character and its two neighbors
// with a single combined node.
func foldBinary(items []token, opChar byte, op Op, opName string) ([]token,
	*Node) {

	var (
		out     []token
		pending bool
	)
	for _, it := range items {
		if it.node == nil && it.op == opChar {
			pending = true
			continue
		}

		if !pending {
			out = append(out, it)
			continue
		}
		pending = false

		if it.node == nil {
			return nil, errorNode(fmt.Sprintf("no right side of "+
				"%s statement", opName))
		}
		if len(out) == 0 || out[len(out)-1].node == nil {
			return nil, errorNode(fmt.Sprintf("no left side of "+
				"%s statement", opName))
		}

		left := out[len(out)-1]
		out = out[:len(out)-1]
		out = append(out, token{node: &Node{
			Op:    op,
			Left:  left.node,
			Right: it.node,
		}})
	}
	if pending {
		return nil, errorNode(fmt.Sprintf("no right side of %s "+
			"statement", opName))
	}

	return out, nil
}
