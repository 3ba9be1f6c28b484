// Package tac lowers a syntax tree into three-address code: a flat, ordered
// list of quadruples.
package tac

import (
	"fmt"
	"strings"
)

// Quad opcodes other than the arithmetic operators, which are emitted
// verbatim from the source ("+", "-", "*", "/").
const (
	OpLabel  = "label"
	OpAssign = "="
	OpReturn = "ret"
	OpParam  = "param"
	OpCall   = "call"
)

// Quad is one instruction: (operation, operand1, operand2, result). An
// empty field is absent.
type Quad struct {
	Op     string
	Arg1   string
	Arg2   string
	Result string
}

// String renders the quad as "op arg1 arg2 result", omitting absent fields.
func (q Quad) String() string {
	fields := []string{q.Op}
	for _, f := range []string{q.Arg1, q.Arg2, q.Result} {
		if f != "" {
			fields = append(fields, f)
		}
	}
	return strings.Join(fields, " ")
}

// Format renders quads one per line. With numbered set, each line is
// prefixed with its zero-padded index.
func Format(quads []Quad, numbered bool) string {
	var sb strings.Builder
	for i, q := range quads {
		if numbered {
			fmt.Fprintf(&sb, "%03d: ", i)
		}
		sb.WriteString(q.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
