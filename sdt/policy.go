package sdt

import "fmt"

// Policy decides what happens when an identifier is used before it is
// declared.
type Policy int

const (
	// Tolerant silently declares the unknown name as a variable of the
	// default type in the current scope.
	Tolerant Policy = iota
	// Strict rejects the use with an UndeclaredIdentifierError.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Tolerant:
		return "tolerant"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Set implements flag.Value.
func (p *Policy) Set(s string) error {
	switch s {
	case "tolerant":
		*p = Tolerant
	case "strict":
		*p = Strict
	default:
		return fmt.Errorf("unknown policy %q (want tolerant or strict)", s)
	}
	return nil
}
