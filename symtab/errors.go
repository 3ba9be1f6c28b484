package symtab

import "fmt"

// RedeclarationError reports a name declared twice in the same scope, or a
// function whose name is already taken in the global scope.
type RedeclarationError struct {
	Name     string
	Kind     Kind   // kind of the rejected declaration
	Existing *Entry // the entry that already holds the name
}

func (e *RedeclarationError) Error() string {
	noun := "variable"
	switch e.Kind {
	case KindParam:
		noun = "parameter"
	case KindFunc:
		noun = "function"
	}
	if e.Existing.Level == 0 {
		return fmt.Sprintf("error: %s '%s' already declared as global %s", noun, e.Name, e.Existing.Kind)
	}
	return fmt.Sprintf("error: %s '%s' already declared in scope %d", noun, e.Name, e.Existing.Level)
}

// NotCallableError reports a call whose callee does not resolve to a
// function entry.
type NotCallableError struct {
	Name string
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("error: '%s' is not a function", e.Name)
}
