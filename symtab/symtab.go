// Package symtab implements the scoped symbol table.
//
// A Table is a stack of scopes. Scope 0 is global and lives for the whole
// compilation; deeper scopes are pushed around function bodies and their
// entries are discarded when the body closes. Functions are always recorded
// in the global scope, whatever the current nesting depth.
package symtab

import "fmt"

// Kind categorizes symbols
type Kind int

const (
	KindVar Kind = iota
	KindParam
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindParam:
		return "param"
	case KindFunc:
		return "func"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NoOffset is the Offset of function entries, which occupy no storage slot.
const NoOffset = -1

// Param is one (type, name) pair of a function signature.
type Param struct {
	Type string
	Name string
}

// Entry is a declared name.
type Entry struct {
	Name  string
	Kind  Kind
	Type  string // declared type tag; the return type for functions
	Level int    // scope level the entry was declared in
	// Offset is a per-scope sequence number starting at 0, reserved for a
	// future storage layout pass. NoOffset for functions.
	Offset int
	Params []Param // KindFunc only
}

// Scope is an insertion-ordered mapping from name to entry.
type Scope struct {
	level      int
	names      []string
	entries    map[string]*Entry
	nextOffset int
}

func newScope(level int) *Scope {
	return &Scope{level: level, entries: make(map[string]*Entry)}
}

// Level returns the nesting level of the scope; 0 is global.
func (s *Scope) Level() int {
	return s.level
}

// Len returns the number of entries in the scope.
func (s *Scope) Len() int {
	return len(s.names)
}

// Get returns the entry declared in this scope only.
func (s *Scope) Get(name string) (*Entry, bool) {
	e, ok := s.entries[name]
	return e, ok
}

// Entries returns the entries in insertion order.
func (s *Scope) Entries() []*Entry {
	entries := make([]*Entry, len(s.names))
	for i, name := range s.names {
		entries[i] = s.entries[name]
	}
	return entries
}

func (s *Scope) insert(e *Entry) {
	s.names = append(s.names, e.Name)
	s.entries[e.Name] = e
}

// Reader is the read-only view of a table used after construction.
type Reader interface {
	Lookup(name string) (*Entry, bool)
}

// Table is a stack of scopes with the global scope at the bottom.
type Table struct {
	scopes []*Scope
}

// New returns a table holding only the empty global scope.
func New() *Table {
	return &Table{scopes: []*Scope{newScope(0)}}
}

// Level returns the current nesting level; 0 means only the global scope
// is active.
func (t *Table) Level() int {
	return len(t.scopes) - 1
}

// Global returns the global scope.
func (t *Table) Global() *Scope {
	return t.scopes[0]
}

// Current returns the innermost scope.
func (t *Table) Current() *Scope {
	return t.scopes[len(t.scopes)-1]
}

// EnterScope pushes a new empty scope.
func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, newScope(len(t.scopes)))
}

// ExitScope pops the innermost scope and returns it.
//
// Panics if only the global scope is left: unbalanced enter/exit is a bug
// in the caller, not a user error.
func (t *Table) ExitScope() *Scope {
	if len(t.scopes) == 1 {
		panic("error: exit scope with no scope to exit")
	}
	popped := t.scopes[len(t.scopes)-1]
	t.scopes = t.scopes[:len(t.scopes)-1]
	return popped
}

// Add declares name in the innermost scope. Shadowing a name from an outer
// scope is allowed; declaring it twice in the same scope is not.
func (t *Table) Add(name string, kind Kind, typ string) (*Entry, error) {
	scope := t.Current()
	if existing, ok := scope.Get(name); ok {
		return nil, &RedeclarationError{Name: name, Kind: kind, Existing: existing}
	}
	e := &Entry{
		Name:   name,
		Kind:   kind,
		Type:   typ,
		Level:  scope.level,
		Offset: scope.nextOffset,
	}
	scope.nextOffset++
	scope.insert(e)
	return e, nil
}

// AddFunction declares a function in the global scope.
func (t *Table) AddFunction(name string, returnType string, params []Param) (*Entry, error) {
	scope := t.Global()
	if existing, ok := scope.Get(name); ok {
		return nil, &RedeclarationError{Name: name, Kind: KindFunc, Existing: existing}
	}
	e := &Entry{
		Name:   name,
		Kind:   KindFunc,
		Type:   returnType,
		Level:  0,
		Offset: NoOffset,
		Params: append([]Param(nil), params...),
	}
	scope.insert(e)
	return e, nil
}

// Lookup searches from the innermost scope out to the global scope and
// returns the first match.
func (t *Table) Lookup(name string) (*Entry, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if e, ok := t.scopes[i].Get(name); ok {
			return e, true
		}
	}
	return nil, false
}
