package term

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// Term is either a variable or a function application, hash-consed within
// a Table so that structurally equal terms share one *Term and one set of
// cached attributes. Terms are immutable once observed: construct new
// terms through a Table rather than mutating one in place.
type Term struct {
	table *Table
	sym   int32 // >= 0: function/predicate/truth symbol id. < 0: variable id.
	args  []*Term

	size   int          // cached symbol count (self + all descendants)
	ground bool         // cached: true iff Vars() is empty
	vars   *set.Set[int32] // cached free variable ids; nil for ground terms
}

// termKey is the hash-consing key: a variable's own id, or a function
// symbol id paired with the (already-interned, pointer-stable) argument
// list.
type termKey string

func makeKey(sym int32, args []*Term) termKey {
	if len(args) == 0 {
		return termKey(fmt.Sprintf("%d", sym))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d", sym)
	for _, a := range args {
		fmt.Fprintf(&b, ":%p", a)
	}
	return termKey(b.String())
}

// Var returns the hash-consed variable term for id, creating it on first
// use. id is expected to come from the table's negative range (FreshVar)
// or from a source, such as a parser, that reserves its own negative ids
// consistently.
func (t *Table) Var(id int32) *Term {
	if tm, ok := t.varTerms[id]; ok {
		return tm
	}
	tm := &Term{table: t, sym: id, ground: false, vars: set.From([]int32{id})}
	tm.size = 1
	t.varTerms[id] = tm
	return tm
}

// Func builds (or retrieves the hash-consed instance of) a function term
// over sym applied to args. Panics if len(args) != sym.Arity: this is an
// internal invariant, not a user error, so it is never recoverable by a
// caller this deep in the pipeline.
func (t *Table) Func(sym *Symbol, args ...*Term) *Term {
	if len(args) != sym.Arity {
		panic(fmt.Sprintf("term: arity mismatch building %s: got %d args", sym, len(args)))
	}
	key := makeKey(sym.ID, args)
	if tm, ok := t.terms[key]; ok {
		return tm
	}
	tm := &Term{table: t, sym: sym.ID, args: args}
	tm.size = 1
	var vars *set.Set[int32]
	for _, a := range args {
		tm.size += a.size
		if !a.ground {
			if vars == nil {
				vars = set.New[int32](0)
			}
			vars.InsertSet(a.vars)
		}
	}
	tm.vars = vars
	tm.ground = vars == nil || vars.Empty()
	t.terms[key] = tm
	return tm
}

// Truth returns the reserved truth constant term $true.
func (t *Table) Truth() *Term {
	return t.Func(t.TruthSymbol())
}

// IsVar reports whether the term is a variable.
func (t *Term) IsVar() bool { return t.sym < 0 }

// VarID returns the variable id. Only valid when IsVar().
func (t *Term) VarID() int32 { return t.sym }

// SymbolID returns the head symbol id. Only valid when !IsVar().
func (t *Term) SymbolID() int32 { return t.sym }

// Symbol returns the head Symbol. Only valid when !IsVar().
func (t *Term) Symbol() *Symbol { return t.table.Symbol(t.sym) }

// Args returns the argument list, empty for variables and constants. The
// returned slice must not be mutated: it is shared by every reference to
// this hash-consed term.
func (t *Term) Args() []*Term { return t.args }

// Size returns the cached symbol count of the term (1 for a leaf, plus the
// size of every argument).
func (t *Term) Size() int { return t.size }

// Ground reports whether the term contains no variables. Cached at
// construction.
func (t *Term) Ground() bool { return t.ground }

// Vars returns the term's free variable ids. The returned set must not be
// mutated; it is shared and, for ground terms, is the canonical empty set.
func (t *Term) Vars() *set.Set[int32] {
	if t.vars == nil {
		return emptyVarSet
	}
	return t.vars
}

var emptyVarSet = set.New[int32](0)

// Table returns the Table this term was interned in.
func (t *Term) Table() *Table { return t.table }

func (t *Term) String() string {
	if t.IsVar() {
		return t.table.VarName(t.sym)
	}
	sym := t.Symbol()
	if len(t.args) == 0 {
		return sym.Name
	}
	parts := make([]string, len(t.args))
	for i, a := range t.args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", sym.Name, strings.Join(parts, ","))
}

// Equal reports pointer identity, which is sound because terms are
// hash-consed: two terms built from the same Table are structurally equal
// iff they are the same *Term.
func (t *Term) Equal(other *Term) bool { return t == other }
