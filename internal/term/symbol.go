// Package term implements the shared, hash-consed first-order term
// representation: interned symbols, terms with cached weight/variable-set/
// ground attributes, and the reserved truth constant used to encode
// non-equational atoms as equations.
package term

import "fmt"

// SymbolKind classifies an interned, non-variable symbol.
type SymbolKind uint8

const (
	// FuncKind symbols build terms.
	FuncKind SymbolKind = iota
	// PredKind symbols are used only by the clausifier, to tag a symbol
	// whose applications will be rewritten into equations against Truth.
	PredKind
	// TruthKind marks the single reserved truth constant.
	TruthKind
)

func (k SymbolKind) String() string {
	switch k {
	case FuncKind:
		return "function"
	case PredKind:
		return "predicate"
	case TruthKind:
		return "truth"
	default:
		return "unknown"
	}
}

// Symbol is an interned non-variable identifier. Two symbols with the same
// name and arity are always the same *Symbol within a Table.
type Symbol struct {
	ID    int32
	Name  string
	Arity int
	Kind  SymbolKind
}

func (s *Symbol) String() string {
	return fmt.Sprintf("%s/%d", s.Name, s.Arity)
}

type symbolKey struct {
	name  string
	arity int
}

// Table interns symbols and terms for a single problem. It is the unit of
// sharing: terms built through two different Tables are never identical,
// but every term built through one Table is hash-consed.
type Table struct {
	symbolsByKey map[symbolKey]*Symbol
	symbolsByID  []*Symbol
	nextSymID    int32

	varNames map[int32]string
	nextVar  int32

	terms    map[termKey]*Term
	varTerms map[int32]*Term

	truth *Symbol
}

// NewTable constructs an empty, ready-to-use symbol/term table.
func NewTable() *Table {
	return &Table{
		symbolsByKey: make(map[symbolKey]*Symbol),
		varNames:     make(map[int32]string),
		nextVar:      -1,
		terms:        make(map[termKey]*Term),
		varTerms:     make(map[int32]*Term),
	}
}

// Declare interns a (name, arity) pair as a function or predicate symbol.
// Calling Declare twice with the same name and arity returns the same
// *Symbol; calling it with the same name and a different arity is a
// distinct symbol (first-order signatures are keyed by name and arity).
func (t *Table) Declare(name string, arity int, kind SymbolKind) *Symbol {
	key := symbolKey{name: name, arity: arity}
	if sym, ok := t.symbolsByKey[key]; ok {
		return sym
	}
	sym := &Symbol{ID: t.nextSymID, Name: name, Arity: arity, Kind: kind}
	t.nextSymID++
	t.symbolsByKey[key] = sym
	t.symbolsByID = append(t.symbolsByID, sym)
	return sym
}

// TruthSymbol returns the reserved truth constant ($true/0), creating it
// on first use. Its occurrences are produced only by the clausifier
// encoding a non-equational atom P(t̄) as P(t̄) = Truth.
func (t *Table) TruthSymbol() *Symbol {
	if t.truth == nil {
		t.truth = t.Declare("$true", 0, TruthKind)
	}
	return t.truth
}

// Symbol looks up a previously declared symbol by id.
func (t *Table) Symbol(id int32) *Symbol {
	if id < 0 || int(id) >= len(t.symbolsByID) {
		return nil
	}
	return t.symbolsByID[id]
}

// Symbols returns every declared non-variable symbol, in declaration order.
// The slice is owned by the caller.
func (t *Table) Symbols() []*Symbol {
	out := make([]*Symbol, len(t.symbolsByID))
	copy(out, t.symbolsByID)
	return out
}

// FreshVar allocates a new variable id from the disjoint negative range
// and returns the corresponding (hash-consed) variable term. The
// allocator is monotonic: no id is ever reused within a Table's lifetime.
func (t *Table) FreshVar() *Term {
	id := t.nextVar
	t.nextVar--
	return t.Var(id)
}

// NameVar records a display name for a variable id, used only for
// formatting. It does not affect identity: variables compare by id.
func (t *Table) NameVar(id int32, name string) {
	t.varNames[id] = name
}

// VarName returns the display name previously recorded for id via
// NameVar, or a synthesized "_G<n>" name if none was recorded.
func (t *Table) VarName(id int32) string {
	if name, ok := t.varNames[id]; ok {
		return name
	}
	return fmt.Sprintf("_G%d", -id)
}
