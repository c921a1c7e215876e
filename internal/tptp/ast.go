// Package tptp reads first-order problem files (spec.md §6: clause-normal
// form and full first-order annotated formulae, equality, includes,
// comments) and clausifies them into the prover's internal clause
// representation. The lexer and parser follow kanso-lang-kanso's
// participle-based grammar layout (grammar/lexer.go, grammar/parser.go);
// the formula AST and CNF pipeline are grounded on the original Rust
// implementation's tptp_parser/parser.rs and cnf/ package structure.
package tptp

import "github.com/fo-prover/superpose/internal/term"

// Term is a parsed first-order term, before it is interned into a
// *term.Term by the clausifier (which needs a *term.Table to do that).
type Term struct {
	Variable string  // non-empty for a variable; Name/Args unused then
	Name     string  // function/constant symbol name
	Args     []*Term

	// resolved, when non-nil, short-circuits interning: the clausifier's
	// Skolemization pass stamps a bound variable occurrence with its
	// already-interned replacement (a fresh universal or a Skolem
	// application) directly on the AST node rather than maintaining a
	// second substitution structure alongside it.
	resolved *term.Term
}

// IsVariable reports whether this term node is a variable occurrence.
func (t *Term) IsVariable() bool { return t.Variable != "" }

// Connective is a propositional or quantifier connective appearing in a
// full first-order formula.
type Connective int

const (
	ConnPredicate Connective = iota // atomic formula: Name(Args...), or Name == "=" for equality
	ConnNot
	ConnAnd
	ConnOr
	ConnImplies
	ConnIff
	ConnXor   // <~>
	ConnNor   // ~|
	ConnNand  // ~&
	ConnForall
	ConnExists
)

// Formula is a parsed first-order formula, prior to clausification.
type Formula struct {
	Conn Connective

	// ConnPredicate
	Name string
	Args []*Term

	// ConnNot, ConnForall, ConnExists
	Sub *Formula

	// binary connectives
	Left, Right *Formula

	// ConnForall, ConnExists
	BoundVars []string
}

// Role is the TPTP annotation distinguishing conjectures from everything
// else (spec.md §6: "the core only distinguishes conjectures ... from
// other formulae").
type Role string

const (
	RoleConjecture Role = "conjecture"
	RoleOther      Role = "other"
)

// AnnotatedFormula is one top-level `cnf(...)` or `fof(...)` entry.
type AnnotatedFormula struct {
	Name    string
	Role    Role
	Formula *Formula
	IsCNF   bool // true if declared via cnf(...), already clausal
}
