package tptp

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var lexerSymbols = tptpLexer.Symbols()

// tok is a single lexed token, stripped down to what the recursive-descent
// parser below needs. The binary connectives of full first-order formulae
// are not uniformly left-associative (spec.md §6 lists `=>, <=>, <~>, ~|,
// ~&` alongside `&`/`|`), which a participle struct-tag grammar cannot
// express directly without ambiguity; this hand-written descent (consuming
// the shared participle lexer's token stream) follows the precedence table
// in the TPTP BNF the original Rust parser.rs implements.
type tok struct {
	kind lexer.TokenType
	text string
	pos  lexer.Position
}

type parser struct {
	tokens []tok
	pos    int
}

// ParseError reports a lexical or syntactic problem with position info,
// matching the caret-style diagnostics kanso-lang-kanso's grammar package
// produces for its own parser.
type ParseError struct {
	Pos     lexer.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Message)
}

func lex(filename, src string) ([]tok, error) {
	l, err := tptpLexer.Lex(filename, strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	whitespace := lexerSymbols["Whitespace"]
	lineComment := lexerSymbols["LineComment"]
	blockComment := lexerSymbols["BlockComment"]
	var out []tok
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}
		if t.EOF() {
			break
		}
		if t.Type == whitespace || t.Type == lineComment || t.Type == blockComment {
			continue
		}
		out = append(out, tok{kind: t.Type, text: t.Value, pos: t.Pos})
	}
	return out, nil
}

func (p *parser) errf(format string, args ...any) error {
	pos := lexer.Position{}
	if p.pos < len(p.tokens) {
		pos = p.tokens[p.pos].pos
	}
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) peek() (tok, bool) {
	if p.pos >= len(p.tokens) {
		return tok{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) at(text string) bool {
	t, ok := p.peek()
	return ok && t.text == text
}

func (p *parser) next() (tok, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) expect(text string) error {
	t, ok := p.next()
	if !ok || t.text != text {
		return p.errf("expected %q, got %q", text, t.text)
	}
	return nil
}

// File is a fully parsed and include-expanded TPTP problem.
type File struct {
	Formulae []*AnnotatedFormula
}

// ParseFile parses TPTP source already read into memory, resolving include
// directives by reading sibling files via resolveInclude (nil disables
// includes, returning an error if one is present).
func ParseFile(filename, src string, resolveInclude func(path string) (string, error)) (*File, error) {
	tokens, err := lex(filename, src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	var out File
	for p.pos < len(p.tokens) {
		t, _ := p.peek()
		switch t.text {
		case "include":
			names, path, err := p.parseInclude()
			if err != nil {
				return nil, err
			}
			if resolveInclude == nil {
				return nil, p.errf("include directives are disabled")
			}
			included, err := resolveInclude(path)
			if err != nil {
				return nil, err
			}
			sub, err := ParseFile(path, included, resolveInclude)
			if err != nil {
				return nil, err
			}
			for _, af := range sub.Formulae {
				if names == nil || contains(names, af.Name) {
					out.Formulae = append(out.Formulae, af)
				}
			}
		case "cnf", "fof":
			af, err := p.parseAnnotated(t.text == "cnf")
			if err != nil {
				return nil, err
			}
			out.Formulae = append(out.Formulae, af)
		default:
			return nil, p.errf("expected 'cnf', 'fof' or 'include', got %q", t.text)
		}
	}
	return &out, nil
}

func contains(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}

// parseInclude parses `include(path [, [n1, n2, ...]]).`.
func (p *parser) parseInclude() (names []string, path string, err error) {
	p.next() // "include"
	if err = p.expect("("); err != nil {
		return
	}
	pathTok, ok := p.next()
	if !ok {
		err = p.errf("expected a quoted path in include")
		return
	}
	path = unquoteSingle(pathTok.text)
	if p.at(",") {
		p.next()
		if err = p.expect("["); err != nil {
			return
		}
		for !p.at("]") {
			nameTok, ok := p.next()
			if !ok {
				err = p.errf("unterminated include name list")
				return
			}
			names = append(names, nameTok.text)
			if p.at(",") {
				p.next()
			}
		}
		p.next() // "]"
	}
	if err = p.expect(")"); err != nil {
		return
	}
	err = p.expect(".")
	return
}

// parseAnnotated parses `cnf(name, role, formula).` or `fof(name, role,
// formula).`.
func (p *parser) parseAnnotated(isCNF bool) (*AnnotatedFormula, error) {
	p.next() // "cnf" / "fof"
	if err := p.expect("("); err != nil {
		return nil, err
	}
	nameTok, ok := p.next()
	if !ok {
		return nil, p.errf("expected a formula name")
	}
	if err := p.expect(","); err != nil {
		return nil, err
	}
	roleTok, ok := p.next()
	if !ok {
		return nil, p.errf("expected a role")
	}
	if err := p.expect(","); err != nil {
		return nil, err
	}
	paren := p.at("(")
	if paren {
		p.next()
	}
	f, err := p.parseLogicFormula()
	if err != nil {
		return nil, err
	}
	if paren {
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if err := p.expect("."); err != nil {
		return nil, err
	}

	role := RoleOther
	if roleTok.text == "conjecture" {
		role = RoleConjecture
	}
	return &AnnotatedFormula{Name: nameTok.text, Role: role, Formula: f, IsCNF: isCNF}, nil
}

// parseLogicFormula parses a full fof_logic_formula: a chain of
// fof_unitary_formula separated by a single binary connective kind, honoring
// TPTP's rule that `&` and `|` chain left-associatively but mixing
// connectives at the top level requires explicit parentheses.
func (p *parser) parseLogicFormula() (*Formula, error) {
	left, err := p.parseUnitary()
	if err != nil {
		return nil, err
	}
	t, ok := p.peek()
	if !ok {
		return left, nil
	}
	switch t.text {
	case "&":
		return p.parseAssocChain(left, "&", ConnAnd)
	case "|":
		return p.parseAssocChain(left, "|", ConnOr)
	case "=>":
		p.next()
		right, err := p.parseUnitary()
		if err != nil {
			return nil, err
		}
		return &Formula{Conn: ConnImplies, Left: left, Right: right}, nil
	case "<=>":
		p.next()
		right, err := p.parseUnitary()
		if err != nil {
			return nil, err
		}
		return &Formula{Conn: ConnIff, Left: left, Right: right}, nil
	case "<~>":
		p.next()
		right, err := p.parseUnitary()
		if err != nil {
			return nil, err
		}
		return &Formula{Conn: ConnXor, Left: left, Right: right}, nil
	case "~|":
		p.next()
		right, err := p.parseUnitary()
		if err != nil {
			return nil, err
		}
		return &Formula{Conn: ConnNor, Left: left, Right: right}, nil
	case "~&":
		p.next()
		right, err := p.parseUnitary()
		if err != nil {
			return nil, err
		}
		return &Formula{Conn: ConnNand, Left: left, Right: right}, nil
	default:
		return left, nil
	}
}

func (p *parser) parseAssocChain(left *Formula, op string, conn Connective) (*Formula, error) {
	for p.at(op) {
		p.next()
		right, err := p.parseUnitary()
		if err != nil {
			return nil, err
		}
		left = &Formula{Conn: conn, Left: left, Right: right}
	}
	return left, nil
}

// parseUnitary parses fof_unitary_formula: quantified, negated, parenthesized
// or atomic.
func (p *parser) parseUnitary() (*Formula, error) {
	t, ok := p.peek()
	if !ok {
		return nil, p.errf("unexpected end of input")
	}
	switch {
	case t.text == "~":
		p.next()
		sub, err := p.parseUnitary()
		if err != nil {
			return nil, err
		}
		return &Formula{Conn: ConnNot, Sub: sub}, nil
	case t.text == "!":
		return p.parseQuantified(ConnForall)
	case t.text == "?":
		return p.parseQuantified(ConnExists)
	case t.text == "(":
		p.next()
		f, err := p.parseLogicFormula()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return p.parseAtomic()
	}
}

func (p *parser) parseQuantified(conn Connective) (*Formula, error) {
	p.next() // "!" or "?"
	if err := p.expect("["); err != nil {
		return nil, err
	}
	var vars []string
	for !p.at("]") {
		v, ok := p.next()
		if !ok {
			return nil, p.errf("unterminated variable list")
		}
		vars = append(vars, v.text)
		if p.at(",") {
			p.next()
		}
	}
	p.next() // "]"
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	sub, err := p.parseUnitary()
	if err != nil {
		return nil, err
	}
	return &Formula{Conn: conn, BoundVars: vars, Sub: sub}, nil
}

// parseAtomic parses a predicate application, `$true`/`$false`, or an
// (in)equality between two terms.
func (p *parser) parseAtomic() (*Formula, error) {
	if p.at("$true") {
		p.next()
		return &Formula{Conn: ConnPredicate, Name: "$true"}, nil
	}
	if p.at("$false") {
		p.next()
		return &Formula{Conn: ConnPredicate, Name: "$false"}, nil
	}

	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	if p.at("=") {
		p.next()
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &Formula{Conn: ConnPredicate, Name: "=", Args: []*Term{first, rhs}}, nil
	}
	if p.at("!=") {
		p.next()
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &Formula{Conn: ConnNot, Sub: &Formula{Conn: ConnPredicate, Name: "=", Args: []*Term{first, rhs}}}, nil
	}

	// A bare term parse only makes sense if it was actually a predicate
	// application (function-syntax atom): reinterpret it as one.
	if first.IsVariable() {
		return nil, p.errf("a bare variable is not a valid atomic formula")
	}
	return &Formula{Conn: ConnPredicate, Name: first.Name, Args: first.Args}, nil
}

// parseTerm parses a single first-order term: a variable, or a
// function/constant application, including quoted and numeric atoms.
func (p *parser) parseTerm() (*Term, error) {
	t, ok := p.next()
	if !ok {
		return nil, p.errf("expected a term")
	}
	if isUpperWord(t.text) {
		return &Term{Variable: t.text}, nil
	}

	name := t.text
	switch {
	case strings.HasPrefix(name, "'"):
		name = unquoteSingle(name)
	case strings.HasPrefix(name, `"`):
		name = unquoteDouble(name)
	}

	if !p.at("(") {
		return &Term{Name: name}, nil
	}
	p.next() // "("
	var args []*Term
	for !p.at(")") {
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.at(",") {
			p.next()
		}
	}
	p.next() // ")"
	return &Term{Name: name, Args: args}, nil
}

func isUpperWord(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}

func unquoteSingle(s string) string {
	s = strings.TrimPrefix(s, "'")
	s = strings.TrimSuffix(s, "'")
	return strings.ReplaceAll(s, `\'`, `'`)
}

func unquoteDouble(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.ReplaceAll(s, `\"`, `"`)
}
