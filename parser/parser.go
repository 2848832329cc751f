package parser

import (
	"fmt"

	"github.com/katalvlaran/casso"
	"github.com/katalvlaran/casso/constraint"
	"github.com/katalvlaran/casso/expr"
	"github.com/katalvlaran/casso/strength"
	"github.com/katalvlaran/casso/variable"
)

// Vars is the expression type constraint strings parse into.
type Vars = expr.Expr[*variable.Variable]

// Parser turns constraint strings into constraint.Constraint values over a
// fixed, pre-registered set of variables. Variables are never created on
// the fly: referencing an unregistered name is a parse error, the same way
// a typo'd identifier fails to compile rather than springing into being.
type Parser struct {
	vars map[string]*variable.Variable
	str  strength.Strength
}

// New returns a Parser that resolves identifiers against vars (keyed by
// variable.Name()) and, unless overridden with SetStrength, builds
// constraints at Required strength.
func New(vars map[string]*variable.Variable) *Parser {
	cp := make(map[string]*variable.Variable, len(vars))
	for k, v := range vars {
		cp[k] = v
	}
	return &Parser{vars: cp, str: strength.Required()}
}

// Register adds or replaces a variable the parser may resolve by name.
func (p *Parser) Register(v *variable.Variable) {
	p.vars[v.Name()] = v
}

// SetStrength changes the strength that subsequent Parse calls build
// constraints at.
func (p *Parser) SetStrength(str strength.Strength) {
	p.str = str
}

// Parse parses src as "expr (= | <= | >=) expr" and returns the resulting
// constraint at the parser's current strength. Returns an error wrapping
// casso.ErrParse on any syntax error or unregistered identifier.
func (p *Parser) Parse(src string) (constraint.Constraint, error) {
	ps := &parseState{lex: newLexer(src), vars: p.vars}
	if err := ps.advance(); err != nil {
		return constraint.Constraint{}, err
	}

	lhs, err := ps.parseExpr()
	if err != nil {
		return constraint.Constraint{}, err
	}

	op, err := ps.parseRelation()
	if err != nil {
		return constraint.Constraint{}, err
	}

	rhs, err := ps.parseExpr()
	if err != nil {
		return constraint.Constraint{}, err
	}

	if ps.cur.kind != tokEOF {
		return constraint.Constraint{}, fmt.Errorf("parser: trailing input at %d: %w", ps.cur.pos, casso.ErrParse)
	}

	return constraint.Build(lhs, rhs, op, p.str), nil
}

type parseState struct {
	lex  *lexer
	cur  token
	vars map[string]*variable.Variable
}

func (ps *parseState) advance() error {
	tok, err := ps.lex.next()
	if err != nil {
		return err
	}
	ps.cur = tok
	return nil
}

func (ps *parseState) expect(k tokenKind) error {
	if ps.cur.kind != k {
		return fmt.Errorf("parser: expected %s, found %s at %d: %w", k, ps.cur.kind, ps.cur.pos, casso.ErrParse)
	}
	return ps.advance()
}

func (ps *parseState) parseRelation() (constraint.Relation, error) {
	switch ps.cur.kind {
	case tokEq:
		if err := ps.advance(); err != nil {
			return 0, err
		}
		return constraint.Eq, nil
	case tokLeq:
		if err := ps.advance(); err != nil {
			return 0, err
		}
		return constraint.Leq, nil
	case tokGeq:
		if err := ps.advance(); err != nil {
			return 0, err
		}
		return constraint.Geq, nil
	default:
		return 0, fmt.Errorf("parser: expected relation, found %s at %d: %w", ps.cur.kind, ps.cur.pos, casso.ErrParse)
	}
}

// parseExpr := term (('+' | '-') term)*
func (ps *parseState) parseExpr() (*Vars, error) {
	lhs, err := ps.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch ps.cur.kind {
		case tokPlus:
			if err := ps.advance(); err != nil {
				return nil, err
			}
			rhs, err := ps.parseTerm()
			if err != nil {
				return nil, err
			}
			lhs.Plus(rhs)
		case tokMinus:
			if err := ps.advance(); err != nil {
				return nil, err
			}
			rhs, err := ps.parseTerm()
			if err != nil {
				return nil, err
			}
			lhs.Minus(rhs)
		default:
			return lhs, nil
		}
	}
}

// parseTerm := factor (('*' | '/') factor)*
func (ps *parseState) parseTerm() (*Vars, error) {
	lhs, err := ps.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		switch ps.cur.kind {
		case tokStar:
			if err := ps.advance(); err != nil {
				return nil, err
			}
			rhs, err := ps.parseFactor()
			if err != nil {
				return nil, err
			}
			if err := lhs.MulExpr(rhs); err != nil {
				return nil, fmt.Errorf("parser: %w: %w", err, casso.ErrParse)
			}
		case tokSlash:
			if err := ps.advance(); err != nil {
				return nil, err
			}
			rhs, err := ps.parseFactor()
			if err != nil {
				return nil, err
			}
			if err := lhs.DivExpr(rhs); err != nil {
				return nil, fmt.Errorf("parser: %w: %w", err, casso.ErrParse)
			}
		default:
			return lhs, nil
		}
	}
}

// parseFactor := NUMBER | IDENT | '(' expr ')' | '-' factor
func (ps *parseState) parseFactor() (*Vars, error) {
	switch ps.cur.kind {
	case tokNumber:
		return ps.parseNumber()
	case tokIdent:
		return ps.parseIdent()
	case tokLParen:
		if err := ps.advance(); err != nil {
			return nil, err
		}
		e, err := ps.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := ps.expect(tokRParen); err != nil {
			return nil, err
		}
		return e, nil
	case tokMinus:
		if err := ps.advance(); err != nil {
			return nil, err
		}
		e, err := ps.parseFactor()
		if err != nil {
			return nil, err
		}
		return e.Scale(-1), nil
	default:
		return nil, fmt.Errorf("parser: unexpected token %s at %d: %w", ps.cur.kind, ps.cur.pos, casso.ErrParse)
	}
}

func (ps *parseState) parseNumber() (*Vars, error) {
	var f float64
	if _, err := fmt.Sscanf(ps.cur.text, "%g", &f); err != nil {
		return nil, fmt.Errorf("parser: bad number %q: %w", ps.cur.text, casso.ErrParse)
	}
	if err := ps.advance(); err != nil {
		return nil, err
	}
	return expr.New[*variable.Variable](f), nil
}

func (ps *parseState) parseIdent() (*Vars, error) {
	v, ok := ps.vars[ps.cur.text]
	if !ok {
		return nil, fmt.Errorf("parser: unregistered variable %q at %d: %w", ps.cur.text, ps.cur.pos, casso.ErrParse)
	}
	if err := ps.advance(); err != nil {
		return nil, err
	}
	return expr.NewTerm[*variable.Variable](v, 1, 0), nil
}
