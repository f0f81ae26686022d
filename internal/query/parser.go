package query

import (
	"fmt"

	"github.com/jamesblissett/tagfs/internal/validate"
)

// Parse parses a tag-query expression given as one whitespace-tokenized
// string (the form a stored query or a CLI argument arrives in). An empty
// or whitespace-only string is valid and yields a nil Expr (the empty
// expression).
func Parse(expr string) (Expr, error) {
	return parseTokens(lex(expr))
}

// ParseWords parses a tag-query expression given as a sequence of
// already-split words - the form a query-construction directory's path
// segments arrive in, one DSL token per segment. Unlike Parse, a tag
// value's internal spaces never cause mis-tokenization, since segment
// boundaries are the filesystem's, not whitespace's. A nil/empty slice
// yields a nil Expr.
func ParseWords(words []string) (Expr, error) {
	return parseTokens(lexWords(words))
}

func parseTokens(tokens []token) (Expr, error) {
	p := &parser{tokens: tokens}
	if p.peek().kind == tokEOF {
		return nil, nil
	}

	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, &ParseError{Err: ErrUnexpectedToken, Offset: p.peek().offset, Detail: fmt.Sprintf("trailing input %q", p.peek().text)}
	}
	return e, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// parseOr := andExpr ("or" andExpr)*
func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{L: left, R: right}
	}
	return left, nil
}

// parseAnd := notExpr ("and" notExpr)*
func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = And{L: left, R: right}
	}
	return left, nil
}

// parseNot := "not" notExpr | "(" orExpr ")" | tag
func (p *parser) parseNot() (Expr, error) {
	switch t := p.peek(); t.kind {
	case tokNot:
		p.next()
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return Not{X: x}, nil

	case tokLParen:
		open := p.next()
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, &ParseError{Err: ErrUnterminatedGroup, Offset: open.offset, Detail: "missing closing )"}
		}
		p.next()
		return e, nil

	case tokTag:
		p.next()
		text, err := validate.Tag(t.text)
		if err != nil {
			return nil, &ParseError{Err: ErrInvalidTag, Offset: t.offset, Detail: t.text}
		}
		return Tag{Text: text}, nil

	case tokRParen:
		return nil, &ParseError{Err: ErrUnexpectedToken, Offset: t.offset, Detail: "unmatched )"}

	default:
		return nil, &ParseError{Err: ErrUnexpectedToken, Offset: t.offset, Detail: fmt.Sprintf("expected a tag, \"(\", or \"not\", got %q", t.text)}
	}
}
