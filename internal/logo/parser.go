// Package logo turns Logo source into drawing instructions.
package logo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrUnknownCommand    = errors.New("unknown command")
	ErrExpectedNumber    = errors.New("expected a number")
	ErrUnbalancedBracket = errors.New("unbalanced bracket")
	ErrTooManySteps      = errors.New("program produces too many instructions")
	ErrOutOfRange        = errors.New("number out of range")
	ErrBadRepeatCount    = errors.New("repeat count must be a whole number")
)

// MaxMagnitude bounds distances and angles.
const MaxMagnitude = 1e9

// ParseError locates a problem in the source by token position.
type ParseError struct {
	Pos   int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v at end of input", e.Err)
	}
	return fmt.Sprintf("%v: %q (token %d)", e.Err, e.Token, e.Pos+1)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type op int

const (
	opForward op = iota
	opBack
	opLeft
	opRight
	opRepeat
	opClear
	opHome
)

var commands = map[string]op{
	"forward":     opForward,
	"fd":          opForward,
	"back":        opBack,
	"bk":          opBack,
	"left":        opLeft,
	"lt":          opLeft,
	"right":       opRight,
	"rt":          opRight,
	"repeat":      opRepeat,
	"clearscreen": opClear,
	"cs":          opClear,
	"home":        opHome,
}

type statement struct {
	op   op
	arg  float64
	body []statement
}

// Program is parsed Logo source, ready to run against a turtle.
type Program struct {
	statements []statement
}

func (p *Program) Empty() bool {
	return len(p.statements) == 0
}

func tokenize(src string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for _, r := range src {
		switch {
		case r == '[' || r == ']':
			flush()
			tokens = append(tokens, string(r))
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

type parser struct {
	tokens []string
	pos    int
}

// Parse reads a whole program. Nothing is executed when it fails.
func Parse(src string) (*Program, error) {
	p := &parser{tokens: tokenize(src)}
	stmts, err := p.block(false)
	if err != nil {
		return nil, err
	}
	return &Program{statements: stmts}, nil
}

func (p *parser) fail(err error) error {
	tok := ""
	if p.pos < len(p.tokens) {
		tok = p.tokens[p.pos]
	}
	return &ParseError{Pos: p.pos, Token: tok, Err: err}
}

func (p *parser) block(nested bool) ([]statement, error) {
	var stmts []statement
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok == "]" {
			if !nested {
				return nil, p.fail(ErrUnbalancedBracket)
			}
			p.pos++
			return stmts, nil
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if nested {
		return nil, p.fail(ErrUnbalancedBracket)
	}
	return stmts, nil
}

func (p *parser) statement() (statement, error) {
	word := strings.ToLower(p.tokens[p.pos])
	kind, ok := commands[word]
	if !ok {
		return statement{}, p.fail(ErrUnknownCommand)
	}
	p.pos++

	switch kind {
	case opClear, opHome:
		return statement{op: kind}, nil
	case opRepeat:
		n, err := p.number()
		if err != nil {
			return statement{}, err
		}
		if n < 0 || n != math.Trunc(n) {
			p.pos--
			return statement{}, p.fail(ErrBadRepeatCount)
		}
		if p.pos >= len(p.tokens) || p.tokens[p.pos] != "[" {
			return statement{}, p.fail(ErrUnbalancedBracket)
		}
		p.pos++
		body, err := p.block(true)
		if err != nil {
			return statement{}, err
		}
		return statement{op: kind, arg: n, body: body}, nil
	default:
		n, err := p.number()
		if err != nil {
			return statement{}, err
		}
		if math.Abs(n) > MaxMagnitude {
			p.pos--
			return statement{}, p.fail(ErrOutOfRange)
		}
		return statement{op: kind, arg: n}, nil
	}
}

func (p *parser) number() (float64, error) {
	if p.pos >= len(p.tokens) {
		return 0, p.fail(ErrExpectedNumber)
	}
	n, err := strconv.ParseFloat(p.tokens[p.pos], 64)
	// ParseFloat accepts "nan" and "inf"
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, p.fail(ErrExpectedNumber)
	}
	p.pos++
	return n, nil
}
