package literal

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 256

// Parser is a recursive-descent parser over Lexer tokens.
type Parser struct {
	lex   *Lexer
	cur   Token
	depth int
}

// Parse parses input as a single literal value. Trailing input after the
// value is an error.
func Parse(input string) (Value, error) {
	p := &Parser{lex: NewLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TokenEOF {
		return nil, p.unexpected("end of input")
	}
	return v, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) unexpected(want string) error {
	got := p.cur.Type.String()
	if p.cur.Type != TokenEOF && p.cur.Text != "" {
		got = fmt.Sprintf("%s %q", got, p.cur.Text)
	}
	return &SyntaxError{Offset: p.cur.Pos, Message: fmt.Sprintf("expected %s, got %s", want, got)}
}

func (p *Parser) parseValue() (Value, error) {
	switch p.cur.Type {
	case TokenLBracket, TokenLParen, TokenLBrace:
		p.depth++
		defer func() { p.depth-- }()
		if p.depth > maxDepth {
			return nil, &SyntaxError{Offset: p.cur.Pos, Message: fmt.Sprintf("nesting deeper than %d", maxDepth)}
		}
	}

	switch p.cur.Type {
	case TokenLBracket:
		vals, _, err := p.parseSequence(TokenRBracket)
		if err != nil {
			return nil, err
		}
		return List(vals), nil
	case TokenLParen:
		vals, trailingComma, err := p.parseSequence(TokenRParen)
		if err != nil {
			return nil, err
		}
		if len(vals) == 1 && !trailingComma {
			return vals[0], nil
		}
		return Tuple(vals), nil
	case TokenLBrace:
		return p.parseDict()
	case TokenPlus, TokenMinus:
		return p.parseSigned()
	case TokenInt, TokenFloat:
		return p.parseNumber(false)
	case TokenString:
		s := Str(p.cur.Text)
		return s, p.advance()
	case TokenIdent:
		var v Value
		switch p.cur.Text {
		case "True":
			v = Bool(true)
		case "False":
			v = Bool(false)
		case "None":
			v = None{}
		default:
			return nil, &SyntaxError{Offset: p.cur.Pos, Message: fmt.Sprintf("unknown name %q", p.cur.Text)}
		}
		return v, p.advance()
	default:
		return nil, p.unexpected("a value")
	}
}

// parseSequence parses comma-separated values up to the closing token. It
// reports whether the last element was followed by a comma, which is what
// distinguishes (x,) from (x).
func (p *Parser) parseSequence(closing TokenType) ([]Value, bool, error) {
	if err := p.advance(); err != nil {
		return nil, false, err
	}
	vals := []Value{}
	trailingComma := false
	for p.cur.Type != closing {
		v, err := p.parseValue()
		if err != nil {
			return nil, false, err
		}
		vals = append(vals, v)
		trailingComma = false

		switch p.cur.Type {
		case TokenComma:
			trailingComma = true
			if err := p.advance(); err != nil {
				return nil, false, err
			}
		case closing:
		default:
			return nil, false, p.unexpected("',' or " + closing.String())
		}
	}
	return vals, trailingComma, p.advance()
}

func (p *Parser) parseDict() (Value, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	d := Dict{}
	for p.cur.Type != TokenRBrace {
		key, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != TokenColon {
			return nil, p.unexpected("':'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		d = append(d, DictEntry{Key: key, Value: val})

		switch p.cur.Type {
		case TokenComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case TokenRBrace:
		default:
			return nil, p.unexpected("',' or '}'")
		}
	}
	return d, p.advance()
}

// parseSigned handles unary + and - in front of a number.
func (p *Parser) parseSigned() (Value, error) {
	negative := p.cur.Type == TokenMinus
	signPos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Type != TokenInt && p.cur.Type != TokenFloat {
		return nil, &SyntaxError{Offset: signPos, Message: "sign must be followed by a number"}
	}
	return p.parseNumber(negative)
}

func (p *Parser) parseNumber(negative bool) (Value, error) {
	tok := p.cur
	text := strings.ReplaceAll(tok.Text, "_", "")
	if negative {
		text = "-" + text
	}

	var v Value
	if tok.Type == TokenFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil && !math.IsInf(f, 0) {
			return nil, &SyntaxError{Offset: tok.Pos, Message: fmt.Sprintf("invalid float %q", tok.Text)}
		}
		v = Float(f)
	} else {
		n, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			msg := fmt.Sprintf("invalid integer %q", tok.Text)
			if errors.Is(err, strconv.ErrRange) {
				msg = fmt.Sprintf("integer %s out of int64 range", text)
			}
			return nil, &SyntaxError{Offset: tok.Pos, Message: msg}
		}
		v = Int(n)
	}
	return v, p.advance()
}
