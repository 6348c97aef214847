package literal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLBracket
	TokenRBracket
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenColon
	TokenPlus
	TokenMinus
	TokenInt
	TokenFloat
	TokenString
	TokenIdent
)

var tokenNames = map[TokenType]string{
	TokenEOF:      "end of input",
	TokenLBracket: "'['",
	TokenRBracket: "']'",
	TokenLParen:   "'('",
	TokenRParen:   "')'",
	TokenLBrace:   "'{'",
	TokenRBrace:   "'}'",
	TokenComma:    "','",
	TokenColon:    "':'",
	TokenPlus:     "'+'",
	TokenMinus:    "'-'",
	TokenInt:      "integer",
	TokenFloat:    "float",
	TokenString:   "string",
	TokenIdent:    "identifier",
}

var punctuation = map[byte]TokenType{
	'[': TokenLBracket, ']': TokenRBracket,
	'(': TokenLParen, ')': TokenRParen,
	'{': TokenLBrace, '}': TokenRBrace,
	',': TokenComma, ':': TokenColon,
	'+': TokenPlus, '-': TokenMinus,
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a lexical token. For strings Text holds the decoded value; for
// everything else it is the source text.
type Token struct {
	Type TokenType
	Text string
	Pos  int // byte offset in the input
}

// SyntaxError reports malformed literal text.
type SyntaxError struct {
	Offset  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
}

// Lexer tokenizes literal text.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) errorf(pos int, format string, args ...any) error {
	return &SyntaxError{Offset: pos, Message: fmt.Sprintf(format, args...)}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() (Token, error) {
	for !l.atEOF() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.readChar()
	}
	pos := l.pos
	if l.atEOF() {
		return Token{Type: TokenEOF, Pos: pos}, nil
	}

	if tt, ok := punctuation[l.ch]; ok {
		l.readChar()
		return Token{Type: tt, Text: l.input[pos:l.pos], Pos: pos}, nil
	}

	switch {
	case l.ch == '\'' || l.ch == '"':
		return l.readString()
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		return l.readNumber()
	case isIdentStart(l.ch):
		for !l.atEOF() && (isIdentStart(l.ch) || isDigit(l.ch)) {
			l.readChar()
		}
		return Token{Type: TokenIdent, Text: l.input[pos:l.pos], Pos: pos}, nil
	}

	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return Token{}, l.errorf(pos, "unexpected character %q", r)
}

// readNumber reads an integer or float literal. Underscores between digits
// and 0x/0o/0b integer prefixes are accepted.
func (l *Lexer) readNumber() (Token, error) {
	pos := l.pos

	if l.ch == '0' && strings.ContainsRune("xXoObB", rune(l.peekChar())) {
		l.readChar()
		l.readChar()
		for !l.atEOF() && (isHexDigit(l.ch) || l.ch == '_') {
			l.readChar()
		}
		return l.numberToken(pos, TokenInt)
	}

	tt := TokenInt
	l.readDigits()
	if l.ch == '.' {
		tt = TokenFloat
		l.readChar()
		l.readDigits()
	}
	if l.ch == 'e' || l.ch == 'E' {
		tt = TokenFloat
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			return Token{}, l.errorf(pos, "malformed exponent in %q", l.input[pos:l.pos])
		}
		l.readDigits()
	}
	return l.numberToken(pos, tt)
}

func (l *Lexer) readDigits() {
	for !l.atEOF() && (isDigit(l.ch) || l.ch == '_') {
		l.readChar()
	}
}

// numberToken validates the number just read and rejects trailing letters
// such as 12abc.
func (l *Lexer) numberToken(pos int, tt TokenType) (Token, error) {
	text := l.input[pos:l.pos]
	if !l.atEOF() && (isIdentStart(l.ch) || l.ch == '.') {
		return Token{}, l.errorf(pos, "invalid number %q", text+string(l.ch))
	}
	if strings.HasPrefix(text, "_") || strings.HasSuffix(text, "_") || strings.Contains(text, "__") {
		return Token{}, l.errorf(pos, "invalid underscore in number %q", text)
	}
	if tt == TokenInt && len(text) > 1 && text[0] == '0' && isDigit(text[1]) {
		return Token{}, l.errorf(pos, "leading zeros in integer %q", text)
	}
	return Token{Type: tt, Text: text, Pos: pos}, nil
}

// readString reads a single- or double-quoted string and resolves escapes.
func (l *Lexer) readString() (Token, error) {
	pos := l.pos
	quote := l.ch
	l.readChar()

	var b strings.Builder
	for {
		if l.atEOF() || l.ch == '\n' {
			return Token{}, l.errorf(pos, "unterminated string")
		}
		if l.ch == quote {
			l.readChar()
			return Token{Type: TokenString, Text: b.String(), Pos: pos}, nil
		}
		if l.ch != '\\' {
			b.WriteByte(l.ch)
			l.readChar()
			continue
		}

		escPos := l.pos
		l.readChar()
		switch l.ch {
		case '\\', '\'', '"':
			b.WriteByte(l.ch)
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case 'x', 'u':
			width := 2
			if l.ch == 'u' {
				width = 4
			}
			start := l.readPos
			end := start + width
			if end > len(l.input) {
				return Token{}, l.errorf(escPos, "truncated \\%c escape", l.ch)
			}
			n, err := strconv.ParseUint(l.input[start:end], 16, 32)
			if err != nil {
				return Token{}, l.errorf(escPos, "invalid \\%c escape %q", l.ch, l.input[start:end])
			}
			b.WriteRune(rune(n))
			for range width {
				l.readChar()
			}
		default:
			return Token{}, l.errorf(escPos, "unknown escape \\%c", l.ch)
		}
		l.readChar()
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
