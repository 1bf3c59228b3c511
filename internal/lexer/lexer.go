// Package lexer converts flame source bytes into a token stream.
//
// It never backtracks and never looks ahead across whitespace for
// punctuators (spec §4.1): each token is produced by scanning forward from
// the current position exactly once.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cwbudde/flame/internal/diag"
	"github.com/cwbudde/flame/internal/token"
)

// LexError reports a malformed literal or illegal byte. Tag distinguishes
// the taxonomy entries named in spec §4.1 / §7; Kind is the diagnostic
// severity.
type LexError struct {
	Kind diag.Severity
	Pos  diag.Position
	Tag  string // "UnterminatedLiteral", "InvalidEscape", "IllegalCharacter"
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: lex error: %s", e.Pos.File, e.Pos.Line, e.Pos.Column, e.Msg)
}

func (e *LexError) Diagnostic() *diag.Diagnostic {
	return &diag.Diagnostic{Severity: diag.SeverityError, Pos: e.Pos, Message: e.Msg}
}

// punctuator table, longest match first within each shared prefix so a
// fixed left-to-right scan always finds the longest valid punctuator.
var punctuators = []struct {
	text string
	kind token.Kind
}{
	{"<<=", token.LSHIFT_ASSIGN}, {">>=", token.RSHIFT_ASSIGN},
	{"<<", token.LSHIFT}, {">>", token.RSHIFT},
	{"<=", token.LE}, {">=", token.GE}, {"==", token.EQ}, {"!=", token.NE},
	{"&&", token.AND_AND}, {"||", token.OR_OR}, {"->", token.ARROW}, {"=>", token.FAT_ARROW},
	{"::", token.COLON_COLON}, {"..", token.DOT_DOT},
	{"+=", token.PLUS_ASSIGN}, {"-=", token.MINUS_ASSIGN},
	{"*=", token.STAR_ASSIGN}, {"/=", token.SLASH_ASSIGN},
	{"(", token.LPAREN}, {")", token.RPAREN}, {"{", token.LBRACE}, {"}", token.RBRACE},
	{"[", token.LBRACKET}, {"]", token.RBRACKET}, {",", token.COMMA}, {";", token.SEMI},
	{":", token.COLON}, {".", token.DOT}, {"@", token.AT}, {"=", token.ASSIGN},
	{"+", token.PLUS}, {"-", token.MINUS}, {"*", token.STAR}, {"/", token.SLASH},
	{"%", token.PERCENT}, {"<", token.LT}, {">", token.GT}, {"!", token.BANG},
	{"&", token.AMP}, {"|", token.PIPE}, {"^", token.CARET}, {"~", token.TILDE},
	{"?", token.QUESTION},
}

// Lexer scans a single source file's bytes into tokens.
type Lexer struct {
	file             string
	src              []byte
	sm               *diag.SourceMap
	pos              int
	preserveComments bool
	errs             []*LexError
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithPreserveComments makes the lexer emit COMMENT_LINE/COMMENT_BLOCK
// tokens instead of silently skipping them, for tooling that needs them
// (e.g. a formatter).
func WithPreserveComments(v bool) Option {
	return func(l *Lexer) { l.preserveComments = v }
}

// New creates a Lexer over src, stripping a leading UTF-8 BOM if present.
func New(file string, src []byte, opts ...Option) *Lexer {
	if len(src) >= 3 && src[0] == 0xEF && src[1] == 0xBB && src[2] == 0xBF {
		src = src[3:]
	}
	l := &Lexer{file: file, src: src, sm: diag.New(file, src)}
	for _, o := range opts {
		o(l)
	}
	return l
}

// SourceMap exposes the map built for this file, reused by later stages for
// diagnostic rendering.
func (l *Lexer) SourceMap() *diag.SourceMap { return l.sm }

// Errors returns every lex error accumulated so far.
func (l *Lexer) Errors() []*LexError { return l.errs }

func (l *Lexer) posAt(off int) diag.Position { return l.sm.Position(off) }

func (l *Lexer) peekByte(off int) byte {
	p := l.pos + off
	if p >= len(l.src) {
		return 0
	}
	return l.src[p]
}

// Tokenize scans the entire input and returns its flat token sequence,
// always terminated by a single EOF token, plus any lex errors encountered.
// The lexer does not stop at the first error; it continues so that later
// stages (and tooling) can see as much of the file as possible, while the
// driver still treats a non-empty error slice as a failed file.
func (l *Lexer) Tokenize() ([]token.Token, []*LexError) {
	var toks []token.Token
	for {
		t := l.next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks, l.errs
}

func (l *Lexer) next() token.Token {
	l.skipWhitespace()

	if l.pos >= len(l.src) {
		return l.make(token.EOF, l.pos, l.pos)
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == '/' && l.peekByte(1) == '/':
		return l.lexLineComment(start)
	case c == '/' && l.peekByte(1) == '*':
		return l.lexBlockComment(start)
	case c == '"':
		return l.lexString(start)
	case c == '\'':
		return l.lexChar(start)
	case isDigit(c):
		return l.lexNumber(start)
	case isIdentStart(c):
		return l.lexIdent(start)
	default:
		return l.lexPunct(start)
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.pos++
			continue
		}
		break
	}
}

func (l *Lexer) make(k token.Kind, start, end int) token.Token {
	return token.Token{
		Kind:    k,
		Literal: string(l.src[start:end]),
		Span:    diag.Span{Start: l.posAt(start), End: l.posAt(end)},
	}
}

func (l *Lexer) lexLineComment(start int) token.Token {
	l.pos += 2
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	if l.preserveComments {
		return l.make(token.COMMENT_LINE, start, l.pos)
	}
	if l.pos >= len(l.src) {
		return l.make(token.EOF, l.pos, l.pos)
	}
	return l.next()
}

func (l *Lexer) lexBlockComment(start int) token.Token {
	l.pos += 2
	for l.pos < len(l.src) && !(l.src[l.pos] == '*' && l.peekByte(1) == '/') {
		l.pos++
	}
	if l.pos >= len(l.src) {
		l.errs = append(l.errs, &LexError{Pos: l.posAt(start), Tag: "UnterminatedLiteral", Msg: "unterminated block comment"})
		return l.make(token.COMMENT_BLOCK, start, l.pos)
	}
	l.pos += 2
	if l.preserveComments {
		return l.make(token.COMMENT_BLOCK, start, l.pos)
	}
	return l.next()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }
func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *Lexer) lexIdent(start int) token.Token {
	l.pos++
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	return l.make(token.IDENT, start, l.pos)
}

func (l *Lexer) lexNumber(start int) token.Token {
	if l.src[l.pos] == '0' && (l.peekByte(1) == 'x' || l.peekByte(1) == 'X') {
		l.pos += 2
		for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
			l.pos++
		}
		return l.make(token.HEX, start, l.pos)
	}
	if l.src[l.pos] == '0' && (l.peekByte(1) == 'b' || l.peekByte(1) == 'B') {
		l.pos += 2
		for l.pos < len(l.src) && (l.src[l.pos] == '0' || l.src[l.pos] == '1') {
			l.pos++
		}
		return l.make(token.BIN, start, l.pos)
	}
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	kind := token.INT
	if l.pos < len(l.src) && l.src[l.pos] == '.' && isDigit(l.peekByte(1)) {
		kind = token.FLOAT
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if kind == token.INT && l.pos < len(l.src) && l.src[l.pos] == 'u' {
		l.pos++
		return l.make(token.SIZE, start, l.pos)
	}
	return l.make(kind, start, l.pos)
}

// decodeEscapes processes \n \r \\ \" \' inside a literal body and reports
// invalid escapes. Returns the decoded text.
func (l *Lexer) decodeEscapes(raw string, bodyStart int) (string, bool) {
	var sb strings.Builder
	ok := true
	i := 0
	for i < len(raw) {
		if raw[i] != '\\' {
			sb.WriteByte(raw[i])
			i++
			continue
		}
		if i+1 >= len(raw) {
			l.errs = append(l.errs, &LexError{Pos: l.posAt(bodyStart + i), Tag: "InvalidEscape", Msg: "dangling escape at end of literal"})
			ok = false
			break
		}
		switch raw[i+1] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		default:
			l.errs = append(l.errs, &LexError{Pos: l.posAt(bodyStart + i), Tag: "InvalidEscape", Msg: fmt.Sprintf("invalid escape sequence '\\%c'", raw[i+1])})
			ok = false
		}
		i += 2
	}
	return sb.String(), ok
}

func (l *Lexer) lexString(start int) token.Token {
	l.pos++
	bodyStart := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		if l.src[l.pos] == '\\' {
			l.pos++
		}
		if l.pos < len(l.src) {
			l.pos++
		}
	}
	if l.pos >= len(l.src) {
		l.errs = append(l.errs, &LexError{Pos: l.posAt(start), Tag: "UnterminatedLiteral", Msg: "unterminated string literal"})
		return l.make(token.STRING, start, l.pos)
	}
	raw := string(l.src[bodyStart:l.pos])
	l.pos++ // closing quote
	decoded, _ := l.decodeEscapes(raw, bodyStart)
	return token.Token{Kind: token.STRING, Literal: decoded, Span: diag.Span{Start: l.posAt(start), End: l.posAt(l.pos)}}
}

func (l *Lexer) lexChar(start int) token.Token {
	l.pos++
	bodyStart := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\'' {
		if l.src[l.pos] == '\\' {
			l.pos++
		}
		if l.pos < len(l.src) {
			l.pos++
		}
	}
	if l.pos >= len(l.src) {
		l.errs = append(l.errs, &LexError{Pos: l.posAt(start), Tag: "UnterminatedLiteral", Msg: "unterminated character literal"})
		return l.make(token.CHAR, start, l.pos)
	}
	raw := string(l.src[bodyStart:l.pos])
	l.pos++
	decoded, _ := l.decodeEscapes(raw, bodyStart)
	if utf8.RuneCountInString(decoded) != 1 {
		l.errs = append(l.errs, &LexError{Pos: l.posAt(start), Tag: "InvalidEscape", Msg: "character literal must contain exactly one code point"})
	}
	return token.Token{Kind: token.CHAR, Literal: decoded, Span: diag.Span{Start: l.posAt(start), End: l.posAt(l.pos)}}
}

func (l *Lexer) lexPunct(start int) token.Token {
	remaining := l.src[l.pos:]
	for _, p := range punctuators {
		if strings.HasPrefix(string(remaining), p.text) {
			l.pos += len(p.text)
			return l.make(p.kind, start, l.pos)
		}
	}
	l.errs = append(l.errs, &LexError{Pos: l.posAt(start), Tag: "IllegalCharacter", Msg: fmt.Sprintf("illegal character %q", l.src[start])})
	l.pos++
	return l.make(token.ILLEGAL, start, l.pos)
}
