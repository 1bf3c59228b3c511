package parser

import "github.com/cwbudde/flame/internal/token"

// Cursor is an index-based navigation cursor over a fully buffered token
// slice. The teacher's cursor abstraction (internal/parser/cursor.go in the
// reference DWScript front end) wraps a *streaming* lexer and buffers tokens
// lazily as callers Peek/Advance past what has been fetched so far; flame's
// Lexer.Tokenize already scans the whole file eagerly (spec §4.1 has no
// notion of partial/incremental lexing), so Cursor here is the same
// Peek/Advance/Is/Skip/Mark surface adapted to a fixed, pre-populated
// slice rather than a growable one.
type Cursor struct {
	toks []token.Token
	pos  int
}

// NewCursor wraps a token slice that must end with an EOF token (as
// Lexer.Tokenize guarantees).
func NewCursor(toks []token.Token) *Cursor {
	if len(toks) == 0 {
		toks = []token.Token{{Kind: token.EOF}}
	}
	return &Cursor{toks: toks}
}

func (c *Cursor) at(i int) token.Token {
	if i < 0 {
		i = 0
	}
	if i >= len(c.toks) {
		i = len(c.toks) - 1
	}
	return c.toks[i]
}

// Current returns the token at the cursor's position.
func (c *Cursor) Current() token.Token { return c.at(c.pos) }

// Peek returns the token n positions ahead; Peek(0) == Current().
func (c *Cursor) Peek(n int) token.Token { return c.at(c.pos + n) }

// Advance consumes and returns the current token, moving the cursor forward
// by one unless already at EOF.
func (c *Cursor) Advance() token.Token {
	t := c.Current()
	if c.pos < len(c.toks)-1 {
		c.pos++
	}
	return t
}

// Is reports whether the current token has kind k.
func (c *Cursor) Is(k token.Kind) bool { return c.Current().Kind == k }

// IsAny reports whether the current token matches any of ks.
func (c *Cursor) IsAny(ks ...token.Kind) bool {
	cur := c.Current().Kind
	for _, k := range ks {
		if cur == k {
			return true
		}
	}
	return false
}

// PeekIs reports whether the token n positions ahead has kind k.
func (c *Cursor) PeekIs(n int, k token.Kind) bool { return c.Peek(n).Kind == k }

// IsKeyword reports whether the current token is the IDENT-lexed keyword kw
// (spec §4.1: "keywords are not reserved at lex time").
func (c *Cursor) IsKeyword(kw string) bool { return c.Current().IsKeyword(kw) }

// PeekIsKeyword reports whether the token n positions ahead is keyword kw.
func (c *Cursor) PeekIsKeyword(n int, kw string) bool {
	t := c.Peek(n)
	return t.Kind == token.IDENT && t.Literal == kw
}

// Skip advances past the current token if it has kind k.
func (c *Cursor) Skip(k token.Kind) bool {
	if c.Is(k) {
		c.Advance()
		return true
	}
	return false
}

// Mark is a lightweight saved cursor position for backtracking.
type Mark int

// Mark saves the current position.
func (c *Cursor) Mark() Mark { return Mark(c.pos) }

// ResetTo restores a previously saved position.
func (c *Cursor) ResetTo(m Mark) { c.pos = int(m) }

// IsEOF reports whether the cursor has reached the end of the stream.
func (c *Cursor) IsEOF() bool { return c.Is(token.EOF) }
