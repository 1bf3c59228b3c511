package lexer

import (
	"testing"

	"github.com/cwbudde/flame/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestTokenizePunctuators(t *testing.T) {
	tests := []struct {
		src  string
		want []token.Kind
	}{
		{"<<=", []token.Kind{token.LSHIFT_ASSIGN, token.EOF}},
		{">>=", []token.Kind{token.RSHIFT_ASSIGN, token.EOF}},
		{"<<", []token.Kind{token.LSHIFT, token.EOF}},
		{">>", []token.Kind{token.RSHIFT, token.EOF}},
		{"<=", []token.Kind{token.LE, token.EOF}},
		{"::", []token.Kind{token.COLON_COLON, token.EOF}},
		{"..", []token.Kind{token.DOT_DOT, token.EOF}},
		{"->", []token.Kind{token.ARROW, token.EOF}},
		{"< >", []token.Kind{token.LT, token.GT, token.EOF}},
	}
	for _, tt := range tests {
		toks, errs := New("t.fire", []byte(tt.src)).Tokenize()
		if len(errs) != 0 {
			t.Fatalf("%q: unexpected errors: %v", tt.src, errs)
		}
		got := kinds(toks)
		if len(got) != len(tt.want) {
			t.Fatalf("%q: got %v, want %v", tt.src, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: token %d = %v, want %v", tt.src, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
		lit  string
	}{
		{"123", token.INT, "123"},
		{"123.45", token.FLOAT, "123.45"},
		{"10u", token.SIZE, "10u"},
		{"0xFF", token.HEX, "0xFF"},
		{"0b1010", token.BIN, "0b1010"},
	}
	for _, tt := range tests {
		toks, errs := New("t.fire", []byte(tt.src)).Tokenize()
		if len(errs) != 0 {
			t.Fatalf("%q: unexpected errors: %v", tt.src, errs)
		}
		if toks[0].Kind != tt.kind || toks[0].Literal != tt.lit {
			t.Errorf("%q: got (%v, %q), want (%v, %q)", tt.src, toks[0].Kind, toks[0].Literal, tt.kind, tt.lit)
		}
	}
}

func TestTokenizeStringEscape(t *testing.T) {
	toks, errs := New("t.fire", []byte(`"a\nb"`)).Tokenize()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Literal != "a\nb" {
		t.Fatalf("got %q, want %q", toks[0].Literal, "a\nb")
	}
}

func TestTokenizeCharLiteral(t *testing.T) {
	toks, errs := New("t.fire", []byte(`'x'`)).Tokenize()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[0].Kind != token.CHAR || toks[0].Literal != "x" {
		t.Fatalf("got (%v, %q)", toks[0].Kind, toks[0].Literal)
	}
}

func TestTokenizeCharLiteralMustBeSingleCodePoint(t *testing.T) {
	_, errs := New("t.fire", []byte(`'ab'`)).Tokenize()
	if len(errs) == 0 {
		t.Fatal("expected an error for multi-codepoint char literal")
	}
}

func TestUnterminatedStringLiteral(t *testing.T) {
	_, errs := New("t.fire", []byte(`"abc`)).Tokenize()
	if len(errs) != 1 || errs[0].Tag != "UnterminatedLiteral" {
		t.Fatalf("got %v", errs)
	}
}

func TestInvalidEscape(t *testing.T) {
	_, errs := New("t.fire", []byte(`"a\qb"`)).Tokenize()
	if len(errs) != 1 || errs[0].Tag != "InvalidEscape" {
		t.Fatalf("got %v", errs)
	}
}

func TestIdentifiersAreNotKeywordsAtLexTime(t *testing.T) {
	toks, errs := New("t.fire", []byte("fn let class")).Tokenize()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for _, tok := range toks[:3] {
		if tok.Kind != token.IDENT {
			t.Errorf("keyword %q lexed as %v, want IDENT", tok.Literal, tok.Kind)
		}
	}
}

func TestCommentsAreSkippedByDefault(t *testing.T) {
	toks, _ := New("t.fire", []byte("// hi\n123")).Tokenize()
	if toks[0].Kind != token.INT {
		t.Fatalf("expected comment to be skipped, got %v", toks[0].Kind)
	}
}

func TestCommentsPreservedWithOption(t *testing.T) {
	toks, _ := New("t.fire", []byte("// hi\n123"), WithPreserveComments(true)).Tokenize()
	if toks[0].Kind != token.COMMENT_LINE {
		t.Fatalf("expected preserved comment, got %v", toks[0].Kind)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, errs := New("t.fire", []byte("/* never closes")).Tokenize()
	if len(errs) != 1 || errs[0].Tag != "UnterminatedLiteral" {
		t.Fatalf("got %v", errs)
	}
}
