/*
Copyright 2016-2017 by Milo Christiansen

This software is provided 'as-is', without any express or implied warranty. In
no event will the authors be held liable for any damages arising from the use of
this software.

Permission is granted to anyone to use this software for any purpose, including
commercial applications, and to alter it and redistribute it freely, subject to
the following restrictions:

1. The origin of this software must not be misrepresented; you must not claim
that you wrote the original software. If you use this software in a product, an
acknowledgment in the product documentation would be appreciated but is not
required.

2. Altered source versions must be plainly marked as such, and must not be
misrepresented as being the original software.

3. This notice may not be removed or altered from any source distribution.
*/

package lex

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/milochristiansen/minilua/luautil"
)

// scanAll returns every token up to and including EOF.
func scanAll(t *testing.T, src string) []Token {
	t.Helper()

	lex := NewScanner(strings.NewReader(src))
	toks := []Token{}
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("Unexpected error scanning %q: %v", src, err)
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func sameKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOperators(t *testing.T) {
	tests := []struct {
		src  string
		want []Kind
	}{
		{"1 == 2", []Kind{Int, Equal, Int, EOF}},
		{"1 ~= 2", []Kind{Int, NotEq, Int, EOF}},
		{"a = b", []Kind{Name, Assign, Name, EOF}},
		{"~ =", []Kind{BitXor, Assign, EOF}},
		{"// /", []Kind{IDiv, Div, EOF}},
		{"<= < << >= > >>", []Kind{LessEq, Less, ShiftL, GreaterEq, Greater, ShiftR, EOF}},
		{":: :", []Kind{DoubleColon, Colon, EOF}},
		{"... .. .", []Kind{Dots, Concat, Dot, EOF}},
		{"a.b", []Kind{Name, Dot, Name, EOF}},
		{"+-*%^#&|", []Kind{Add, Sub, Mul, Mod, Pow, Len, BitAnd, BitOr, EOF}},
		{"(){}[];,", []Kind{ParL, ParR, CurlyL, CurlyR, SquareL, SquareR, SemiColon, Comma, EOF}},
		{"<", []Kind{Less, EOF}},
		{"=", []Kind{Assign, EOF}},
	}

	for _, tt := range tests {
		got := kinds(scanAll(t, tt.src))
		if !sameKinds(got, tt.want) {
			t.Errorf("%q: got %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestComments(t *testing.T) {
	toks := scanAll(t, "--comment\nreturn")
	if !sameKinds(kinds(toks), []Kind{Return, EOF}) {
		t.Fatalf("got %v", kinds(toks))
	}
	if toks[0].Line != 2 {
		t.Errorf("return on line %d, want 2", toks[0].Line)
	}

	toks = scanAll(t, "a -- trailing comment")
	if !sameKinds(kinds(toks), []Kind{Name, EOF}) {
		t.Errorf("got %v", kinds(toks))
	}

	toks = scanAll(t, "a - b")
	if !sameKinds(kinds(toks), []Kind{Name, Sub, Name, EOF}) {
		t.Errorf("got %v", kinds(toks))
	}
}

func TestKeywords(t *testing.T) {
	for word, k := range keywords {
		toks := scanAll(t, word)
		if toks[0].Kind != k {
			t.Errorf("%q scanned as %v", word, toks[0].Kind)
		}
		if toks[0].Kind.String() != word {
			t.Errorf("%v does not print as %q", k, word)
		}
	}

	toks := scanAll(t, "locals _local local1 Local")
	for _, tok := range toks[:4] {
		if tok.Kind != Name {
			t.Errorf("%v should be a name", tok)
		}
	}
	if toks[3].Text != "Local" {
		t.Errorf("got %q", toks[3].Text)
	}
}

func TestLiterals(t *testing.T) {
	toks := scanAll(t, `x1 = 42 3.5 .25 "dq" 'sq' "" 9223372036854775807`)
	want := []Token{
		{Kind: Name, Text: "x1", Line: 1},
		{Kind: Assign, Line: 1},
		{Kind: Int, Int: 42, Line: 1},
		{Kind: Float, Float: 3.5, Line: 1},
		{Kind: Float, Float: 0.25, Line: 1},
		{Kind: String, Text: "dq", Line: 1},
		{Kind: String, Text: "sq", Line: 1},
		{Kind: String, Text: "", Line: 1},
		{Kind: Int, Int: 9223372036854775807, Line: 1},
		{Kind: EOF, Line: 1},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %v tokens, want %v", len(toks), len(want))
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d: got %#v, want %#v", i, toks[i], want[i])
		}
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"a'b"`, `a'b`},
		{`'a"b'`, `a"b`},
		{`"a\"b"`, `a\"b`},
		{`"tab\there"`, `tab\there`},
		{`"héllo"`, `héllo`},
		{"\"a\xffb\"", "a\xffb"},
		{"'\xc3\x28\xe2\x82'", "\xc3\x28\xe2\x82"},
	}
	for _, tt := range tests {
		toks := scanAll(t, tt.src)
		if toks[0].Kind != String || toks[0].Text != tt.want {
			t.Errorf("%s: got %#v, want %q", tt.src, toks[0], tt.want)
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []string{
		`"abc`,
		"'abc\ndef'",
		"$",
		"a ! b",
		"1.2.3",
		"0x10",
		"1e5",
		"99999999999999999999",
	}

	for _, src := range tests {
		lex := NewScanner(strings.NewReader(src))
		var err error
		for i := 0; i < 10 && err == nil; i++ {
			var tok Token
			tok, err = lex.Next()
			if tok.Kind == EOF {
				break
			}
		}
		if err == nil {
			t.Errorf("%q: expected an error", src)
			continue
		}
		if typ := luautil.TypeOf(err); typ != luautil.ErrTypGenLexer {
			t.Errorf("%q: got %v, want a scan error", src, typ)
		}
	}
}

func TestPeek(t *testing.T) {
	lex := NewScanner(strings.NewReader("a = 1"))

	p1, err := lex.Peek()
	if err != nil {
		t.Fatal(err)
	}
	p2, _ := lex.Peek()
	if p1 != p2 || p1.Kind != Name {
		t.Fatalf("repeated peek returned %v then %v", p1, p2)
	}

	n, _ := lex.Next()
	if n != p1 {
		t.Errorf("next returned %v after peeking %v", n, p1)
	}
	n, _ = lex.Next()
	if n.Kind != Assign {
		t.Errorf("got %v, want =", n)
	}
	n, _ = lex.Next()
	if n.Kind != Int || n.Int != 1 {
		t.Errorf("got %v, want 1", n)
	}

	// EOF is sticky.
	for i := 0; i < 3; i++ {
		n, _ = lex.Peek()
		if n.Kind != EOF {
			t.Errorf("got %v, want EOF", n)
		}
		n, _ = lex.Next()
		if n.Kind != EOF {
			t.Errorf("got %v, want EOF", n)
		}
	}
}

func TestLines(t *testing.T) {
	toks := scanAll(t, "a\nb\r\n\n  c -- x\nd")
	lines := []int{1, 2, 4, 5}
	for i, want := range lines {
		if toks[i].Line != want {
			t.Errorf("%v on line %d, want %d", toks[i], toks[i].Line, want)
		}
	}
}

func TestExpected(t *testing.T) {
	err := Expected(Token{Kind: Int, Int: 5, Line: 3}, ParL, String)
	want := "Line 3: Invalid token: Found: <integer> (Lexeme: 5). Expected: ( or <string>."
	if err.Error() != want {
		t.Errorf("got %q\nwant %q", err.Error(), want)
	}

	err = Expected(Token{Kind: Add}, Nil, True, Name)
	want = "Invalid token: Found: +. Expected: nil, true, or <identifier>."
	if err.Error() != want {
		t.Errorf("got %q\nwant %q", err.Error(), want)
	}

	if luautil.TypeOf(err) != luautil.ErrTypGenSyntax {
		t.Errorf("got %v", luautil.TypeOf(err))
	}

	// Long lexemes are cut after 17 chars, not 17 bytes.
	tok := Token{Kind: String, Text: strings.Repeat("ä", 25)}
	want = "<string> (Lexeme: " + strings.Repeat("ä", 17) + "...)"
	if tok.String() != want {
		t.Errorf("got %q\nwant %q", tok.String(), want)
	}
	if !utf8.ValidString(tok.String()) {
		t.Errorf("invalid UTF-8: %q", tok.String())
	}
}

func TestNulEndsInput(t *testing.T) {
	toks := scanAll(t, "a\x00b = 1")
	if !sameKinds(kinds(toks), []Kind{Name, EOF}) {
		t.Errorf("got %v", kinds(toks))
	}

	lex := NewScanner(strings.NewReader("\x00print"))
	for i := 0; i < 3; i++ {
		tok, err := lex.Next()
		if err != nil || tok.Kind != EOF {
			t.Errorf("got %v, %v", tok, err)
		}
	}
}
