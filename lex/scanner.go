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

// Package lex turns source text into tokens.
//
// The scanner is a simple character dispatch loop with one token of lookahead (Peek) and one character of
// pushback, which is all the grammar (and the two character operators) ever needs.
package lex

import "bufio"
import "io"
import "strings"
import "unicode/utf8"

import "github.com/milochristiansen/minilua/luautil"

// eos is returned by the character reader once the input is exhausted.
const eos = '\000'

// Scanner produces Tokens on demand from a character stream.
type Scanner struct {
	source *bufio.Reader

	line int

	char rune // The last char read, so it can be pushed back.
	back bool // If true the next read returns char again.
	done bool // Set once eos is read, the source is never touched again.

	raw    bool // char stands in for a byte that is not valid UTF-8.
	rawVal byte

	ahead    Token
	hasAhead bool
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		source: bufio.NewReader(r),
		line:   1,
	}
}

// Next consumes and returns the next token.
func (lex *Scanner) Next() (Token, error) {
	if lex.hasAhead {
		lex.hasAhead = false
		return lex.ahead, nil
	}
	return lex.advance()
}

// Peek returns the token the next call to Next will return, without consuming it.
func (lex *Scanner) Peek() (Token, error) {
	if !lex.hasAhead {
		tok, err := lex.advance()
		if err != nil {
			return tok, err
		}
		lex.ahead, lex.hasAhead = tok, true
	}
	return lex.ahead, nil
}

func (lex *Scanner) advance() (Token, error) {
	for {
		ch, err := lex.nextchar()
		if err != nil {
			return Token{}, err
		}

		switch ch {
		case ' ', '\t', '\r', '\n':
			continue
		case eos:
			return lex.makeToken(EOF), nil
		case '"', '\'':
			return lex.matchString(ch)
		case '+':
			return lex.makeToken(Add), nil
		case '-':
			ok, err := lex.nmatch('-')
			if err != nil {
				return Token{}, err
			}
			if !ok {
				return lex.makeToken(Sub), nil
			}
			if err := lex.eatComment(); err != nil {
				return Token{}, err
			}
			continue
		case '*':
			return lex.makeToken(Mul), nil
		case '/':
			return lex.either('/', IDiv, Div)
		case '%':
			return lex.makeToken(Mod), nil
		case '^':
			return lex.makeToken(Pow), nil
		case '#':
			return lex.makeToken(Len), nil
		case '&':
			return lex.makeToken(BitAnd), nil
		case '~':
			return lex.either('=', NotEq, BitXor)
		case '|':
			return lex.makeToken(BitOr), nil
		case '<':
			ok, err := lex.nmatch('<')
			if err != nil {
				return Token{}, err
			}
			if ok {
				return lex.makeToken(ShiftL), nil
			}
			return lex.either('=', LessEq, Less)
		case '>':
			ok, err := lex.nmatch('>')
			if err != nil {
				return Token{}, err
			}
			if ok {
				return lex.makeToken(ShiftR), nil
			}
			return lex.either('=', GreaterEq, Greater)
		case '=':
			return lex.either('=', Equal, Assign)
		case '(':
			return lex.makeToken(ParL), nil
		case ')':
			return lex.makeToken(ParR), nil
		case '{':
			return lex.makeToken(CurlyL), nil
		case '}':
			return lex.makeToken(CurlyR), nil
		case '[':
			return lex.makeToken(SquareL), nil
		case ']':
			return lex.makeToken(SquareR), nil
		case ';':
			return lex.makeToken(SemiColon), nil
		case ':':
			return lex.either(':', DoubleColon, Colon)
		case ',':
			return lex.makeToken(Comma), nil
		case '.':
			next, err := lex.nextchar()
			if err != nil {
				return Token{}, err
			}
			switch {
			case next == '.':
				return lex.either('.', Dots, Concat)
			case matchNumeric(next):
				lex.backchar()
				return lex.matchNumber(ch)
			}
			lex.backchar()
			return lex.makeToken(Dot), nil
		}

		switch {
		case matchNumeric(ch):
			return lex.matchNumber(ch)
		case matchAlpha(ch):
			return lex.matchName(ch)
		}
		return Token{}, lex.raise("Illegal character '" + string(ch) + "' while lexing source")
	}
}

// nextchar reads the next char (actually a Unicode code point). Once the input is exhausted (or a NUL is
// read) eos is returned forever.
func (lex *Scanner) nextchar() (rune, error) {
	if lex.back {
		lex.back = false
		return lex.char, nil
	}
	if lex.done {
		return eos, nil
	}
	if lex.char == '\n' {
		lex.line++
	}

	ch, size, err := lex.source.ReadRune()
	if err != nil {
		if err != io.EOF {
			return eos, luautil.Error{Msg: "Error reading source", Type: luautil.ErrTypWrapped, Err: err, Line: lex.line}
		}
		ch = eos
	}
	lex.raw = ch == utf8.RuneError && size == 1
	if lex.raw {
		lex.source.UnreadRune()
		lex.rawVal, _ = lex.source.ReadByte()
	}
	lex.done = ch == eos
	lex.char = ch
	return ch, nil
}

// backchar steps back one char, so the next read returns the last char again. Only one char may be pushed
// back at a time.
func (lex *Scanner) backchar() {
	lex.back = true
}

// nmatch reads the next char and returns true if it is want, otherwise the char is pushed back.
func (lex *Scanner) nmatch(want rune) (bool, error) {
	ch, err := lex.nextchar()
	if err != nil {
		return false, err
	}
	if ch == want {
		return true, nil
	}
	lex.backchar()
	return false, nil
}

// either returns a long token if the next char is want, else the short token.
func (lex *Scanner) either(want rune, long, short Kind) (Token, error) {
	ok, err := lex.nmatch(want)
	if err != nil {
		return Token{}, err
	}
	if ok {
		return lex.makeToken(long), nil
	}
	return lex.makeToken(short), nil
}

func (lex *Scanner) makeToken(k Kind) Token {
	return Token{Kind: k, Line: lex.line}
}

func (lex *Scanner) raise(msg string) error {
	return luautil.Error{Msg: msg, Type: luautil.ErrTypGenLexer, Line: lex.line}
}

// eatComment discards the rest of a line comment, the newline included.
func (lex *Scanner) eatComment() error {
	for {
		ch, err := lex.nextchar()
		if err != nil {
			return err
		}
		if ch == '\n' || ch == eos {
			return nil
		}
	}
}

func matchAlpha(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func matchNumeric(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// matchString reads a string literal, the opening quote has already been read.
//
// Escapes are not interpreted, the only special case is a quote directly after a backslash, which is kept
// (along with the backslash) instead of ending the string. Bytes that are not valid UTF-8 are kept as is.
func (lex *Scanner) matchString(delim rune) (Token, error) {
	line := lex.line
	lexeme := new(strings.Builder)
	for {
		ch, err := lex.nextchar()
		if err != nil {
			return Token{}, err
		}

		switch ch {
		case delim:
			if strings.HasSuffix(lexeme.String(), "\\") {
				lexeme.WriteRune(ch)
				continue
			}
			return Token{Kind: String, Text: lexeme.String(), Line: line}, nil
		case '\n', eos:
			return Token{}, lex.raise("Unfinished string")
		}
		if lex.raw {
			lexeme.WriteByte(lex.rawVal)
			continue
		}
		lexeme.WriteRune(ch)
	}
}

func (lex *Scanner) matchName(first rune) (Token, error) {
	lexeme := []rune{first}
	for {
		ch, err := lex.nextchar()
		if err != nil {
			return Token{}, err
		}
		if !matchAlpha(ch) && !matchNumeric(ch) {
			lex.backchar()
			break
		}
		lexeme = append(lexeme, ch)
	}

	ident := string(lexeme)
	k := Keyword(ident)
	if k != Name {
		return lex.makeToken(k), nil
	}
	return Token{Kind: Name, Text: ident, Line: lex.line}, nil
}

// matchNumber collects digits and the chars ".xeb" without checking how they are arranged, the conversion
// sorts out what is actually valid.
func (lex *Scanner) matchNumber(first rune) (Token, error) {
	lexeme := []rune{first}
	for {
		ch, err := lex.nextchar()
		if err != nil {
			return Token{}, err
		}
		if !matchNumeric(ch) && !strings.ContainsRune(".xeb", ch) {
			lex.backchar()
			break
		}
		lexeme = append(lexeme, ch)
	}

	n := string(lexeme)
	valid, iok, i, f := luautil.ConvNumber(n)
	if !valid {
		return Token{}, lex.raise("Invalid numeric literal '" + n + "'")
	}
	if iok {
		return Token{Kind: Int, Int: i, Line: lex.line}, nil
	}
	return Token{Kind: Float, Float: f, Line: lex.line}, nil
}
