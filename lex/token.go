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

import "fmt"
import "strconv"

import "github.com/milochristiansen/minilua/luautil"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	INVALID Kind = iota - 1 // Invalid

	// Keywords
	And
	Break
	Do
	Else
	ElseIf
	End
	False
	For
	Function
	Goto
	If
	In
	Local
	Nil
	Not
	Or
	Repeat
	Return
	Then
	True
	Until
	While

	// Operators
	Add         // +
	Sub         // -
	Mul         // *
	Div         // /
	IDiv        // //
	Mod         // %
	Pow         // ^
	Len         // #
	BitAnd      // &
	BitXor      // ~
	BitOr       // |
	ShiftL      // <<
	ShiftR      // >>
	Concat      // ..
	Dots        // ...
	Equal       // ==
	NotEq       // ~=
	LessEq      // <=
	GreaterEq   // >=
	Less        // <
	Greater     // >
	Assign      // =
	ParL        // (
	ParR        // )
	CurlyL      // {
	CurlyR      // }
	SquareL     // [
	SquareR     // ]
	SemiColon   // ;
	Colon       // :
	DoubleColon // ::
	Comma       // ,
	Dot         // .

	// Values
	Int
	Float
	Name
	String

	EOF
)

var keywords = map[string]Kind{
	"and":      And,
	"break":    Break,
	"do":       Do,
	"else":     Else,
	"elseif":   ElseIf,
	"end":      End,
	"false":    False,
	"for":      For,
	"function": Function,
	"goto":     Goto,
	"if":       If,
	"in":       In,
	"local":    Local,
	"nil":      Nil,
	"not":      Not,
	"or":       Or,
	"repeat":   Repeat,
	"return":   Return,
	"then":     Then,
	"true":     True,
	"until":    Until,
	"while":    While,
}

// Keyword returns the keyword kind spelled by s, or Name if s is not reserved.
func Keyword(s string) Kind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Name
}

var kindNames = [...]string{
	// Keywords
	"and",
	"break",
	"do",
	"else",
	"elseif",
	"end",
	"false",
	"for",
	"function",
	"goto",
	"if",
	"in",
	"local",
	"nil",
	"not",
	"or",
	"repeat",
	"return",
	"then",
	"true",
	"until",
	"while",

	// Operators
	"+",
	"-",
	"*",
	"/",
	"//",
	"%",
	"^",
	"#",
	"&",
	"~",
	"|",
	"<<",
	">>",
	"..",
	"...",
	"==",
	"~=",
	"<=",
	">=",
	"<",
	">",
	"=",
	"(",
	")",
	"{",
	"}",
	"[",
	"]",
	";",
	":",
	"::",
	",",
	".",

	// Values
	"<integer>",
	"<float>",
	"<identifier>",
	"<string>",

	"<eof>",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "<INVALID>"
	}
	return kindNames[k]
}

// Token is a single lexical unit. Only the field matching Kind carries data: Text for Name and
// String, Int for Int, and Float for Float.
type Token struct {
	Kind  Kind
	Text  string
	Int   int64
	Float float64
	Line  int
}

// Lexeme returns the source text of data tokens, or "" for everything else.
func (t Token) Lexeme() string {
	switch t.Kind {
	case Int:
		return strconv.FormatInt(t.Int, 10)
	case Float:
		return luautil.FormatFloat(t.Float)
	case Name, String:
		return t.Text
	}
	return ""
}

func (t Token) String() string {
	lexeme := t.Lexeme()
	if lexeme == "" {
		return t.Kind.String()
	}
	if r := []rune(lexeme); len(r) > 20 {
		lexeme = string(r[:17]) + "..."
	}
	return fmt.Sprintf("%v (Lexeme: %v)", t.Kind, lexeme)
}

// Expected returns a syntax error with a message formatted like one of the following:
//	Invalid token: Found: thecurrenttoken. Expected: expected1, expected2, or expected3.
//	Invalid token: Found: thecurrenttoken. Expected: expected1 or expected2.
//	Invalid token: Found: thecurrenttoken (Lexeme: test). Expected: expected.
// If the lexeme is long (>20 chars) it is truncated.
func Expected(tok Token, expected ...Kind) error {
	expectedString := ""
	expectedCount := len(expected) - 1
	for i, val := range expected {
		switch {
		case expectedCount == 0:
			// Is the only value
			expectedString = val.String()
		case i == expectedCount:
			// Is last of a list (2 or more)
			if expectedCount > 1 {
				expectedString += ", "
			} else {
				expectedString += " "
			}
			expectedString += "or " + val.String()
		case i == 0:
			expectedString = val.String()
		default:
			expectedString += ", " + val.String()
		}
	}

	return luautil.Error{
		Msg:  "Invalid token: Found: " + tok.String() + ". Expected: " + expectedString + ".",
		Type: luautil.ErrTypGenSyntax,
		Line: tok.Line,
	}
}
