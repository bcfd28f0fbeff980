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

package lua

import "fmt"
import "strconv"

import "github.com/milochristiansen/minilua/luautil"

type TypeID int

const (
	TypNil TypeID = iota
	TypBool
	TypInt
	TypFloat
	TypString
	TypFunction

	typeCount int = iota
)

var typeNames = [...]string{"nil", "boolean", "integer", "float", "string", "function"}

func (typ TypeID) String() string {
	if typ < 0 || int(typ) >= typeCount {
		return "unknown"
	}
	return typeNames[typ]
}

// A value is always exactly one of: nil, bool, int64, float64, string, or *function.
// Every one of these is comparable, so two values may be compared with == without fear.
type value interface{}

// See function.go for function

// Utility functions

func typeOf(v value) TypeID {
	switch v.(type) {
	case nil:
		return TypNil
	case bool:
		return TypBool
	case int64:
		return TypInt
	case float64:
		return TypFloat
	case string:
		return TypString
	case *function:
		return TypFunction
	default:
		luautil.Raise(fmt.Sprintf("Invalid value of Go type %T.", v), luautil.ErrTypMajorInternal)
		panic("UNREACHABLE")
	}
}

// valueEqual compares two values. Values of different types are never equal, so int64(1) and
// float64(1) are different values. Floats use normal IEEE comparison (NaN is not equal to itself).
func valueEqual(a, b value) bool {
	return a == b
}

// toString returns the display form of a value, as written by print.
func toString(v value) string {
	switch v2 := v.(type) {
	case nil:
		return "nil"
	case bool:
		if v2 {
			return "true"
		}
		return "false"
	case int64:
		return strconv.FormatInt(v2, 10)
	case float64:
		return luautil.FormatFloat(v2)
	case string:
		return v2
	case *function:
		if v2.name != "" {
			return "function: builtin: " + v2.name
		}
		return fmt.Sprintf("function: builtin: %p", v2)
	default:
		return fmt.Sprintf("unknown %v", v2)
	}
}

// quoted is toString for debug listings, strings are quoted so "1" and 1 are easy to tell apart.
func quoted(v value) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return toString(v)
}
