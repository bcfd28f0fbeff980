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

package luautil

import "strings"
import "strconv"
import "math"

// ConvNumber converts the text of a numeric literal to a number.
//
// The text is a float if it contains a '.', otherwise it must be a base 10 integer that fits in 64 bits.
// Hex and exponent forms are not understood (yet), so something like "0x10" or "1e5" is simply invalid.
func ConvNumber(s string) (valid, iok bool, i int64, f float64) {
	if len(s) == 0 {
		return false, false, 0, 0.0
	}

	if strings.ContainsRune(s, '.') {
		if f, ok := convFloat(s); ok {
			return true, false, 0, f
		}
		return false, false, 0, 0.0
	}
	if i, ok := convInt(s); ok {
		return true, true, i, 0.0
	}
	return false, false, 0, 0.0
}

func convInt(s string) (int64, bool) {
	i, err := strconv.ParseInt(s, 10, 64)
	return i, err == nil
}

func convFloat(s string) (float64, bool) {
	// ParseFloat would happily take these, a literal never should.
	if strings.ContainsAny(s, "xXbB_") {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// FormatFloat returns the display form of a float.
//
// Floats always keep a trailing ".0" when they happen to hold an integral value, so that 1.0 and 1 print
// differently.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	s := strconv.FormatFloat(f, 'g', 14, 64)
	if strings.ContainsAny(s, ".en") {
		return s
	}
	return s + ".0"
}
