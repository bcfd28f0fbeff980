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

// Helper functions for running scripts snippets in tests.
package testhelp

import "bytes"
import "strings"
import "testing"

import "github.com/milochristiansen/minilua"
import "github.com/milochristiansen/minilua/luautil"

// MkState creates a basic script state with its output captured in the returned buffer.
func MkState() (*lua.State, *bytes.Buffer) {
	l := lua.NewState()
	out := new(bytes.Buffer)
	l.Output = out
	return l, out
}

// AssertBlock runs a block of code. The test fails if there is an error or if the output printed by the
// snippet does not match "out".
func AssertBlock(t *testing.T, blk string, out string) {
	t.Helper()

	l, buf := MkState()
	err := l.DoText(strings.NewReader(blk), "test")
	if err != nil {
		t.Error(err)
		return
	}

	Assertf(t, buf.String() == out, "Did not print expected output.\nPrinted:\n%q\nExpected:\n%q", buf.String(), out)
}

// AssertError runs a block of code. The test fails unless running it produces an error of the given type.
// The output printed before the error is returned.
func AssertError(t *testing.T, blk string, typ luautil.ErrType) string {
	t.Helper()

	l, buf := MkState()
	err := l.DoText(strings.NewReader(blk), "test")
	if err == nil {
		t.Errorf("Expected a %v, got no error.", typ)
		return buf.String()
	}

	Assertf(t, luautil.TypeOf(err) == typ, "Wrong error type: %v vs %v (%v)", luautil.TypeOf(err), typ, err)
	return buf.String()
}

// Assert fails the test and logs the message if "ok" is false.
//
// This is purely a lazy convenience.
func Assert(t *testing.T, ok bool, msg ...interface{}) {
	t.Helper()
	if !ok {
		t.Error(msg...)
	}
}

// Assertf fails the test and logs the message if "ok" is false.
//
// This is purely a lazy convenience.
func Assertf(t *testing.T, ok bool, format string, msg ...interface{}) {
	t.Helper()
	if !ok {
		t.Errorf(format, msg...)
	}
}
