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

import (
	"errors"
	"fmt"
	"io"
	"math"
	"testing"
)

func TestConvNumber(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		iok   bool
		i     int64
		f     float64
	}{
		{"0", true, true, 0, 0},
		{"42", true, true, 42, 0},
		{"9223372036854775807", true, true, math.MaxInt64, 0},
		{"9223372036854775808", false, false, 0, 0},
		{"3.5", true, false, 0, 3.5},
		{".5", true, false, 0, 0.5},
		{"5.", true, false, 0, 5},
		{"1.5e3", true, false, 0, 1500},
		{"1e5", false, false, 0, 0},
		{"0x10", false, false, 0, 0},
		{"0x1.8", false, false, 0, 0},
		{"1.2.3", false, false, 0, 0},
		{"", false, false, 0, 0},
	}

	for _, tt := range tests {
		valid, iok, i, f := ConvNumber(tt.in)
		if valid != tt.valid || iok != tt.iok || i != tt.i || f != tt.f {
			t.Errorf("ConvNumber(%q) = %v, %v, %v, %v; want %v, %v, %v, %v",
				tt.in, valid, iok, i, f, tt.valid, tt.iok, tt.i, tt.f)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0"},
		{-2, "-2.0"},
		{0.25, "0.25"},
		{3.14, "3.14"},
		{1e100, "1e+100"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}

	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		err  Error
		want string
	}{
		{Error{}, "Unspecified error"},
		{Error{Msg: "boom", Type: ErrTypGenRuntime}, "boom"},
		{Error{Msg: "boom", Line: 7}, "Line 7: boom"},
		{Error{Msg: "read", Err: io.ErrUnexpectedEOF, Type: ErrTypWrapped}, "read: unexpected EOF"},
		{Error{Msg: "x", Type: ErrTypMajorInternal}, "Major internal error, this indicates an internal VM bug! x"},
		{Error{Msg: "x", Trace: " here"}, "x\n  Stack Trace: here"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestTypeOf(t *testing.T) {
	if typ := TypeOf(nil); typ != ErrTypUndefined {
		t.Errorf("nil: got %v", typ)
	}
	if typ := TypeOf(errors.New("x")); typ != ErrTypWrapped {
		t.Errorf("foreign error: got %v", typ)
	}
	if typ := TypeOf(Error{Type: ErrTypGenSyntax}); typ != ErrTypGenSyntax {
		t.Errorf("value: got %v", typ)
	}
	if typ := TypeOf(&Error{Type: ErrTypCompileLimit}); typ != ErrTypCompileLimit {
		t.Errorf("pointer: got %v", typ)
	}

	wrapped := fmt.Errorf("opening: %w", Error{Type: ErrTypGenLexer})
	if typ := TypeOf(wrapped); typ != ErrTypGenLexer {
		t.Errorf("wrapped: got %v", typ)
	}

	inner := Error{Msg: "outer", Type: ErrTypWrapped, Err: io.EOF}
	if !errors.Is(inner, io.EOF) {
		t.Error("Unwrap does not expose the cause")
	}
}

func TestRaise(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(Error)
		if !ok {
			t.Fatalf("Raise panicked with %#v", r)
		}
		if err.Msg != "bad" || err.Type != ErrTypGenRuntime {
			t.Errorf("got %#v", err)
		}
	}()

	Raise("bad", ErrTypGenRuntime)
	t.Error("Raise returned")
}

func TestErrTypeNames(t *testing.T) {
	if ErrTypGenSyntax.String() != "syntax error" {
		t.Error(ErrTypGenSyntax.String())
	}
	if ErrType(99).String() != "error" {
		t.Error(ErrType(99).String())
	}
}
