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

import "errors"
import "strconv"

type ErrType int

// Error types.
const (
	ErrTypUndefined     ErrType = iota // Anything that does not fit a category.
	ErrTypMajorInternal                // Errors that should not happen, ever.

	ErrTypGenLexer // Generic syntax errors caught by the lexer.

	ErrTypGenSyntax    // Generic syntax errors.
	ErrTypCompileLimit // A chunk needs more constants or stack slots than an instruction can address.
	ErrTypGenRuntime   // Generic run time errors.

	ErrTypBinLoader // An error encountered while loading a binary chunk.
	ErrTypBinDumper

	ErrTypWrapped // An error from some other library or native API code wrapped into a standard Error.
	ErrTypEvil    // If some idiot panics with a non-error value, it will be wrapped with this type.
)

var errTypNames = [...]string{
	"undefined error",
	"internal error",
	"scan error",
	"syntax error",
	"compile error",
	"runtime error",
	"binary chunk error",
	"binary dump error",
	"wrapped error",
	"evil error",
}

func (typ ErrType) String() string {
	if typ < 0 || int(typ) >= len(errTypNames) {
		return "error"
	}
	return errTypNames[typ]
}

// Error is used for any and every error that is produced by the VM and its peripherals.
type Error struct {
	Err  error
	Msg  string
	Type ErrType
	Line int // 0 if unknown

	Trace string
}

// Error formats an Error like so:
//	Line <Line>: <Msg>: <Err.Error()>
//	  Stack Trace: <Trace>
// If any of the parts are missing they are elided, in the extreme case of an empty error the message will be:
//	Unspecified error
func (err Error) Error() string {
	at := ""
	if err.Trace != "" {
		at = "\n  Stack Trace:" + err.Trace
	}

	msg := "Unspecified error"
	if err.Msg != "" {
		msg = err.Msg
	}
	if err.Type == ErrTypMajorInternal {
		msg = "Major internal error, this indicates an internal VM bug! " + msg
	}
	if err.Line > 0 {
		msg = "Line " + strconv.Itoa(err.Line) + ": " + msg
	}

	errmsg := ""
	if err.Err != nil {
		errmsg = ": " + err.Err.Error()
	}

	return msg + errmsg + at
}

func (err Error) Unwrap() error {
	return err.Err
}

// TypeOf returns the type of the first Error in err's chain.
// Errors that did not come from here at all are reported as ErrTypWrapped, nil as ErrTypUndefined.
func TypeOf(err error) ErrType {
	if err == nil {
		return ErrTypUndefined
	}

	var e Error
	if errors.As(err, &e) {
		return e.Type
	}
	var pe *Error
	if errors.As(err, &pe) && pe != nil {
		return pe.Type
	}
	return ErrTypWrapped
}

// Raise converts a string to a Error and then panics with it.
// Native functions may use this to abort a script, the VM turns the panic back into an error.
func Raise(msg string, typ ErrType) {
	panic(Error{Msg: msg, Type: typ})
}
