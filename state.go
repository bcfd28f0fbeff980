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

// minilua - A tiny Lua front end and VM.
//
// This is a deliberately small subset of Lua: source is scanned, compiled in a single pass to a flat list of
// register based instructions plus a constant pool, and then run top to bottom. The only statements are
// global assignment, local declaration, and calls of a function with (at most) one argument:
//
//	local greeting = "hello"
//	target = greeting
//	print(target)
//	print "world"
//
// There are no operators, tables, control structures, or Lua functions (yet). Expressions are a single
// literal or variable.
//
// Compile and Execute (and DoText, which does both) return errors, they never panic. Errors are always
// luautil.Error values, use luautil.TypeOf to find out what kind of error you got. Native functions are the
// exception to the no panic rule: they may call luautil.Raise to abort the script, the VM catches this and
// turns it into an error like any other.
//
// The only native function provided is print, which every new State has.
package lua

import "fmt"
import "io"
import "log/slog"
import "os"

// State is the central arbitrator of all Lua operations.
//
// A State is not safe for concurrent use.
type State struct {
	// Output should be set to whatever writer you want to use for logging.
	// This is where the standard script functions like print will write their output.
	// If nil defaults to os.Stdout.
	Output io.Writer

	// If set every instruction executed is logged at debug level. This is very noisy.
	Logger *slog.Logger

	global map[string]value
	stack  *stack

	fi    int // Slot of the function currently being called.
	nArgs int
}

// NewState creates a new State, ready to use.
func NewState() *State {
	l := &State{
		global: make(map[string]value, 16),
		stack:  newStack(),
	}

	l.Register("print", basePrint)
	return l
}

// Output

// Printf writes to the designated output writer (see fmt.Printf).
func (l *State) Printf(format string, msg ...interface{}) {
	if l.Output != nil {
		fmt.Fprintf(l.Output, format, msg...)
		return
	}
	fmt.Fprintf(os.Stdout, format, msg...)
}

// Println writes to the designated output writer (see fmt.Println).
func (l *State) Println(msg ...interface{}) {
	if l.Output != nil {
		fmt.Fprintln(l.Output, msg...)
		return
	}
	fmt.Fprintln(os.Stdout, msg...)
}

// Print writes to the designated output writer (see fmt.Print).
func (l *State) Print(msg ...interface{}) {
	if l.Output != nil {
		fmt.Fprint(l.Output, msg...)
		return
	}
	fmt.Fprint(os.Stdout, msg...)
}

// basePrint writes its (single) argument and a newline.
func basePrint(l *State) int {
	l.Println(l.ToString(1))
	return 0
}

// See api.go for more.
