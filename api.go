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
import "io"

import "github.com/milochristiansen/minilua/luautil"

// Running code

// Execute runs a compiled chunk against this State's globals and stack.
// If there is an error execution stops at the failing instruction and the error is returned.
func (l *State) Execute(p *Proto) error {
	return l.exec(p)
}

// DoText compiles a chunk of source text and runs it.
func (l *State) DoText(in io.Reader, name string) error {
	p, err := Compile(in, name)
	if err != nil {
		return err
	}
	return l.Execute(p)
}

// Globals

// SetGlobal sets the named global to v.
// v must be one of nil, bool, int, int32, int64, float32, float64, string, or NativeFunction; anything else
// raises an error.
func (l *State) SetGlobal(name string, v interface{}) {
	l.global[name] = toValue(name, v)
}

// Register sets the named global to a native function.
func (l *State) Register(name string, f NativeFunction) {
	l.global[name] = &function{name: name, native: f}
}

// GetGlobal returns the value of the named global, nil if it is not set.
// Native functions are returned as *function values, which are only good for comparison.
func (l *State) GetGlobal(name string) interface{} {
	return l.global[name]
}

func toValue(name string, v interface{}) value {
	switch v2 := v.(type) {
	case nil, bool, int64, float64, string, *function:
		return v2
	case int:
		return int64(v2)
	case int32:
		return int64(v2)
	case float32:
		return float64(v2)
	case func(l *State) int:
		return &function{name: name, native: v2}
	case NativeFunction:
		return &function{name: name, native: v2}
	default:
		luautil.Raise(fmt.Sprintf("Cannot convert value of type %T to a script value.", v), luautil.ErrTypGenRuntime)
		panic("UNREACHABLE")
	}
}

// Native function arguments

// Get returns the value at index i relative to the function being called, so 0 is the function itself and
// 1 is the first argument. Indexes past the top of the stack return nil.
func (l *State) Get(i int) interface{} {
	return l.stack.Get(l.fi + i)
}

// ArgCount returns the number of arguments passed to the function being called.
func (l *State) ArgCount() int {
	return l.nArgs
}

// TypeOf returns the type of the value at the given index (see Get).
func (l *State) TypeOf(i int) TypeID {
	return typeOf(l.stack.Get(l.fi + i))
}

// ToString returns the display form of the value at the given index (see Get).
func (l *State) ToString(i int) string {
	return toString(l.stack.Get(l.fi + i))
}

// Stack inspection

// StackLen returns the number of stack slots written so far.
func (l *State) StackLen() int {
	return l.stack.Len()
}

// Slot returns the value in an absolute stack slot, nil if the slot was never written.
func (l *State) Slot(i int) interface{} {
	return l.stack.Get(i)
}
