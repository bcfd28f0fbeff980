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

import "github.com/milochristiansen/minilua/luautil"

// stack is the value stack (or register file, if you prefer). It grows one slot at a time as slots are
// first written and never shrinks. There are never any gaps: writing past the end is an error.
type stack struct {
	data []value
}

func newStack() *stack {
	return &stack{
		data: make([]value, 0, 64),
	}
}

// Len returns the number of slots that have been written.
func (stk *stack) Len() int {
	return len(stk.data)
}

// Get returns the value in the given slot, or nil if the slot has never been written.
func (stk *stack) Get(i int) value {
	if i < 0 || i >= len(stk.data) {
		return nil
	}
	return stk.data[i]
}

// Set writes v to slot i. Writing to the slot just past the end appends, writing anywhere below that
// overwrites. Anything further out means the compiler lost track of its slots.
func (stk *stack) Set(i int, v value) error {
	switch {
	case i == len(stk.data):
		stk.data = append(stk.data, v)
	case i >= 0 && i < len(stk.data):
		stk.data[i] = v
	default:
		return luautil.Error{
			Msg:  fmt.Sprintf("Write to stack slot %d, but the stack only has %d slots.", i, len(stk.data)),
			Type: luautil.ErrTypMajorInternal,
		}
	}
	return nil
}
