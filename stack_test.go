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

import "testing"

import "github.com/milochristiansen/minilua/luautil"

func TestStackSet(t *testing.T) {
	stk := newStack()

	assert(t, stk.Len() == 0, "New stack is not empty.")
	assert(t, stk.Get(0) == nil, "Empty stack returned a value.")

	// Appending one slot at a time.
	for i, v := range []value{"a", int64(1), 1.5, true} {
		err := stk.Set(i, v)
		assertf(t, err == nil, "Append to slot %d failed: %v", i, err)
	}
	assertf(t, stk.Len() == 4, "Wrong length: %d", stk.Len())
	assertf(t, stk.Get(1) == int64(1), "Wrong value in slot 1: %v", stk.Get(1))

	// Overwriting.
	err := stk.Set(1, nil)
	assert(t, err == nil, "Overwrite failed:", err)
	assertf(t, stk.Get(1) == nil, "Overwrite did not stick: %v", stk.Get(1))
	assertf(t, stk.Len() == 4, "Overwrite changed the length: %d", stk.Len())

	// Gaps are not allowed.
	err = stk.Set(6, "x")
	assert(t, err != nil, "Write past the end of the stack succeeded.")
	assertf(t, luautil.TypeOf(err) == luautil.ErrTypMajorInternal, "Wrong error type: %v", luautil.TypeOf(err))
	assertf(t, stk.Len() == 4, "Failed write changed the length: %d", stk.Len())

	err = stk.Set(-1, "x")
	assert(t, err != nil, "Write to a negative slot succeeded.")

	assert(t, stk.Get(-1) == nil, "Negative slot returned a value.")
	assert(t, stk.Get(100) == nil, "Slot past the end returned a value.")
}

func TestStackGrowth(t *testing.T) {
	stk := newStack()
	for i := 0; i <= maxSlot; i++ {
		if err := stk.Set(i, int64(i)); err != nil {
			t.Fatalf("Append to slot %d failed: %v", i, err)
		}
	}
	for i := 0; i <= maxSlot; i++ {
		assertf(t, stk.Get(i) == int64(i), "Slot %d holds %v", i, stk.Get(i))
	}
}
