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

// callFrame tracks the execution of a single Proto.
type callFrame struct {
	proto *Proto
	pc    int
}

// nxtOp gets the next instruction, ok is false once the code is exhausted.
func (cf *callFrame) nxtOp() (instruction, bool) {
	if cf.pc >= len(cf.proto.code) || cf.pc < 0 {
		return 0, false
	}

	i := cf.proto.code[cf.pc]
	cf.pc++
	return i, true
}

// line returns the source line of the instruction that was last fetched, or 0 if unknown.
func (cf *callFrame) line() int {
	pc := cf.pc - 1
	if pc < 0 || pc >= len(cf.proto.lineInfo) {
		return 0
	}
	return cf.proto.lineInfo[pc]
}

// constant returns constant k.
func (cf *callFrame) constant(k int) value {
	return cf.proto.constants[k]
}
