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

// Instructions are packed into 32 bits, Lua style, even though the format is not compatible with anything
// else. Every operand is small enough that the bit twiddling stays simple.

type opCode uint

const (
	opGetGlobal opCode = iota
	opSetGlobal
	opSetGlobalK
	opSetGlobalG

	opLoadK
	opLoadNil
	opLoadBool
	opLoadInt
	opMove

	opCall

	opCodeCount int = iota
)

var opNames = []string{
	"GETGLOBAL",
	"SETGLOBAL",
	"SETGLOBALK",
	"SETGLOBALG",

	"LOADK",
	"LOADNIL",
	"LOADBOOL",
	"LOADINT",
	"MOVE",

	"CALL",
}

func (op opCode) String() string {
	if int(op) >= opCodeCount {
		return fmt.Sprintf("OP(%d)", int(op))
	}
	return opNames[op]
}

const (
	sizeOp = 8
	sizeA  = 8
	sizeB  = 8
	sizeC  = 8
	sizeBx = sizeB + sizeC

	posOp = 0
	posA  = posOp + sizeOp
	posB  = posA + sizeA
	posC  = posB + sizeB
	posBx = posB

	maxArgA   = 1<<sizeA - 1
	maxArgB   = 1<<sizeB - 1
	maxArgC   = 1<<sizeC - 1
	maxArgBx  = 1<<sizeBx - 1
	maxArgSBx = maxArgBx >> 1
	minArgSBx = -maxArgSBx - 1

	// Both stack slots and constant indexes are 8 bit operands.
	maxSlot  = maxArgA
	maxConst = maxArgB
)

type instruction uint32

func (i instruction) getOpCode() opCode {
	return opCode(i >> posOp & (1<<sizeOp - 1))
}

// Inline for performance.
func (i instruction) a() int   { return int(i >> posA & maxArgA) }
func (i instruction) b() int   { return int(i >> posB & maxArgB) }
func (i instruction) bx() int  { return int(i >> posBx & maxArgBx) }
func (i instruction) sbx() int { return int(int16(uint16(i >> posBx & maxArgBx))) }

func createABC(op opCode, a, b, c int) instruction {
	return instruction(op)<<posOp | instruction(a&maxArgA)<<posA | instruction(b&maxArgB)<<posB | instruction(c&maxArgC)<<posC
}

func createAB(op opCode, a, b int) instruction {
	return createABC(op, a, b, 0)
}

func createAsBx(op opCode, a, sbx int) instruction {
	return instruction(op)<<posOp | instruction(a&maxArgA)<<posA | instruction(uint16(int16(sbx)))<<posBx
}

// Operand kinds, used for printing.
const (
	argUnused = iota
	argSlot
	argConst
	argInt
)

type opType struct {
	a, b, sbx int8
}

var opModes = []opType{
	//     a, b, sbx              opCode
	{argSlot, argConst, argUnused},  // opGetGlobal
	{argConst, argSlot, argUnused},  // opSetGlobal
	{argConst, argConst, argUnused}, // opSetGlobalK
	{argConst, argConst, argUnused}, // opSetGlobalG
	{argSlot, argConst, argUnused},  // opLoadK
	{argSlot, argUnused, argUnused}, // opLoadNil
	{argSlot, argInt, argUnused},    // opLoadBool
	{argSlot, argUnused, argInt},    // opLoadInt
	{argSlot, argSlot, argUnused},   // opMove
	{argSlot, argInt, argUnused},    // opCall
}

func fmtArg(name string, mode int8, v int) string {
	switch mode {
	case argSlot:
		return fmt.Sprintf("\t%s:r(%d)", name, v)
	case argConst:
		return fmt.Sprintf("\t%s:k(%d)", name, v)
	case argInt:
		return fmt.Sprintf("\t%s:%d", name, v)
	}
	return ""
}

func (i instruction) String() string {
	op := i.getOpCode()
	if int(op) >= opCodeCount {
		return op.String()
	}
	mode := opModes[op]
	return op.String() + fmtArg("A", mode.a, i.a()) + fmtArg("B", mode.b, i.b()) + fmtArg("SBX", mode.sbx, i.sbx())
}
