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

import "bytes"
import "fmt"
import "text/tabwriter"

// Proto is a compiled chunk: the constant pool, the local variable table, and the instruction sequence.
//
// A Proto is immutable once Compile returns it, and may be executed any number of times (by any number of
// States).
type Proto struct {
	constants []value
	locals    []string // local index == stack slot
	code      []instruction
	lineInfo  []int

	source string
}

// Source returns the name the chunk was compiled with.
func (p *Proto) Source() string {
	return p.source
}

// Constants returns a copy of the constant pool.
func (p *Proto) Constants() []interface{} {
	out := make([]interface{}, len(p.constants))
	for i, v := range p.constants {
		out[i] = v
	}
	return out
}

// Locals returns the names of the local variables in declaration (and so slot) order.
func (p *Proto) Locals() []string {
	return append([]string(nil), p.locals...)
}

// Len returns the number of instructions.
func (p *Proto) Len() int {
	return len(p.code)
}

// Instruction returns the listing form of the instruction at pc.
func (p *Proto) Instruction(pc int) string {
	return p.code[pc].String()
}

// String returns a human readable listing of the chunk.
func (p *Proto) String() string {
	out := new(bytes.Buffer)
	fmt.Fprintf(out, "%v\n", p.source)

	w := tabwriter.NewWriter(out, 2, 8, 2, ' ', 0)
	fmt.Fprintf(out, "Code:\n")
	if len(p.code) == 0 {
		fmt.Fprintf(out, "  None.\n")
	}
	for j, i := range p.code {
		op := i.getOpCode()
		mode := opModes[op]
		extra := ""
		if mode.a == argConst {
			extra += fmt.Sprintf(" AK:%v", quoted(p.constants[i.a()]))
		}
		if mode.b == argConst {
			extra += fmt.Sprintf(" BK:%v", quoted(p.constants[i.b()]))
		}

		if extra != "" {
			fmt.Fprintf(w, "  [%v]\t%v\t;%v\n", j, i, extra)
		} else {
			fmt.Fprintf(w, "  [%v]\t%v\t\n", j, i)
		}
	}
	w.Flush()

	fmt.Fprintf(out, "Locals:\n")
	if len(p.locals) == 0 {
		fmt.Fprintf(out, "  None.\n")
	}
	for i, v := range p.locals {
		fmt.Fprintf(w, "  [%v]\t%v\n", i, v)
	}
	w.Flush()

	fmt.Fprintf(out, "Constants:\n")
	if len(p.constants) == 0 {
		fmt.Fprintf(out, "  None.\n")
	}
	for i, v := range p.constants {
		fmt.Fprintf(w, "  [%v]\t%v\t%v\n", i, typeOf(v), quoted(v))
	}
	w.Flush()

	return string(bytes.TrimSpace(out.Bytes()))
}

// NativeFunction is the prototype to which native API functions must conform.
//
// Arguments are read with Get and friends, index 1 is the first argument. The returned status code is
// currently ignored.
type NativeFunction func(l *State) int

// function wraps a NativeFunction so that function values can be compared (by identity).
type function struct {
	name   string
	native NativeFunction
}
