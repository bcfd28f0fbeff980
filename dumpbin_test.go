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
import "encoding/binary"
import "strings"
import "testing"

import "github.com/milochristiansen/minilua/luautil"

func protoEqual(a, b *Proto) bool {
	if a.source != b.source || len(a.code) != len(b.code) || len(a.constants) != len(b.constants) ||
		len(a.lineInfo) != len(b.lineInfo) || len(a.locals) != len(b.locals) {
		return false
	}
	for i := range a.code {
		if a.code[i] != b.code[i] || a.lineInfo[i] != b.lineInfo[i] {
			return false
		}
	}
	for i := range a.constants {
		if a.constants[i] != b.constants[i] {
			return false
		}
	}
	for i := range a.locals {
		if a.locals[i] != b.locals[i] {
			return false
		}
	}
	return true
}

const binSample = `
local greeting = "hello"
target = greeting
flag = true
nothing = nil
big = 9223372036854775807
half = 0.5
print(target)
print "world"
print()
`

func TestDumpRoundTrip(t *testing.T) {
	sources := []string{
		binSample,
		"",
		"print '" + strings.Repeat("x", 300) + "'",
		"x = false\nlocal y = 1.5\nz = y",
	}

	for _, src := range sources {
		p := compile(t, src)
		data, err := p.Dump()
		if err != nil {
			t.Fatalf("Dump failed: %v", err)
		}
		assert(t, bytes.HasPrefix(data, []byte(BinarySignature)), "Missing signature.")

		p2, err := Load(bytes.NewReader(data), "other")
		if err != nil {
			t.Fatalf("Load failed: %v\n%v", err, p)
		}
		assertf(t, protoEqual(p, p2), "Round trip changed the chunk:\n%v\n\n%v", p, p2)
		assertf(t, p.String() == p2.String(), "Listings differ:\n%v\n\n%v", p, p2)
	}
}

func TestDumpedChunkRuns(t *testing.T) {
	p := compile(t, binSample)
	data, err := p.Dump()
	assert(t, err == nil, err)
	p2, err := Load(bytes.NewReader(data), "bin")
	assert(t, err == nil, err)

	outputs := []string{}
	for _, proto := range []*Proto{p, p2} {
		l := NewState()
		out := new(bytes.Buffer)
		l.Output = out
		assert(t, l.Execute(proto) == nil, "Execute failed.")
		outputs = append(outputs, out.String())
	}
	assertf(t, outputs[0] == "hello\nworld\nnil\n", "Printed %q", outputs[0])
	assertf(t, outputs[0] == outputs[1], "Loaded chunk printed %q, want %q", outputs[1], outputs[0])
}

func TestLoadSourceName(t *testing.T) {
	p := compile(t, "x = 1")
	p.source = ""
	data, err := p.Dump()
	assert(t, err == nil, err)

	p2, err := Load(bytes.NewReader(data), "fallback")
	assert(t, err == nil, err)
	assertf(t, p2.Source() == "fallback", "Source is %q", p2.Source())
}

func TestLoadTruncated(t *testing.T) {
	data, err := compile(t, binSample).Dump()
	assert(t, err == nil, err)

	for n := 0; n < len(data); n++ {
		_, err := Load(bytes.NewReader(data[:n]), "trunc")
		if luautil.TypeOf(err) != luautil.ErrTypBinLoader {
			t.Fatalf("Load of %d/%d bytes: got %v (%v)", n, len(data), luautil.TypeOf(err), err)
		}
	}
}

// mkChunk builds a binary chunk by hand: a header, then whatever fields the test wants.
func mkChunk(header string, fields ...interface{}) []byte {
	out := new(bytes.Buffer)
	out.WriteString(header)
	for _, f := range fields {
		binary.Write(out, binary.LittleEndian, f)
	}
	return out.Bytes()
}

func TestLoadCorrupt(t *testing.T) {
	empty := []interface{}{byte(0), int32(0), int32(0), int32(0), int32(0)}
	_, err := Load(bytes.NewReader(mkChunk(binHeader, empty...)), "ok")
	assert(t, err == nil, "Minimal chunk rejected:", err)

	lua53 := "\x1bLua\x53" + binHeader[5:]
	getGlobal := uint32(createAB(opGetGlobal, 0, 0))
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("print('hello') -- not a binary chunk at all")},
		{"lua 5.3", mkChunk(lua53, empty...)},
		{"bad opcode", mkChunk(binHeader, byte(0), int32(1), uint32(200), int32(0), int32(1), int32(1), int32(0))},
		{"bad constant index", mkChunk(binHeader, byte(0), int32(1), getGlobal, int32(0), int32(1), int32(1), int32(0))},
		{"bad constant type", mkChunk(binHeader, byte(0), int32(0), int32(1), byte(9), int32(0), int32(0))},
		{"missing line info", mkChunk(binHeader, byte(0), int32(1), uint32(createAB(opLoadNil, 0, 0)), int32(0), int32(0), int32(0))},
		{"negative count", mkChunk(binHeader, byte(0), int32(-1))},
		{"too many constants", mkChunk(binHeader, byte(0), int32(0), int32(maxConst+2))},
		{"too many locals", mkChunk(binHeader, byte(0), int32(0), int32(0), int32(0), int32(maxSlot+2))},
		{"huge string", mkChunk(binHeader, byte(0xff), int64(1)<<40)},
	}

	for _, tt := range tests {
		p, err := Load(bytes.NewReader(tt.data), "corrupt")
		assertf(t, p == nil && luautil.TypeOf(err) == luautil.ErrTypBinLoader, "%s: got %v (%v)", tt.name, luautil.TypeOf(err), err)
	}
}
