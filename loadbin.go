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

import "encoding/binary"
import "fmt"
import "io"

import "github.com/milochristiansen/minilua/luautil"

// Binary chunks always use 64 bit ints and floats with LE byte order.
//
//	* 4 bytes: magic prefix (<ESC>Lua)
//	* 1 byte: format version
//	* 6 bytes: more magic, catches files mangled by newline conversion
//	* 1 byte: instruction size in bytes (4)
//	* 1 byte: int number type size in bytes (8)
//	* 1 byte: float number type size in bytes (8)
//	* 8 bytes: more magic. A type int number (0x7856000000000000 as encoded)
//	* 8 bytes: more magic. A type float number (0x0000000000287740 as encoded)
//
// The format version is not 0x53, so real Lua chunks are rejected by the header check.
var binHeader = "\x1bLua\x01\x19\x93\x0d\x0a\x1a\x0a\x04\x08\x08\x78\x56\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x28\x77\x40"

// BinarySignature is the prefix of every binary chunk, source text can never start with it.
const BinarySignature = "\x1bLua"

// Sanity limits, so a corrupt count cannot make the loader allocate the world.
const (
	maxBinCode   = 1 << 24
	maxBinString = 1 << 28
)

type loader struct {
	rdr io.Reader
}

func (l loader) read(data interface{}) error {
	return binary.Read(l.rdr, binary.LittleEndian, data)
}

func (l loader) readInt() (int32, error) {
	var i int32
	err := l.read(&i)
	return i, err
}

func (l loader) readByte() (byte, error) {
	var b byte
	err := l.read(&b)
	return b, err
}

// readCount reads a table length and checks it against a limit.
func (l loader) readCount(what string, limit int) (int, error) {
	n, err := l.readInt()
	if err != nil {
		return 0, err
	}
	if n < 0 || int(n) > limit {
		return 0, binError(fmt.Sprintf("Invalid %s count %d", what, n))
	}
	return int(n), nil
}

func (l loader) readString() (string, error) {
	sb, err := l.readByte()
	if err != nil {
		return "", err
	}

	size := int64(sb)
	if sb == 0xff {
		err = l.read(&size)
		if err != nil {
			return "", err
		}
	}
	if size < 0 || size > maxBinString {
		return "", binError(fmt.Sprintf("Invalid string length %d", size))
	}
	if size == 0 {
		return "", nil
	}

	rstr := make([]byte, size)
	_, err = io.ReadFull(l.rdr, rstr)
	if err != nil {
		return "", err
	}
	return string(rstr), nil
}

func (l loader) readCode(p *Proto) error {
	n, err := l.readCount("instruction", maxBinCode)
	if err != nil {
		return err
	}

	code := make([]instruction, n)
	err = l.read(code)
	if err != nil {
		return err
	}
	p.code = code
	return nil
}

func (l loader) readConstants(p *Proto) error {
	n, err := l.readCount("constant", maxConst+1)
	if err != nil {
		return err
	}

	constants := make([]value, n)
	for i := range constants {
		t, err := l.readByte()
		if err != nil {
			return err
		}

		switch t {
		case tagNil:
			constants[i] = nil

		case tagBool:
			b, err := l.readByte()
			if err != nil {
				return err
			}
			constants[i] = b != 0

		case tagFloat:
			var n float64
			err := l.read(&n)
			if err != nil {
				return err
			}
			constants[i] = n

		case tagInt:
			var n int64
			err := l.read(&n)
			if err != nil {
				return err
			}
			constants[i] = n

		case tagString:
			v, err := l.readString()
			if err != nil {
				return err
			}
			constants[i] = v

		default:
			return binError(fmt.Sprintf("Invalid constant type %#x", t))
		}
	}

	p.constants = constants
	return nil
}

func (l loader) readDebug(p *Proto) error {
	n, err := l.readCount("line info", maxBinCode)
	if err != nil {
		return err
	}

	p.lineInfo = make([]int, n)
	for i := range p.lineInfo {
		line, err := l.readInt()
		if err != nil {
			return err
		}
		p.lineInfo[i] = int(line)
	}

	n, err = l.readCount("local", maxSlot+1)
	if err != nil {
		return err
	}

	p.locals = make([]string, n)
	for i := range p.locals {
		p.locals[i], err = l.readString()
		if err != nil {
			return err
		}
	}
	return nil
}

// verify checks that every instruction is one the VM knows, and that every constant operand is in range.
// Slot operands need no checks, the stack catches bad ones at run time.
func (p *Proto) verify() error {
	if len(p.lineInfo) != len(p.code) {
		return binError(fmt.Sprintf("Line info for %d of %d instructions", len(p.lineInfo), len(p.code)))
	}

	for pc, i := range p.code {
		op := i.getOpCode()
		if int(op) >= opCodeCount {
			return binError(fmt.Sprintf("Invalid opcode %d at [%d]", op, pc))
		}

		mode := opModes[op]
		if mode.a == argConst && i.a() >= len(p.constants) {
			return binError(fmt.Sprintf("Constant index out of range at [%d]: %v", pc, i))
		}
		if mode.b == argConst && i.b() >= len(p.constants) {
			return binError(fmt.Sprintf("Constant index out of range at [%d]: %v", pc, i))
		}
	}
	return nil
}

func binError(msg string) error {
	return luautil.Error{Msg: "Bin Loader: " + msg, Type: luautil.ErrTypBinLoader}
}

// Load reads a binary chunk written by Proto.Dump.
//
// The chunk is checked before it is returned, so a corrupt or hand crafted chunk is an error here rather than
// a crash later. If the chunk does not record a source name, name is used instead.
func Load(in io.Reader, name string) (*Proto, error) {
	l := loader{in}
	header := make([]byte, len(binHeader))
	_, err := io.ReadFull(in, header)
	if err != nil {
		return nil, luautil.Error{Msg: "Bin Loader", Err: err, Type: luautil.ErrTypBinLoader}
	}
	if string(header) != binHeader {
		return nil, binError("Header mismatch, not binary chunk or incorrect format")
	}

	p := &Proto{}
	err = p.readFrom(l)
	if err != nil {
		if _, ok := err.(luautil.Error); !ok {
			return nil, luautil.Error{Msg: "Bin Loader", Err: err, Type: luautil.ErrTypBinLoader}
		}
		return nil, err
	}

	if p.source == "" {
		p.source = name
	}
	if err := p.verify(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Proto) readFrom(l loader) error {
	src, err := l.readString()
	if err != nil {
		return err
	}
	p.source = src

	err = l.readCode(p)
	if err != nil {
		return err
	}

	err = l.readConstants(p)
	if err != nil {
		return err
	}

	return l.readDebug(p)
}
