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
import "bytes"
import "fmt"

import "github.com/milochristiansen/minilua/luautil"

// Constant tags, the same values Lua itself uses.
const (
	tagNil    = 0
	tagBool   = 1
	tagFloat  = 3 | (0 << 4)
	tagInt    = 3 | (1 << 4)
	tagString = 4
)

type dumper struct {
	w *bytes.Buffer
}

func (d dumper) write(data interface{}) {
	binary.Write(d.w, binary.LittleEndian, data)
}

func (d dumper) writeInt(i int32) {
	d.write(i)
}

func (d dumper) writeByte(b byte) {
	d.write(b)
}

// Strings are a length byte followed by the data. Strings of 0xff or more bytes use 0xff as a marker and
// store the real length as an int64.
func (d dumper) writeString(s string) {
	l := len(s)
	if l >= 0xff {
		d.writeByte(0xff)
		d.write(int64(l))
	} else {
		d.writeByte(byte(l))
	}

	d.w.WriteString(s)
}

func (d dumper) writeCode(p *Proto) {
	d.writeInt(int32(len(p.code)))

	d.write(p.code)
}

func (d dumper) writeConstants(p *Proto) error {
	d.writeInt(int32(len(p.constants)))

	for _, v := range p.constants {
		switch v2 := v.(type) {
		case nil:
			d.writeByte(tagNil)

		case bool:
			d.writeByte(tagBool)
			if v2 {
				d.writeByte(1)
			} else {
				d.writeByte(0)
			}

		case float64:
			d.writeByte(tagFloat)
			d.write(v2)

		case int64:
			d.writeByte(tagInt)
			d.write(v2)

		case string:
			d.writeByte(tagString)
			d.writeString(v2)

		default:
			return luautil.Error{Msg: fmt.Sprintf("Bin Dumper: Invalid constant type %T", v), Type: luautil.ErrTypBinDumper}
		}
	}
	return nil
}

func (d dumper) writeDebug(p *Proto) {
	d.writeInt(int32(len(p.lineInfo)))

	for _, v := range p.lineInfo {
		d.writeInt(int32(v))
	}

	d.writeInt(int32(len(p.locals)))

	for _, v := range p.locals {
		d.writeString(v)
	}
}

// Dump returns the binary form of a compiled chunk, which Load turns back into an identical Proto.
//
// The format is specific to this package (and version of it), but it is the same on every platform.
func (p *Proto) Dump() ([]byte, error) {
	out := new(bytes.Buffer)
	d := dumper{out}

	d.write([]byte(binHeader))
	d.writeString(p.source)
	d.writeCode(p)
	if err := d.writeConstants(p); err != nil {
		return nil, err
	}
	d.writeDebug(p)

	return out.Bytes(), nil
}
