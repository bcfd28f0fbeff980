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

import "context"
import "fmt"
import "log/slog"

import "github.com/milochristiansen/minilua/luautil"

// exec runs a Proto from start to finish. There are no jumps, so this is a single pass over the code.
// The first error stops execution, anything already done (printed output, global stores) stays done.
func (l *State) exec(p *Proto) error {
	cf := &callFrame{proto: p}
	trace := l.Logger != nil && l.Logger.Enabled(context.Background(), slog.LevelDebug)

	i, ok := cf.nxtOp()
	for ok {
		if trace {
			l.Logger.Debug("exec", "source", p.source, "pc", cf.pc-1, "inst", i.String())
		}

		op := i.getOpCode()
		if int(op) >= opCodeCount {
			return luautil.Error{Msg: fmt.Sprintf("Invalid opcode %d.", op), Type: luautil.ErrTypMajorInternal, Line: cf.line()}
		}
		if err := instructionTable[op](l, cf, i); err != nil {
			return withLine(err, cf.line())
		}
		i, ok = cf.nxtOp()
	}
	return nil
}

// withLine attaches a line number to errors that do not have one yet.
func withLine(err error, line int) error {
	if e, ok := err.(luautil.Error); ok && e.Line == 0 {
		e.Line = line
		return e
	}
	return err
}

// call invokes a native function stored in slot fi. Any panic raised by the function is caught and
// returned as an error.
func (l *State) call(f *function, fi, args int) (err error) {
	defer func() {
		if x := recover(); x != nil {
			switch e := x.(type) {
			case luautil.Error:
				err = e
			case error:
				err = luautil.Error{Msg: "Error in native function", Type: luautil.ErrTypGenRuntime, Err: e}
			default:
				err = luautil.Error{Msg: fmt.Sprint(x), Type: luautil.ErrTypEvil}
			}
		}
	}()

	l.fi = fi
	l.nArgs = args
	rtn := f.native(l)
	if l.Logger != nil {
		l.Logger.Debug("native call", "func", toString(f), "status", rtn)
	}
	return nil
}

// globalKey fetches the name of a global from the constant pool.
func globalKey(cf *callFrame, k int) (string, error) {
	v := cf.constant(k)
	key, ok := v.(string)
	if !ok {
		return "", luautil.Error{Msg: fmt.Sprintf("Invalid global key: %v (a %v value).", quoted(v), typeOf(v)), Type: luautil.ErrTypGenRuntime}
	}
	return key, nil
}

// getGlobal returns the value of a global, undefined globals are nil.
func (l *State) getGlobal(key string) value {
	return l.global[key]
}

var instructionTable [opCodeCount]func(l *State, cf *callFrame, i instruction) error

func init() {
	instructionTable = [opCodeCount]func(l *State, cf *callFrame, i instruction) error{
		// GETGLOBAL
		func(l *State, cf *callFrame, i instruction) error {
			key, err := globalKey(cf, i.b())
			if err != nil {
				return err
			}
			return l.stack.Set(i.a(), l.getGlobal(key))
		},
		// SETGLOBAL
		func(l *State, cf *callFrame, i instruction) error {
			key, err := globalKey(cf, i.a())
			if err != nil {
				return err
			}
			l.global[key] = l.stack.Get(i.b())
			return nil
		},
		// SETGLOBALK
		func(l *State, cf *callFrame, i instruction) error {
			key, err := globalKey(cf, i.a())
			if err != nil {
				return err
			}
			l.global[key] = cf.constant(i.b())
			return nil
		},
		// SETGLOBALG
		func(l *State, cf *callFrame, i instruction) error {
			key, err := globalKey(cf, i.a())
			if err != nil {
				return err
			}
			src, err := globalKey(cf, i.b())
			if err != nil {
				return err
			}
			l.global[key] = l.getGlobal(src)
			return nil
		},

		// LOADK
		func(l *State, cf *callFrame, i instruction) error {
			return l.stack.Set(i.a(), cf.constant(i.b()))
		},
		// LOADNIL
		func(l *State, cf *callFrame, i instruction) error {
			return l.stack.Set(i.a(), nil)
		},
		// LOADBOOL
		func(l *State, cf *callFrame, i instruction) error {
			return l.stack.Set(i.a(), i.b() != 0)
		},
		// LOADINT
		func(l *State, cf *callFrame, i instruction) error {
			return l.stack.Set(i.a(), int64(i.sbx()))
		},
		// MOVE
		func(l *State, cf *callFrame, i instruction) error {
			if i.b() >= l.stack.Len() {
				return luautil.Error{Msg: fmt.Sprintf("Read from unwritten stack slot %d.", i.b()), Type: luautil.ErrTypMajorInternal}
			}
			return l.stack.Set(i.a(), l.stack.Get(i.b()))
		},

		// CALL
		func(l *State, cf *callFrame, i instruction) error {
			v := l.stack.Get(i.a())
			f, ok := v.(*function)
			if !ok {
				return luautil.Error{Msg: fmt.Sprintf("Attempt to call a %v value.", typeOf(v)), Type: luautil.ErrTypGenRuntime}
			}
			return l.call(f, i.a(), i.b())
		},
	}
}
