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

import "github.com/milochristiansen/minilua/lex"
import "github.com/milochristiansen/minilua/luautil"

// The compiler is a single pass affair: tokens are pulled from the scanner one statement at a time and
// instructions are emitted as soon as enough is known. There is no AST.
//
// Stack slots are handed out in order. Slot n belongs to local n, and any temporaries a statement needs
// (the function and argument of a call) go right after the last local. This means a statement never
// references a slot that nothing has written yet.

type compState struct {
	lex *lex.Scanner
	f   *Proto
}

// Compile reads a chunk of source text and compiles it.
//
// Any error is returned as a luautil.Error: ErrTypGenLexer for bad characters or literals,
// ErrTypGenSyntax for anything outside the supported grammar, and ErrTypCompileLimit if the chunk
// needs more constants or slots than an instruction can address.
func Compile(in io.Reader, name string) (*Proto, error) {
	state := &compState{
		lex: lex.NewScanner(in),
		f:   &Proto{source: name},
	}

	if err := state.chunk(); err != nil {
		return nil, err
	}
	return state.f, nil
}

func (state *compState) chunk() error {
	for {
		tok, err := state.lex.Next()
		if err != nil {
			return err
		}

		switch tok.Kind {
		case lex.Name:
			look, err := state.lex.Peek()
			if err != nil {
				return err
			}
			if look.Kind == lex.Assign {
				err = state.assignment(tok)
			} else {
				err = state.call(tok)
			}
			if err != nil {
				return err
			}
		case lex.Local:
			if err := state.local(tok.Line); err != nil {
				return err
			}
		case lex.EOF:
			return nil
		default:
			return lex.Expected(tok, lex.Name, lex.Local)
		}
	}
}

// This is to help me remember to add line info for each instruction...
func (state *compState) addInst(inst instruction, line int) {
	state.f.lineInfo = append(state.f.lineInfo, line)
	state.f.code = append(state.f.code, inst)
}

// getLocal returns the slot of the named local. Later declarations shadow earlier ones.
func (state *compState) getLocal(name string) (int, bool) {
	for i := len(state.f.locals) - 1; i >= 0; i-- {
		if state.f.locals[i] == name {
			return i, true
		}
	}
	return 0, false
}

// constK returns the index of the given constant, adding it to the pool if no equal value is there already.
// val MUST be an int64, float64, bool, nil, or string!
func (state *compState) constK(val value, line int) (int, error) {
	for i, v := range state.f.constants {
		if valueEqual(val, v) {
			return i, nil
		}
	}

	at := len(state.f.constants)
	if at > maxConst {
		return 0, luautil.Error{
			Msg:  fmt.Sprintf("Too many constants, a chunk may use at most %d", maxConst+1),
			Type: luautil.ErrTypCompileLimit,
			Line: line,
		}
	}
	state.f.constants = append(state.f.constants, val)
	return at, nil
}

func checkSlot(slot, line int) error {
	if slot > maxSlot {
		return luautil.Error{
			Msg:  fmt.Sprintf("Too many local variables, a chunk may use at most %d stack slots", maxSlot+1),
			Type: luautil.ErrTypCompileLimit,
			Line: line,
		}
	}
	return nil
}

// literal returns the value of a literal token, ok is false if tok is not a literal.
func literal(tok lex.Token) (v value, ok bool) {
	switch tok.Kind {
	case lex.Nil:
		return nil, true
	case lex.True:
		return true, true
	case lex.False:
		return false, true
	case lex.Int:
		return tok.Int, true
	case lex.Float:
		return tok.Float, true
	case lex.String:
		return tok.Text, true
	}
	return nil, false
}

func badArgument(tok lex.Token) error {
	return lex.Expected(tok, lex.Nil, lex.True, lex.False, lex.Int, lex.Float, lex.String, lex.Name)
}

// assignment compiles "name = exp".
//
// If name is a local the expression is simply loaded into the local's slot, otherwise the value is stored
// to the global table straight from wherever it lives (a constant, a local, or another global).
func (state *compState) assignment(name lex.Token) error {
	state.lex.Next() // The '=', already checked by the caller.

	if i, ok := state.getLocal(name.Text); ok {
		return state.loadExp(i, name.Line)
	}

	dst, err := state.constK(name.Text, name.Line)
	if err != nil {
		return err
	}

	tok, err := state.lex.Next()
	if err != nil {
		return err
	}

	if v, ok := literal(tok); ok {
		k, err := state.constK(v, tok.Line)
		if err != nil {
			return err
		}
		state.addInst(createAB(opSetGlobalK, dst, k), name.Line)
		return nil
	}
	if tok.Kind != lex.Name {
		return badArgument(tok)
	}

	if i, ok := state.getLocal(tok.Text); ok {
		state.addInst(createAB(opSetGlobal, dst, i), name.Line)
		return nil
	}
	src, err := state.constK(tok.Text, tok.Line)
	if err != nil {
		return err
	}
	state.addInst(createAB(opSetGlobalG, dst, src), name.Line)
	return nil
}

// call compiles "name(exp)", "name()", or "name 'string'".
// The function goes in the first free slot, the argument in the one after it.
func (state *compState) call(name lex.Token) error {
	ifunc := len(state.f.locals)
	iarg := ifunc + 1
	if err := checkSlot(iarg, name.Line); err != nil {
		return err
	}

	if err := state.loadVar(ifunc, name.Text, name.Line); err != nil {
		return err
	}

	tok, err := state.lex.Next()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case lex.ParL:
		look, err := state.lex.Peek()
		if err != nil {
			return err
		}
		if look.Kind == lex.ParR {
			// No argument, but the function still gets (exactly) one.
			state.addInst(createAB(opLoadNil, iarg, 0), tok.Line)
		} else if err := state.loadExp(iarg, tok.Line); err != nil {
			return err
		}

		tok, err = state.lex.Next()
		if err != nil {
			return err
		}
		if tok.Kind != lex.ParR {
			return lex.Expected(tok, lex.ParR)
		}
	case lex.String:
		if err := state.loadConst(iarg, tok.Text, tok.Line); err != nil {
			return err
		}
	default:
		return lex.Expected(tok, lex.ParL, lex.String)
	}

	state.addInst(createAB(opCall, ifunc, 1), name.Line)
	return nil
}

// local compiles "local name = exp". The local lives in the slot its value was loaded into, and only
// becomes visible once the expression is compiled.
func (state *compState) local(line int) error {
	name, err := state.lex.Next()
	if err != nil {
		return err
	}
	if name.Kind != lex.Name {
		return lex.Expected(name, lex.Name)
	}

	tok, err := state.lex.Next()
	if err != nil {
		return err
	}
	if tok.Kind != lex.Assign {
		return lex.Expected(tok, lex.Assign)
	}

	dst := len(state.f.locals)
	if err := checkSlot(dst, line); err != nil {
		return err
	}
	if err := state.loadExp(dst, line); err != nil {
		return err
	}
	state.f.locals = append(state.f.locals, name.Text)
	return nil
}

// loadExp compiles a single token expression into the given slot.
func (state *compState) loadExp(dst, line int) error {
	tok, err := state.lex.Next()
	if err != nil {
		return err
	}

	switch tok.Kind {
	case lex.Nil:
		state.addInst(createAB(opLoadNil, dst, 0), line)
	case lex.True:
		state.addInst(createAB(opLoadBool, dst, 1), line)
	case lex.False:
		state.addInst(createAB(opLoadBool, dst, 0), line)
	case lex.Int:
		if tok.Int >= minArgSBx && tok.Int <= maxArgSBx {
			state.addInst(createAsBx(opLoadInt, dst, int(tok.Int)), line)
			return nil
		}
		return state.loadConst(dst, tok.Int, line)
	case lex.Float:
		return state.loadConst(dst, tok.Float, line)
	case lex.String:
		return state.loadConst(dst, tok.Text, line)
	case lex.Name:
		return state.loadVar(dst, tok.Text, line)
	default:
		return badArgument(tok)
	}
	return nil
}

func (state *compState) loadConst(dst int, v value, line int) error {
	k, err := state.constK(v, line)
	if err != nil {
		return err
	}
	state.addInst(createAB(opLoadK, dst, k), line)
	return nil
}

// loadVar loads a variable into the given slot, a local is copied from its slot and anything else is read
// from the global table.
func (state *compState) loadVar(dst int, name string, line int) error {
	if i, ok := state.getLocal(name); ok {
		state.addInst(createAB(opMove, dst, i), line)
		return nil
	}

	k, err := state.constK(name, line)
	if err != nil {
		return err
	}
	state.addInst(createAB(opGetGlobal, dst, k), line)
	return nil
}
