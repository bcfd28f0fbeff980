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

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/milochristiansen/minilua"
	"github.com/milochristiansen/minilua/luautil"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1 // I/O or configuration trouble.
	ExitUsage    = 2
	ExitScan     = 3
	ExitSyntax   = 4
	ExitRuntime  = 5
	ExitInternal = 70
)

// ExitCode maps an error from compiling or running a script to an exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch luautil.TypeOf(err) {
	case luautil.ErrTypGenLexer:
		return ExitScan
	case luautil.ErrTypGenSyntax, luautil.ErrTypCompileLimit:
		return ExitSyntax
	case luautil.ErrTypGenRuntime:
		return ExitRuntime
	case luautil.ErrTypWrapped, luautil.ErrTypBinLoader:
		return ExitFailure
	default:
		return ExitInternal
	}
}

// Run is the whole program: it parses args, runs the script, and returns the exit code.
// Script output goes to stdout, everything else to stderr.
func Run(args []string, stdout, stderr io.Writer) int {
	config, err := ParseArgs(args, os.Getenv)
	if err != nil {
		var usage *UsageError
		if errors.As(err, &usage) {
			fmt.Fprintf(stderr, "minilua: %v\n\n", err)
			PrintUsage(stderr)
			return ExitUsage
		}
		fmt.Fprintf(stderr, "minilua: %v\n", err)
		return ExitFailure
	}
	if config.ShowHelp {
		PrintUsage(stdout)
		return ExitOK
	}

	logger, err := NewLogger(config.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "minilua: %v\n", err)
		return ExitFailure
	}

	r := &runner{
		config: config,
		stdout: stdout,
		stderr: stderr,
		log:    logger,
		color:  useColor(config.Color, stderr),
	}
	return r.run()
}

type runner struct {
	config *Config
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
	color  bool
}

func (r *runner) run() int {
	if r.config.ConfigFile != "" {
		r.log.Debug("loaded config", "file", r.config.ConfigFile)
	}

	file, err := os.Open(r.config.Script)
	if err != nil {
		return r.fail(err, ExitFailure)
	}
	defer file.Close()

	proto, err := r.load(bufio.NewReader(file))
	if err != nil {
		return r.fail(err, ExitCode(err))
	}
	r.log.Debug("compiled", "instructions", proto.Len(), "constants", len(proto.Constants()), "locals", len(proto.Locals()))

	if r.config.Dump {
		fmt.Fprintln(r.stderr, proto)
	}

	if r.config.Output != "" {
		return r.write(proto)
	}

	l := lua.NewState()
	l.Output = r.stdout
	if r.config.LogLevel == "debug" {
		l.Logger = r.log
	}

	if err := l.Execute(proto); err != nil {
		return r.fail(err, ExitCode(err))
	}
	r.log.Debug("finished", "script", r.config.Script, "stack", l.StackLen())
	return ExitOK
}

// load reads either a binary chunk or source text, whichever the file holds.
func (r *runner) load(in *bufio.Reader) (*lua.Proto, error) {
	sig, _ := in.Peek(len(lua.BinarySignature))
	if string(sig) == lua.BinarySignature {
		r.log.Debug("loading binary chunk", "script", r.config.Script)
		return lua.Load(in, r.config.Script)
	}

	src, err := NewSourceReader(in, r.config.Encoding)
	if err != nil {
		return nil, err
	}

	r.log.Debug("compiling", "script", r.config.Script, "encoding", r.config.Encoding)
	return lua.Compile(src, r.config.Script)
}

// write saves the compiled chunk to the -o file.
func (r *runner) write(proto *lua.Proto) int {
	data, err := proto.Dump()
	if err != nil {
		return r.fail(err, ExitCode(err))
	}
	if err := os.WriteFile(r.config.Output, data, 0o644); err != nil {
		return r.fail(err, ExitFailure)
	}
	r.log.Debug("wrote binary chunk", "file", r.config.Output, "bytes", len(data))
	return ExitOK
}

// fail reports err and returns code.
func (r *runner) fail(err error, code int) int {
	kind := "error"
	if typ := luautil.TypeOf(err); typ != luautil.ErrTypWrapped {
		kind = typ.String()
	}

	msg := fmt.Sprintf("minilua: %s: %v", kind, err)
	if r.color {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(r.stderr, msg)
	r.log.Debug("exit", "code", code)
	return code
}

// useColor decides whether error messages get ANSI colors.
func useColor(setting string, w io.Writer) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
