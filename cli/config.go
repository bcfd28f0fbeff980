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

// Package cli is the command line driver: it reads settings, opens the script, and maps whatever goes wrong
// to an exit code.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory if it exists and no -config flag was given.
const DefaultConfigFile = "minilua.yaml"

// Config holds the settings for a single run.
type Config struct {
	Script string `yaml:"-"` // Path of the script to run.

	// Dump writes a listing of the compiled chunk to stderr before running it.
	Dump bool `yaml:"dump"`

	// LogLevel is one of debug, info, warn, or error. At debug every executed instruction is logged.
	LogLevel string `yaml:"log_level"`

	// Encoding is the WHATWG name of the script's character encoding (utf-8, shift_jis, windows-1252, ...).
	Encoding string `yaml:"encoding"`

	// Color is one of auto, always, or never and controls colored error messages.
	Color string `yaml:"color"`

	// Output, if set, is where the compiled chunk is written. The script is not run.
	Output string `yaml:"-"`

	ConfigFile string `yaml:"-"`
	ShowHelp   bool   `yaml:"-"`
}

// UsageError is returned by ParseArgs when the command line itself is wrong.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func defaultConfig() Config {
	return Config{
		LogLevel: "warn",
		Encoding: "utf-8",
		Color:    "auto",
	}
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validColors = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// ParseArgs builds a Config from the command line, the environment (read with getenv), and the config file.
// Flags win over the environment, which wins over the file, which wins over the defaults.
func ParseArgs(args []string, getenv func(string) string) (*Config, error) {
	fset := flag.NewFlagSet("minilua", flag.ContinueOnError)
	fset.SetOutput(io.Discard)

	var flags Config
	fset.BoolVar(&flags.Dump, "dump", false, "print the compiled listing to stderr")
	fset.StringVar(&flags.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	fset.StringVar(&flags.Encoding, "encoding", "", "source file encoding")
	fset.StringVar(&flags.Color, "color", "", "colored errors (auto, always, never)")
	fset.StringVar(&flags.ConfigFile, "config", "", "config file")
	fset.StringVar(&flags.Output, "o", "", "write the compiled chunk to this file instead of running it")
	fset.BoolVar(&flags.ShowHelp, "help", false, "show help")
	fset.BoolVar(&flags.ShowHelp, "h", false, "show help")

	if err := fset.Parse(args); err != nil {
		return nil, &UsageError{Msg: err.Error()}
	}

	config := defaultConfig()
	config.ShowHelp = flags.ShowHelp
	config.Output = flags.Output
	if config.ShowHelp {
		return &config, nil
	}

	if err := loadFile(&config, flags.ConfigFile); err != nil {
		return nil, err
	}

	if v := getenv("MINILUA_LOG_LEVEL"); v != "" {
		config.LogLevel = strings.ToLower(v)
	}
	if v := getenv("MINILUA_ENCODING"); v != "" {
		config.Encoding = v
	}
	if v := getenv("MINILUA_COLOR"); v != "" {
		config.Color = strings.ToLower(v)
	}
	if v := getenv("MINILUA_DUMP"); v != "" {
		config.Dump = v == "1" || strings.ToLower(v) == "true"
	}

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dump":
			config.Dump = flags.Dump
		case "log-level":
			config.LogLevel = strings.ToLower(flags.LogLevel)
		case "encoding":
			config.Encoding = flags.Encoding
		case "color":
			config.Color = strings.ToLower(flags.Color)
		}
	})

	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}
	if !validColors[config.Color] {
		return nil, fmt.Errorf("invalid color setting: %s (must be auto, always, or never)", config.Color)
	}
	if _, err := lookupEncoding(config.Encoding); err != nil {
		return nil, err
	}

	if fset.NArg() != 1 {
		return nil, &UsageError{Msg: fmt.Sprintf("expected exactly one script, got %d arguments", fset.NArg())}
	}
	config.Script = fset.Arg(0)
	return &config, nil
}

// loadFile reads path into config. If path is empty the default file is tried, and it not existing is fine.
func loadFile(config *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse error in %s: %w", path, err)
	}
	config.ConfigFile = path
	return nil
}

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `minilua - run a (tiny subset of) Lua script

Usage:
  minilua [options] script.lua

The script may be source text or a chunk written earlier with -o.

Options:
  -dump                 print the compiled listing to stderr before running
  -log-level <level>    debug, info, warn, or error (default: warn)
  -encoding <name>      source encoding, e.g. utf-8, shift_jis, windows-1252 (default: utf-8)
  -color <when>         colored error messages: auto, always, or never (default: auto)
  -config <file>        read settings from file (default: ./minilua.yaml if it exists)
  -o <file>             write the compiled chunk to file instead of running it
  -h, -help             show this help

Environment Variables:
  MINILUA_LOG_LEVEL, MINILUA_ENCODING, MINILUA_COLOR, MINILUA_DUMP

Exit Codes:
  0 success, 1 I/O or configuration error, 2 usage error, 3 scan error,
  4 syntax or compile error, 5 runtime error, 70 internal error
`)
}
