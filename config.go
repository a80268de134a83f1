/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/retroenv/retrogolib/log"
	"github.com/tunra/Chip8VM/chip8"
)

/// errUsage is returned by parseFlags when there is nothing to run.
///
var errUsage = errors.New("no program given")

/// options parsed from the command line.
///
type options struct {
	file  string
	speed int

	quirks string
	shift  bool
	jump   bool
	store  bool
	logic  bool
	clip   bool

	origin uint
	seed   int64
	scale  int

	term     bool
	headless bool
	cycles   int
	state    string

	debug   bool
	quiet   bool
	version bool
}

/// CreateLogger creates a logger for the debug and quiet flags.
///
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

/// parseFlags reads the options from args (without the program name).
/// The SDL host may be started without a file and asks for one; the
/// other hosts need one.
///
func parseFlags(args []string, usage io.Writer) (*options, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(usage)

	opts := &options{}
	origin := "0x200"

	flags.IntVar(&opts.speed, "speed", chip8.DefaultSpeed, "instructions executed per second")
	flags.StringVar(&opts.quirks, "quirks", "default", "quirk preset: default, vip or chip48")
	flags.BoolVar(&opts.shift, "shift", false, "8XY6/8XYE shift VY into VX")
	flags.BoolVar(&opts.jump, "jump", false, "BNNN jumps to XNN + VX")
	flags.BoolVar(&opts.store, "store", false, "FX55/FX65 advance I")
	flags.BoolVar(&opts.logic, "logic", false, "8XY1/8XY2/8XY3 reset VF")
	flags.BoolVar(&opts.clip, "clip", false, "clip sprites at the screen edges")
	flags.StringVar(&origin, "origin", origin, "address the program is loaded at")
	flags.Int64Var(&opts.seed, "seed", 0, "RND seed, 0 for a random one")
	flags.IntVar(&opts.scale, "scale", 10, "window pixels per CHIP-8 pixel")
	flags.BoolVar(&opts.term, "term", false, "run in the terminal")
	flags.BoolVar(&opts.headless, "headless", false, "run without a display and print the final state")
	flags.IntVar(&opts.cycles, "cycles", 1000, "instructions to run with -headless")
	flags.StringVar(&opts.state, "state", "", "save state file (default: program path + .state)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.quiet, "q", false, "only log errors")
	flags.BoolVar(&opts.version, "version", false, "print the version and exit")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	n, err := strconv.ParseUint(origin, 0, 16)
	if err != nil || n >= chip8.MemorySize {
		return nil, fmt.Errorf("invalid origin %q", origin)
	}
	opts.origin = uint(n)

	if opts.cycles < 0 {
		return nil, fmt.Errorf("invalid cycle count %d", opts.cycles)
	}

	if flags.NArg() > 0 {
		opts.file = flags.Arg(0)
	}

	if opts.version {
		return opts, nil
	}

	if opts.file == "" && (opts.term || opts.headless) {
		fmt.Fprintf(usage, "usage: chip8 [options] <program>\n\n")
		flags.PrintDefaults()
		return nil, errUsage
	}

	return opts, nil
}

/// interpreterQuirks returns the preset with the individual flags
/// applied on top.
///
func (opts *options) interpreterQuirks() (chip8.Quirks, error) {
	q, err := chip8.QuirksPreset(opts.quirks)
	if err != nil {
		return q, err
	}

	q.LegacyShift = q.LegacyShift || opts.shift
	q.LegacyJump = q.LegacyJump || opts.jump
	q.LegacyStore = q.LegacyStore || opts.store
	q.LegacyLogic = q.LegacyLogic || opts.logic
	q.ClipSprites = q.ClipSprites || opts.clip

	return q, nil
}

/// statePath is where save states for the current program go.
///
func (opts *options) statePath() string {
	if opts.state != "" {
		return opts.state
	}
	if opts.file == "" {
		return "chip8.state"
	}
	return opts.file + ".state"
}
