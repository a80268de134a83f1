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
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}

	if opts.version {
		fmt.Println(buildinfo.Version(version, commit, date))
		return
	}

	// log lines would tear the terminal display
	logger := CreateLogger(opts.debug, opts.quiet || opts.term)

	if !opts.quiet && !opts.term {
		logger.Info("chip8", log.String("version", buildinfo.Version(version, commit, date)))
	}

	if err := run(ctx, opts, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Fatal(err.Error())
	}
}

/// run starts the host chosen by the options.
///
func run(ctx context.Context, opts *options, logger *log.Logger) error {
	s, err := newSession(opts, logger)
	if err != nil {
		return err
	}

	switch {
	case opts.headless:
		return runHeadless(ctx, s, os.Stdout)
	case opts.term:
		return runTerminal(ctx, s, os.Stdin, os.Stdout)
	}

	return runSDL(ctx, s)
}
