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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
	"github.com/tunra/Chip8VM/chip8"
)

/// program is a loaded program image.
///
type program struct {
	/// Path the program was read from.
	///
	Path string

	/// ROM is the binary image.
	///
	ROM []byte

	/// Origin is the address to load the ROM at.
	///
	Origin uint16

	/// Breakpoints set by the source, if it was assembled.
	///
	Breakpoints []chip8.Breakpoint
}

/// isSource reports whether the file is assembly source rather than a
/// binary image.
///
func isSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".asm", ".c8s", ".src":
		return true
	}
	return false
}

/// loadProgram reads a binary image, or assembles a source file.
///
func loadProgram(path string, origin uint16) (*program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	if !isSource(path) {
		return &program{Path: path, ROM: data, Origin: origin}, nil
	}

	asm, err := chip8.Assemble(data)
	if err != nil {
		return nil, fmt.Errorf("assembling %s: %w", filepath.Base(path), err)
	}

	// assembled programs are always addressed from 0x200
	return &program{
		Path:        path,
		ROM:         asm.ROM,
		Origin:      chip8.ProgramOrigin,
		Breakpoints: asm.Breakpoints,
	}, nil
}

/// load the program into the CHIP-8, replacing its breakpoints.
///
func (p *program) load(vm *chip8.CHIP_8, logger *log.Logger) error {
	if err := vm.Load(p.Origin, p.ROM); err != nil {
		return fmt.Errorf("loading %s: %w", filepath.Base(p.Path), err)
	}

	vm.Breakpoints = make(map[uint16]chip8.Breakpoint, len(p.Breakpoints))
	for _, bp := range p.Breakpoints {
		vm.Breakpoints[bp.Address] = bp
	}

	logger.Info("Loaded program",
		log.String("file", filepath.Base(p.Path)),
		log.Int("size", len(p.ROM)),
		log.Hex("origin", p.Origin),
		log.Int("breakpoints", len(p.Breakpoints)))

	return nil
}
