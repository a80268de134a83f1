//go:build !nosdl

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
	"fmt"

	"github.com/sqweek/dialog"
)

/// errCancelled is returned when the user closes the file dialog.
///
var errCancelled = errors.New("no program chosen")

/// openDialog asks the user for a program to run.
///
func openDialog() (string, error) {
	path, err := dialog.File().
		Filter("CHIP-8 ROM", "ch8", "c8").
		Filter("CHIP-8 Assembly", "asm", "c8s", "src").
		Title("Load CHIP-8 Program").
		Load()

	if errors.Is(err, dialog.ErrCancelled) {
		return "", errCancelled
	}
	if err != nil {
		return "", fmt.Errorf("file dialog: %w", err)
	}

	return path, nil
}
