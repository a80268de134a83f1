//go:build windows

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
	"fmt"
	"os"
)

/// readTerminal sends each read from the raw console to input. Console
/// reads can't be interrupted, so a blocked read outlives the context
/// and its result is dropped.
///
func readTerminal(ctx context.Context, fd int, input chan<- []byte) error {
	f := os.NewFile(uintptr(fd), "stdin")
	reads := make(chan []byte)
	errs := make(chan error, 1)

	go func() {
		buf := make([]byte, 32)

		for {
			n, err := f.Read(buf)
			if n > 0 {
				b := make([]byte, n)
				copy(b, buf[:n])

				select {
				case reads <- b:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				errs <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			return fmt.Errorf("reading stdin: %w", err)
		case b := <-reads:
			select {
			case input <- b:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
