//go:build !windows

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
	"syscall"
	"time"
)

/// readTerminal sends each read from the raw terminal to input until the
/// context is done. Stdin is made non-blocking so the read loop can see
/// the context.
///
func readTerminal(ctx context.Context, fd int, input chan<- []byte) error {
	if err := syscall.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("setting nonblocking stdin: %w", err)
	}
	defer func() { _ = syscall.SetNonblock(fd, false) }()

	buf := make([]byte, 32)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := syscall.Read(fd, buf)
		if n > 0 {
			b := make([]byte, n)
			copy(b, buf[:n])

			select {
			case input <- b:
			case <-ctx.Done():
				return nil
			}
			continue
		}

		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || err == syscall.EINTR {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}

		// end of input
		time.Sleep(5 * time.Millisecond)
	}
}
