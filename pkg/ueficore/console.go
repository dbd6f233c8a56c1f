// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ueficore

import (
	"strings"
	"unicode/utf8"

	"github.com/costinm/efi-hello/pkg/uefi"
)

// Console represents an UEFI text output device as an io.Writer, suitable
// for log output.
type Console struct {
	// ForceLine emits CR before each LF
	ForceLine bool

	Out *uefi.EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL
}

// Write transmits p in as many OutputString calls as needed to fit the
// protocol text buffer. Characters outside the Basic Multilingual Plane, NUL
// and invalid UTF-8 are replaced with U+FFFD.
func (c *Console) Write(p []byte) (n int, err error) {
	var line strings.Builder

	const maxUnits = uefi.TextBufferSize - 1
	units := 0

	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])

		if r > 0xffff || r == 0 {
			r = utf8.RuneError
		}

		w := 1
		if r == '\n' && c.ForceLine {
			w = 2
		}

		if units+w > maxUnits {
			if err = c.output(line.String()); err != nil {
				return
			}

			n = i
			line.Reset()
			units = 0
		}

		if w == 2 {
			line.WriteByte('\r')
		}

		line.WriteRune(r)
		units += w
		i += size
	}

	if units > 0 {
		if err = c.output(line.String()); err != nil {
			return
		}
	}

	return len(p), nil
}

func (c *Console) output(s string) error {
	status, err := c.Out.WriteText(s)

	if err != nil {
		return err
	}

	return uefi.StatusError(status)
}

// ClearScreen clears the device and moves the cursor to the top left.
func (c *Console) ClearScreen() error {
	return uefi.StatusError(c.Out.ClearScreen())
}
