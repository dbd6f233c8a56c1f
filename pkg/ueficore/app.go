// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ueficore

import (
	"errors"
	"fmt"
	"log"

	"github.com/costinm/efi-hello/pkg/uefi"
)

// App prints a message on the firmware console, with boot services still
// active.
type App struct {
	// Message lines, written in order
	Message []string
	// ClearScreen clears the console first
	ClearScreen bool
	// Status appends the boot services state and system table revision
	Status bool
}

// Run writes the application message to the console output device of st
// and returns the first failing status. A failed write ends the output.
func (a *App) Run(st *uefi.EFI_SYSTEM_TABLE) uefi.EFI_STATUS {
	out := uefi.OutputProtocol(st)

	if a.ClearScreen {
		if status := out.ClearScreen(); status.IsError() {
			log.Printf("could not clear screen, %v", uefi.StatusError(status))
		}
	}

	lines := a.Message

	if a.Status {
		lines = append(lines[:len(lines):len(lines)],
			"Boot services are active",
			fmt.Sprintf("System table revision: %s", st.Revision()),
		)
	}

	for _, line := range lines {
		if status := writeLine(out, line); status != uefi.EFI_SUCCESS {
			return status
		}
	}

	return uefi.EFI_SUCCESS
}

func writeLine(out *uefi.EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL, line string) uefi.EFI_STATUS {
	status, err := out.WriteText(line + "\r\n")

	switch {
	case errors.Is(err, uefi.ErrTextOverflow):
		log.Printf("could not encode line, %v", err)
		return uefi.EFI_BAD_BUFFER_SIZE
	case err != nil:
		log.Printf("could not encode line, %v", err)
		return uefi.EFI_INVALID_PARAMETER
	case status.IsError():
		log.Printf("could not write line, %v", uefi.StatusError(status))
		return status
	}

	return uefi.EFI_SUCCESS
}
