// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build tamago && amd64

// Command hello is an UEFI application which prints a message through the
// firmware console and halts, with boot services still active.
package main

import (
	"io"
	"log"
	"runtime"
	"strconv"
	"strings"
	_ "unsafe"

	"github.com/usbarmory/go-boot/uefi/x64"

	"github.com/costinm/efi-hello/pkg/uefi"
	"github.com/costinm/efi-hello/pkg/ueficore"
)

// Build time variables, set with -ldflags "-X main.Name=value"
var (
	// Console selects the log output in addition to StdErr: COM1 or TEXT
	Console string
	// Message lines, separated by '|'
	Message = "Hello, UEFI!"
	// Clear the screen before printing
	Clear = "true"
	// OnExit selects the terminal state: halt, exit, shutdown or reboot
	OnExit = "halt"

	Revision string
	Build    string
)

// Image entry arguments, as received from firmware and recorded by the
// go-boot x64 entry point.

//go:linkname imageHandle github.com/usbarmory/go-boot/uefi/x64.imageHandle
var imageHandle uint64

//go:linkname systemTable github.com/usbarmory/go-boot/uefi/x64.systemTable
var systemTable uint64

func init() {
	log.SetFlags(0)
}

func main() {
	defer ueficore.HaltOnPanic()

	st := uefi.SystemTableAt(uintptr(systemTable))

	stderr := &ueficore.Console{
		ForceLine: true,
		Out:       uefi.ErrorProtocol(st),
	}

	switch strings.ToLower(Console) {
	case "com1":
		log.SetOutput(io.MultiWriter(stderr, x64.UART0))
	default:
		log.SetOutput(stderr)
	}

	log.Printf("efi-hello %s/%s (%s) • %s %s • image %#x",
		runtime.GOOS, runtime.GOARCH, runtime.Version(), Revision, Build, imageHandle)

	// disable UEFI watchdog
	x64.UEFI.Boot.SetWatchdogTimer(0)

	clearScreen, err := strconv.ParseBool(Clear)

	if err != nil {
		log.Printf("invalid Clear value %q, %v", Clear, err)
	}

	app := &ueficore.App{
		Message:     strings.Split(Message, "|"),
		ClearScreen: clearScreen,
		Status:      true,
	}

	status := app.Run(st)

	if err := uefi.StatusError(status); err != nil {
		log.Printf("output failed, %v", err)
	}

	switch OnExit {
	case "exit":
		if err := x64.UEFI.Boot.Exit(int(status)); err != nil {
			log.Printf("halting due to exit error, %v", err)
		}
	case "shutdown":
		if err := uefi.ResetSystem(st, uefi.EfiResetShutdown); err != nil {
			log.Printf("halting due to reset error, %v", err)
		}
	case "reboot":
		if err := uefi.ResetSystem(st, uefi.EfiResetCold); err != nil {
			log.Printf("halting due to reset error, %v", err)
		}
	}

	ueficore.Halt()
}
