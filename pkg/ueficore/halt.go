// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ueficore

import (
	"log"
)

// terminate is the state entered by HaltOnPanic.
var terminate = Halt

// Halt stops executing forever, it is the terminal state of the
// application. Boot services, and the screen content, are left as they are.
//
// Outside of UEFI builds Halt parks the calling goroutine on a timer, the
// runtime deadlock detector does not fire.
func Halt() {
	for {
		halt()
	}
}

// HaltOnPanic must be deferred by the entry point, it turns an unrecovered
// panic into the Halt terminal state after logging it.
func HaltOnPanic() {
	if r := recover(); r != nil {
		log.Printf("halting due to panic, %v", r)
		terminate()
	}
}
