// Package efitest provides simulated firmware tables and services, so that
// code built on package uefi can be exercised outside of UEFI.
package efitest

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/costinm/efi-hello/pkg/uefi"
)

// EFI_2_70_SYSTEM_TABLE_REVISION
const DefaultRevision = 2<<16 | 70

// fake function pointers, device index in bits 8-15, slot offset in bits 0-7
const fnBase = 0xfe000000

const maxString = 1 << 16

// Call is a firmware function invocation observed by the simulation.
type Call struct {
	Device   string
	Function string
	// Arg is the second argument, when the function takes one.
	Arg uint64
	// Text holds the code units read from the string argument of
	// OutputString and TestString, terminator included.
	Text []uint16
}

// Device is a simulated text output device.
type Device struct {
	Name     string
	Protocol *uefi.EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL

	// OutputStatus is returned by OutputString.
	OutputStatus uefi.EFI_STATUS
	// Status is returned by every other function of the device.
	Status uefi.EFI_STATUS

	mode uefi.SIMPLE_TEXT_OUTPUT_MODE
}

// Firmware is a simulated system table with its console devices.
type Firmware struct {
	Table  *uefi.EFI_SYSTEM_TABLE
	ConOut *Device
	StdErr *Device

	// ResetStatus is returned by ResetSystem.
	ResetStatus uefi.EFI_STATUS

	Calls []Call

	devices []*Device
	runtime []uintptr
}

var slotNames = map[uintptr]string{
	uefi.OffsetReset:        "Reset",
	uefi.OffsetOutputString: "OutputString",
	uefi.OffsetTestString:   "TestString",
	uefi.OffsetSetAttribute: "SetAttribute",
	uefi.OffsetClearScreen:  "ClearScreen",
	uefi.OffsetEnableCursor: "EnableCursor",
}

// New builds simulated firmware and installs it as the uefi call handler
// until the test ends.
func New(tb testing.TB) *Firmware {
	fw := &Firmware{
		Table: &uefi.EFI_SYSTEM_TABLE{},
	}

	fw.Table.Hdr.Signature = uefi.EFI_SYSTEM_TABLE_SIGNATURE
	fw.Table.Hdr.Revision = DefaultRevision
	fw.Table.Hdr.HeaderSize = uint32(unsafe.Sizeof(*fw.Table))

	fw.ConOut = fw.newDevice("ConOut")
	fw.StdErr = fw.newDevice("StdErr")
	fw.Table.ConOut = fw.ConOut.Protocol
	fw.Table.StdErr = fw.StdErr.Protocol

	fw.runtime = make([]uintptr, uefi.OffsetResetSystem/8+1)
	fw.runtime[uefi.OffsetResetSystem/8] = fnID(0xff, 0)
	fw.Table.RuntimeServices = uintptr(unsafe.Pointer(&fw.runtime[0]))

	tb.Cleanup(uefi.SetCallHandler(fw.handle))

	return fw
}

// Address returns the raw system table address, as firmware passes it to
// the image entry point.
func (fw *Firmware) Address() uintptr {
	return uintptr(unsafe.Pointer(fw.Table))
}

// Output returns the text received by OutputString on d, terminators
// excluded, as a string.
func (fw *Firmware) Output(d *Device) string {
	var units []uint16

	for _, c := range fw.Calls {
		if c.Device == d.Name && c.Function == "OutputString" {
			units = append(units, c.Text[:len(c.Text)-1]...)
		}
	}

	return decode(units)
}

// Count returns how many times function was called.
func (fw *Firmware) Count(function string) (n int) {
	for _, c := range fw.Calls {
		if c.Function == function {
			n++
		}
	}
	return
}

func (fw *Firmware) newDevice(name string) *Device {
	d := &Device{
		Name:     name,
		Protocol: &uefi.EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL{},
	}

	index := len(fw.devices)
	base := unsafe.Pointer(d.Protocol)

	for off := range slotNames {
		*(*uintptr)(unsafe.Add(base, off)) = fnID(index, off)
	}

	d.mode.MaxMode = 1
	d.mode.Attribute = uefi.EFI_LIGHTGRAY | uefi.EFI_BACKGROUND_BLACK
	d.mode.CursorVisible = true
	d.Protocol.Mode = &d.mode

	fw.devices = append(fw.devices, d)

	return d
}

func fnID(device int, off uintptr) uintptr {
	return fnBase + uintptr(device)<<8 + off
}

func (fw *Firmware) handle(fn uint64, args []uint64) uint64 {
	device := int((fn - fnBase) >> 8)
	off := uintptr(fn & 0xff)

	if device == 0xff {
		fw.Calls = append(fw.Calls, Call{Function: "ResetSystem", Arg: args[0]})
		return uint64(fw.ResetStatus)
	}

	if device < 0 || device >= len(fw.devices) {
		panic(fmt.Sprintf("call to unknown firmware function %#x", fn))
	}

	d := fw.devices[device]

	if args[0] != uint64(uintptr(unsafe.Pointer(d.Protocol))) {
		fw.Calls = append(fw.Calls, Call{Device: d.Name, Function: "invalid this"})
		return uint64(uefi.EFI_INVALID_PARAMETER)
	}

	c := Call{
		Device:   d.Name,
		Function: slotNames[off],
		Arg:      args[1],
	}

	status := d.Status

	switch off {
	case uefi.OffsetOutputString:
		c.Text = readString(args[1])
		status = d.OutputStatus
	case uefi.OffsetTestString:
		c.Text = readString(args[1])
	case uefi.OffsetSetAttribute:
		d.mode.Attribute = int32(args[1])
	case uefi.OffsetClearScreen:
		d.mode.CursorColumn = 0
		d.mode.CursorRow = 0
	case uefi.OffsetEnableCursor:
		d.mode.CursorVisible = args[1] != 0
	}

	fw.Calls = append(fw.Calls, c)

	return uint64(status)
}

// readString copies a null-terminated UTF-16 string, terminator included.
func readString(addr uint64) (units []uint16) {
	p := unsafe.Pointer(uintptr(addr))

	for i := 0; i < maxString; i++ {
		u := *(*uint16)(unsafe.Add(p, i*2))
		units = append(units, u)

		if u == 0 {
			return
		}
	}

	panic("unterminated string")
}

func decode(units []uint16) string {
	r := make([]rune, len(units))

	for i, u := range units {
		r[i] = rune(u)
	}

	return string(r)
}
