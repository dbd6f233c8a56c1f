// Simple Text Output Protocol – §12.4 UEFI 2.10
package uefi

import (
	"runtime"
	"sync"
	"unsafe"
)

// Function slot offsets within EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL.
const (
	OffsetReset             = 0x00
	OffsetOutputString      = 0x08
	OffsetTestString        = 0x10
	OffsetQueryMode         = 0x18
	OffsetSetMode           = 0x20
	OffsetSetAttribute      = 0x28
	OffsetClearScreen       = 0x30
	OffsetSetCursorPosition = 0x38
	OffsetEnableCursor      = 0x40
	OffsetMode              = 0x48
)

// Text attributes – §12.4.7
const (
	EFI_BLACK            = 0x00
	EFI_BLUE             = 0x01
	EFI_GREEN            = 0x02
	EFI_CYAN             = 0x03
	EFI_RED              = 0x04
	EFI_MAGENTA          = 0x05
	EFI_BROWN            = 0x06
	EFI_LIGHTGRAY        = 0x07
	EFI_DARKGRAY         = 0x08
	EFI_YELLOW           = 0x0e
	EFI_WHITE            = 0x0f
	EFI_BACKGROUND_BLACK = 0x00
	EFI_BACKGROUND_BLUE  = 0x10
)

// TextBufferSize is the capacity, in code units and including the
// terminator, of the buffer used by WriteText.
const TextBufferSize = 128

// SIMPLE_TEXT_OUTPUT_MODE
// Current mode of the output device, maintained by firmware.
type SIMPLE_TEXT_OUTPUT_MODE struct {
	MaxMode       int32
	Mode          int32
	Attribute     int32
	CursorColumn  int32
	CursorRow     int32
	CursorVisible BOOLEAN
}

// EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL
// The SIMPLE_TEXT_OUTPUT protocol is used to control text-based output
// devices. It is the minimum required protocol for any handle supplied as
// the ConsoleOut or StandardError device.
//
// Every function slot holds a firmware entry point following the platform
// calling convention, they are only ever invoked through callService.
type EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL struct {
	reset        uintptr // (*this, extendedVerification)
	outputString uintptr // (*this, *string)
	testString   uintptr // (*this, *string)
	_            uintptr // queryMode
	_            uintptr // setMode
	setAttribute uintptr // (*this, attribute)
	clearScreen  uintptr // (*this)
	_            uintptr // setCursorPosition
	enableCursor uintptr // (*this, visible)
	Mode         *SIMPLE_TEXT_OUTPUT_MODE
}

// Reset
// Reset the text output device hardware and optionally run diagnostics.
// @retval EFI_SUCCESS      The text output device was reset.
// @retval EFI_DEVICE_ERROR The text output device is not functioning correctly
// .........................and could not be reset.
func (p *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL) Reset(ExtendedVerification BOOLEAN) EFI_STATUS {
	return UefiCall2(p.reset, uintptr(unsafe.Pointer(p)), convertBoolean(ExtendedVerification))
}

// OutputString
// Write a null-terminated string to the output device.
// @param  String The null-terminated string to be displayed on the output device.
// @retval EFI_SUCCESS             The string was output to the device.
// @retval EFI_DEVICE_ERROR        The device reported an error while attempting to output the text.
// @retval EFI_UNSUPPORTED         The output device's mode is not currently in a defined text mode.
// @retval EFI_WARN_UNKNOWN_GLYPH  This warning code indicates that some of the characters in
// ................................the string could not be rendered and were skipped.
func (p *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL) OutputString(String *CHAR16) EFI_STATUS {
	return UefiCall2(p.outputString, uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(String)))
}

// TestString
// Verifies that all characters in a string can be output to the target device.
// @retval EFI_SUCCESS     The device(s) are capable of rendering the output string.
// @retval EFI_UNSUPPORTED Some of the characters in the string cannot be rendered.
func (p *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL) TestString(String *CHAR16) EFI_STATUS {
	return UefiCall2(p.testString, uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(String)))
}

// SetAttribute
// Sets the background and foreground colors for OutputString and ClearScreen.
func (p *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL) SetAttribute(Attribute UINTN) EFI_STATUS {
	return UefiCall2(p.setAttribute, uintptr(unsafe.Pointer(p)), uintptr(Attribute))
}

// ClearScreen
// Clears the output device(s) display to the currently selected background color.
func (p *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL) ClearScreen() EFI_STATUS {
	return UefiCall1(p.clearScreen, uintptr(unsafe.Pointer(p)))
}

// EnableCursor
// Makes the cursor visible or invisible.
func (p *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL) EnableCursor(Visible BOOLEAN) EFI_STATUS {
	return UefiCall2(p.enableCursor, uintptr(unsafe.Pointer(p)), convertBoolean(Visible))
}

// WriteTextBuffer encodes s into buf, terminates it and passes it to
// OutputString.
//
// An encoding failure (ErrTextOverflow, ErrUnrepresentable) is returned as
// err without reaching firmware. Otherwise err is nil and status is the value
// returned by firmware, unchanged.
func (p *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL) WriteTextBuffer(buf []uint16, s string) (status EFI_STATUS, err error) {
	if _, err = EncodeText(buf, s); err != nil {
		return
	}

	status = p.OutputString((*CHAR16)(unsafe.Pointer(&buf[0])))
	runtime.KeepAlive(buf)

	return status, nil
}

var (
	textMux sync.Mutex
	textBuf [TextBufferSize]uint16
)

// WriteText is WriteTextBuffer on a package owned buffer of TextBufferSize
// code units, rebuilt on every call.
func (p *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL) WriteText(s string) (EFI_STATUS, error) {
	textMux.Lock()
	defer textMux.Unlock()

	return p.WriteTextBuffer(textBuf[:], s)
}

// CheckText reports whether every character of s can be rendered, through
// TestString.
func (p *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL) CheckText(s string) (EFI_STATUS, error) {
	textMux.Lock()
	defer textMux.Unlock()

	if _, err := EncodeText(textBuf[:], s); err != nil {
		return EFI_SUCCESS, err
	}

	return p.TestString((*CHAR16)(unsafe.Pointer(&textBuf[0]))), nil
}
