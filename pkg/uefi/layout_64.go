//go:build amd64 || arm64 || riscv64

package uefi

import "unsafe"

// Sizes and offsets fixed by the UEFI specification for 64-bit targets.
const (
	sizeofTableHeader    = 0x18
	sizeofSystemTable    = 0x78
	sizeofTextOutput     = 0x50
	offsetConOut         = 0x40
	offsetStdErr         = 0x50
	offsetRuntimeService = 0x58
)

var (
	layoutSystemTable EFI_SYSTEM_TABLE
	layoutTextOutput  EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL
)

// Compile time layout checks, a mismatch yields a negative or overflowing
// array length.
var (
	_ [sizeofTableHeader - unsafe.Sizeof(EFI_TABLE_HEADER{})]struct{}
	_ [unsafe.Sizeof(EFI_TABLE_HEADER{}) - sizeofTableHeader]struct{}

	_ [sizeofSystemTable - unsafe.Sizeof(layoutSystemTable)]struct{}
	_ [unsafe.Sizeof(layoutSystemTable) - sizeofSystemTable]struct{}

	_ [offsetConOut - unsafe.Offsetof(layoutSystemTable.ConOut)]struct{}
	_ [unsafe.Offsetof(layoutSystemTable.ConOut) - offsetConOut]struct{}

	_ [offsetStdErr - unsafe.Offsetof(layoutSystemTable.StdErr)]struct{}
	_ [unsafe.Offsetof(layoutSystemTable.StdErr) - offsetStdErr]struct{}

	_ [offsetRuntimeService - unsafe.Offsetof(layoutSystemTable.RuntimeServices)]struct{}
	_ [unsafe.Offsetof(layoutSystemTable.RuntimeServices) - offsetRuntimeService]struct{}

	_ [sizeofTextOutput - unsafe.Sizeof(layoutTextOutput)]struct{}
	_ [unsafe.Sizeof(layoutTextOutput) - sizeofTextOutput]struct{}

	_ [OffsetOutputString - unsafe.Offsetof(layoutTextOutput.outputString)]struct{}
	_ [unsafe.Offsetof(layoutTextOutput.outputString) - OffsetOutputString]struct{}

	_ [OffsetClearScreen - unsafe.Offsetof(layoutTextOutput.clearScreen)]struct{}
	_ [unsafe.Offsetof(layoutTextOutput.clearScreen) - OffsetClearScreen]struct{}

	_ [OffsetMode - unsafe.Offsetof(layoutTextOutput.Mode)]struct{}
	_ [unsafe.Offsetof(layoutTextOutput.Mode) - OffsetMode]struct{}
)
