// System Table – §4.3 UEFI 2.10
package uefi

import (
	"fmt"
	"unsafe"
)

const EFI_SYSTEM_TABLE_SIGNATURE = 0x5453595320494249 // "IBI SYST"

// EFI_TABLE_HEADER
// Data structure that precedes all of the standard EFI table types.
type EFI_TABLE_HEADER struct {
	Signature  uint64
	Revision   uint32
	HeaderSize uint32
	CRC32      uint32
	_          uint32
}

// EFI_SYSTEM_TABLE
// Contains pointers to the runtime and boot services tables.
//
// The table is owned by firmware and valid while boot services are active.
// Only the fields this application dereferences are named, the others are
// kept for their width and never read.
type EFI_SYSTEM_TABLE struct {
	Hdr              EFI_TABLE_HEADER
	FirmwareVendor   *CHAR16
	FirmwareRevision uint32
	_                uint32
	_                EFI_HANDLE // ConsoleInHandle
	_                uintptr    // ConIn
	_                EFI_HANDLE // ConsoleOutHandle
	ConOut           *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL
	_                EFI_HANDLE // StandardErrorHandle
	StdErr           *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL
	RuntimeServices  uintptr
	_                uintptr // BootServices
	_                UINTN   // NumberOfTableEntries
	_                uintptr // ConfigurationTable
}

// SystemTableAt returns the system table found at the address handed over by
// firmware at image entry. The address is trusted as is.
func SystemTableAt(addr uintptr) *EFI_SYSTEM_TABLE {
	return (*EFI_SYSTEM_TABLE)(unsafe.Pointer(addr))
}

// OutputProtocol returns the console output protocol published by the
// system table. The reference is borrowed from firmware.
func OutputProtocol(st *EFI_SYSTEM_TABLE) *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL {
	return st.ConOut
}

// ErrorProtocol returns the standard error output protocol published by the
// system table.
func ErrorProtocol(st *EFI_SYSTEM_TABLE) *EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL {
	return st.StdErr
}

// Revision is the specification revision a table conforms to, major version
// in the upper 16 bits and minor version in the lower ones.
type Revision uint32

func (r Revision) Major() uint16 {
	return uint16(r >> 16)
}

func (r Revision) Minor() uint16 {
	return uint16(r)
}

// String formats the revision the way the specification names it: minor
// 70 is "2.7", minor 31 is "2.3.1".
func (r Revision) String() string {
	major, minor := r.Major(), r.Minor()

	if minor%10 == 0 {
		return fmt.Sprintf("%d.%d", major, minor/10)
	}

	return fmt.Sprintf("%d.%d.%d", major, minor/10, minor%10)
}

// Revision returns the revision of the system table header.
func (st *EFI_SYSTEM_TABLE) Revision() Revision {
	return Revision(st.Hdr.Revision)
}
