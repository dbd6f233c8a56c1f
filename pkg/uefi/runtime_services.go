package uefi

import "unsafe"

// RuntimeServices is the pointer to the table
// 24 bytes header (0x18)

// EFI Runtime Services offset for ResetSystem
const OffsetResetSystem = 0x68 // 104 = 10 * 8 + 24

// EFI_RESET_TYPE
const (
	EfiResetCold = iota
	EfiResetWarm
	EfiResetShutdown
	EfiResetPlatformSpecific
)

// ResetSystem calls EFI_RUNTIME_SERVICES.ResetSystem(), through the runtime
// services table referenced by st. On success it does not return.
func ResetSystem(st *EFI_SYSTEM_TABLE, resetType int) (err error) {
	fn := *(*uintptr)(unsafe.Pointer(st.RuntimeServices + OffsetResetSystem))

	status := UefiCall4(fn,
		uintptr(resetType),
		uintptr(EFI_SUCCESS),
		0,
		0,
	)

	return StatusError(status)
}
