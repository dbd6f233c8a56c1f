package uefi

type UINTN uintptr
type EFI_STATUS UINTN
type EFI_HANDLE uintptr

type CHAR16 uint16
type BOOLEAN bool

func convertBoolean(b BOOLEAN) uintptr {
	if b {
		return 1
	}
	return 0
}
