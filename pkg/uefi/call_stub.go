//go:build !(tamago && amd64)

package uefi

// callFn has no firmware to reach outside of a UEFI build, a CallHandler
// must be installed with SetCallHandler.
func callFn(fn uint64, n int, args []uint64) (status uint64) {
	return uint64(EFI_UNSUPPORTED)
}
