//go:build tamago && amd64

package uefi

// defined in call_amd64.s
//
//go:noescape
func callFn(fn uint64, n int, args []uint64) (status uint64)
