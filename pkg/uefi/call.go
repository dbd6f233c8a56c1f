package uefi

import (
	"sync"
)

// CallHandler dispatches a firmware function pointer with its arguments
// already widened to 64 bits and returns the raw EFI_STATUS.
type CallHandler func(fn uint64, args []uint64) (status uint64)

var (
	mux  sync.Mutex
	call CallHandler = nativeCall
)

// SetCallHandler replaces the dispatcher used for every firmware call, which
// allows the protocol layer to run against simulated firmware. The returned
// function restores the previous handler.
func SetCallHandler(h CallHandler) (restore func()) {
	mux.Lock()
	defer mux.Unlock()

	prev := call
	call = h

	return func() {
		mux.Lock()
		defer mux.Unlock()
		call = prev
	}
}

// callService calls an UEFI service. The first four arguments travel in
// registers, callers always get at least that many slots.
func callService(fn uint64, args []uint64) (status uint64) {
	var regs [4]uint64

	if len(args) < len(regs) {
		copy(regs[:], args)
		args = regs[:]
	}

	mux.Lock()
	defer mux.Unlock()

	return call(fn, args)
}

func nativeCall(fn uint64, args []uint64) uint64 {
	return callFn(fn, len(args), args)
}

// The UefiCallN helpers invoke fn with pointer arguments converted in the call
// expression, as uintptr(unsafe.Pointer(p)), which keeps the pointed memory
// on the heap and alive until the call returns.

//go:uintptrescapes
func UefiCall1(fn uintptr, a uintptr) EFI_STATUS {
	return EFI_STATUS(callService(uint64(fn), []uint64{uint64(a)}))
}

//go:uintptrescapes
func UefiCall2(fn uintptr, a uintptr, b uintptr) EFI_STATUS {
	return EFI_STATUS(callService(uint64(fn), []uint64{uint64(a), uint64(b)}))
}

//go:uintptrescapes
func UefiCall4(fn uintptr, a uintptr, b uintptr, c uintptr, d uintptr) EFI_STATUS {
	return EFI_STATUS(callService(uint64(fn), []uint64{uint64(a), uint64(b), uint64(c), uint64(d)}))
}
