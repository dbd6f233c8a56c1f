package uefi

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

var (
	// ErrTextOverflow is returned when the encoded text and its terminator
	// do not fit the destination buffer.
	ErrTextOverflow = errors.New("text exceeds buffer capacity")

	// ErrUnrepresentable is returned for characters which do not fit a
	// single UTF-16 code unit.
	ErrUnrepresentable = errors.New("character requires a surrogate pair")
)

// EncodeText writes s to dst as UTF-16 code units in native byte order,
// followed by a single 0x0000 terminator, and returns the number of code
// units written before the terminator.
//
// Each character maps to exactly one code unit, characters outside the Basic
// Multilingual Plane are rejected. NUL is rejected as well, firmware would
// stop reading at it. Capacity is verified before any code unit
// is stored, dst is left untouched on error.
func EncodeText(dst []uint16, s string) (n int, err error) {
	for i, r := range s {
		switch {
		case r == utf8.RuneError && isInvalidUTF8(s[i:]):
			return 0, fmt.Errorf("invalid UTF-8 at offset %d: %w", i, ErrUnrepresentable)
		case r > 0xffff || utf16.IsSurrogate(r):
			return 0, fmt.Errorf("%U at offset %d: %w", r, i, ErrUnrepresentable)
		case r == 0:
			return 0, fmt.Errorf("NUL at offset %d: %w", i, ErrUnrepresentable)
		}
		n++
	}

	if n+1 > len(dst) {
		return 0, fmt.Errorf("%d code units and terminator, capacity %d: %w", n, len(dst), ErrTextOverflow)
	}

	n = 0
	for _, r := range s {
		dst[n] = uint16(r)
		n++
	}
	dst[n] = 0

	return n, nil
}

func isInvalidUTF8(s string) bool {
	_, size := utf8.DecodeRuneInString(s)
	return size == 1
}
