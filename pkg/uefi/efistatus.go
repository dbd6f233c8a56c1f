package uefi

const (
	uintnSize = 32 << (^uintptr(0) >> 63) // 32 or 64
	errorMask = 1 << uintptr(uintnSize-1)
)

// EFI_STATUS codes, Appendix D UEFI 2.10
const (
	EFI_SUCCESS              EFI_STATUS = 0
	EFI_LOAD_ERROR           EFI_STATUS = errorMask | 1
	EFI_INVALID_PARAMETER    EFI_STATUS = errorMask | 2
	EFI_UNSUPPORTED          EFI_STATUS = errorMask | 3
	EFI_BAD_BUFFER_SIZE      EFI_STATUS = errorMask | 4
	EFI_BUFFER_TOO_SMALL     EFI_STATUS = errorMask | 5
	EFI_NOT_READY            EFI_STATUS = errorMask | 6
	EFI_DEVICE_ERROR         EFI_STATUS = errorMask | 7
	EFI_WRITE_PROTECTED      EFI_STATUS = errorMask | 8
	EFI_OUT_OF_RESOURCES     EFI_STATUS = errorMask | 9
	EFI_NOT_FOUND            EFI_STATUS = errorMask | 14
	EFI_ACCESS_DENIED        EFI_STATUS = errorMask | 15
	EFI_NO_RESPONSE          EFI_STATUS = errorMask | 16
	EFI_TIMEOUT              EFI_STATUS = errorMask | 18
	EFI_NOT_STARTED          EFI_STATUS = errorMask | 19
	EFI_ABORTED              EFI_STATUS = errorMask | 21
	EFI_PROTOCOL_ERROR       EFI_STATUS = errorMask | 24
	EFI_INCOMPATIBLE_VERSION EFI_STATUS = errorMask | 25
	EFI_SECURITY_VIOLATION   EFI_STATUS = errorMask | 26
)

// OutputString reports this warning when some characters could not be
// rendered. Warnings have the high bit clear.
const EFI_WARN_UNKNOWN_GLYPH EFI_STATUS = 1

var errMap = make(map[EFI_STATUS]*Error)

var (
	ErrLoadError           = newError(EFI_LOAD_ERROR, "image failed to load")
	ErrInvalidParameter    = newError(EFI_INVALID_PARAMETER, "a parameter was incorrect")
	ErrUnsupported         = newError(EFI_UNSUPPORTED, "operation not supported")
	ErrBadBufferSize       = newError(EFI_BAD_BUFFER_SIZE, "buffer size incorrect for request")
	ErrBufferTooSmall      = newError(EFI_BUFFER_TOO_SMALL, "buffer too small; size returned in parameter")
	ErrNotReady            = newError(EFI_NOT_READY, "no data pending")
	ErrDeviceError         = newError(EFI_DEVICE_ERROR, "physical device reported an error")
	ErrWriteProtected      = newError(EFI_WRITE_PROTECTED, "device is write-protected")
	ErrOutOfResources      = newError(EFI_OUT_OF_RESOURCES, "out of resources")
	ErrNotFound            = newError(EFI_NOT_FOUND, "item not found")
	ErrAccessDenied        = newError(EFI_ACCESS_DENIED, "access denied")
	ErrNoResponse          = newError(EFI_NO_RESPONSE, "server not found or no response")
	ErrTimeout             = newError(EFI_TIMEOUT, "timeout expired")
	ErrNotStarted          = newError(EFI_NOT_STARTED, "protocol not started")
	ErrAborted             = newError(EFI_ABORTED, "operation aborted")
	ErrProtocolError       = newError(EFI_PROTOCOL_ERROR, "protocol error")
	ErrIncompatibleVersion = newError(EFI_INCOMPATIBLE_VERSION, "requested version incompatible")
	ErrSecurityViolation   = newError(EFI_SECURITY_VIOLATION, "security violation")
)

// IsError reports whether the status belongs to the error domain. Warnings
// are not errors: the operation completed.
func (s EFI_STATUS) IsError() bool {
	return s&errorMask != 0
}

// Code returns the status without the error bit.
func (s EFI_STATUS) Code() uint64 {
	return uint64(s &^ errorMask)
}

type Error struct {
	code EFI_STATUS
	msg  string
}

func newError(code EFI_STATUS, msg string) *Error {
	err := &Error{
		code: code,
		msg:  msg,
	}
	errMap[code] = err
	return err
}

func (e *Error) Error() string {
	return e.msg
}

// Status returns the firmware status the error was built from.
func (e *Error) Status() EFI_STATUS {
	return e.code
}

// StatusError returns the error object given by status. These
// can be checked/managed with errors.Is() and the like.
//
// Success and warnings return nil.
func StatusError(status EFI_STATUS) error {
	if !status.IsError() {
		return nil
	}
	if err, ok := errMap[status]; ok {
		return err
	}
	return &Error{code: status, msg: "unknown EFI error"}
}
