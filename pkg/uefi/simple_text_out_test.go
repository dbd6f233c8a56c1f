package uefi_test

import (
	"encoding/binary"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/costinm/efi-hello/pkg/uefi"
	"github.com/costinm/efi-hello/pkg/uefi/efitest"
)

func terminated(s string) []uint16 {
	return append(utf16.Encode([]rune(s)), 0)
}

func TestWriteTextHelloUEFI(t *testing.T) {
	fw := efitest.New(t)
	out := uefi.OutputProtocol(fw.Table)

	status, err := out.WriteText("Hello, UEFI!")
	require.NoError(t, err)
	assert.Equal(t, uefi.EFI_SUCCESS, status)

	require.Len(t, fw.Calls, 1)
	c := fw.Calls[0]
	assert.Equal(t, "ConOut", c.Device)
	assert.Equal(t, "OutputString", c.Function)
	assert.Len(t, c.Text, 13)
	assert.Equal(t, []uint16{'H', 'e', 'l', 'l', 'o', ',', ' ', 'U', 'E', 'F', 'I', '!', 0}, c.Text)
}

func TestWriteTextASCII(t *testing.T) {
	fw := efitest.New(t)
	out := uefi.OutputProtocol(fw.Table)
	rnd := rand.New(rand.NewSource(1))

	for n := 0; n < uefi.TextBufferSize; n++ {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(0x20 + rnd.Intn(0x5f))
		}
		s := string(b)

		fw.Calls = nil
		status, err := out.WriteText(s)
		require.NoError(t, err, "length %d", n)
		assert.Equal(t, uefi.EFI_SUCCESS, status)

		require.Len(t, fw.Calls, 1)
		assert.Equal(t, terminated(s), fw.Calls[0].Text, "length %d", n)
	}
}

func TestWriteTextOverflow(t *testing.T) {
	fw := efitest.New(t)
	out := uefi.OutputProtocol(fw.Table)

	for _, n := range []int{uefi.TextBufferSize, uefi.TextBufferSize + 1, 4 * uefi.TextBufferSize} {
		_, err := out.WriteText(strings.Repeat("x", n))
		assert.ErrorIs(t, err, uefi.ErrTextOverflow, "length %d", n)
	}

	assert.Empty(t, fw.Calls)
}

func TestWriteTextBufferCapacity(t *testing.T) {
	fw := efitest.New(t)
	out := uefi.OutputProtocol(fw.Table)

	status, err := out.WriteTextBuffer(make([]uint16, 13), "Hello World!")
	require.NoError(t, err)
	assert.Equal(t, uefi.EFI_SUCCESS, status)
	require.Len(t, fw.Calls, 1)
	assert.Equal(t, terminated("Hello World!"), fw.Calls[0].Text)

	_, err = out.WriteTextBuffer(make([]uint16, 12), "Hello World!")
	assert.ErrorIs(t, err, uefi.ErrTextOverflow)
	assert.Len(t, fw.Calls, 1)

	_, err = out.WriteTextBuffer(nil, "")
	assert.ErrorIs(t, err, uefi.ErrTextOverflow)
	assert.Len(t, fw.Calls, 1)
}

func TestWriteTextRebuildsBuffer(t *testing.T) {
	fw := efitest.New(t)
	out := uefi.OutputProtocol(fw.Table)

	for i := 0; i < 2; i++ {
		_, err := out.WriteText("again")
		require.NoError(t, err)
	}

	_, err := out.WriteText("a")
	require.NoError(t, err)

	require.Len(t, fw.Calls, 3)
	assert.Equal(t, fw.Calls[0].Text, fw.Calls[1].Text)
	assert.Equal(t, []uint16{'a', 0}, fw.Calls[2].Text)
}

func TestWriteTextDeviceError(t *testing.T) {
	fw := efitest.New(t)
	fw.ConOut.OutputStatus = uefi.EFI_DEVICE_ERROR
	out := uefi.OutputProtocol(fw.Table)

	status, err := out.WriteText("Hello World!")
	require.NoError(t, err)
	assert.Equal(t, uefi.EFI_DEVICE_ERROR, status)
	assert.ErrorIs(t, uefi.StatusError(status), uefi.ErrDeviceError)
	assert.Equal(t, 1, fw.Count("OutputString"))
}

func TestWriteTextWarningPassesThrough(t *testing.T) {
	fw := efitest.New(t)
	fw.ConOut.OutputStatus = uefi.EFI_WARN_UNKNOWN_GLYPH
	out := uefi.OutputProtocol(fw.Table)

	status, err := out.WriteText("☃")
	require.NoError(t, err)
	assert.Equal(t, uefi.EFI_WARN_UNKNOWN_GLYPH, status)
	assert.NoError(t, uefi.StatusError(status))
	assert.Equal(t, []uint16{0x2603, 0}, fw.Calls[0].Text)
}

func TestWriteTextUnrepresentable(t *testing.T) {
	fw := efitest.New(t)
	out := uefi.OutputProtocol(fw.Table)

	for _, s := range []string{"\U0001F600", "ok \U00010000", "bad \xff utf8", "ab\x00cd"} {
		_, err := out.WriteText(s)
		assert.ErrorIs(t, err, uefi.ErrUnrepresentable, "%q", s)
	}

	assert.Empty(t, fw.Calls)
}

func TestWriteTextWireFormat(t *testing.T) {
	fw := efitest.New(t)
	out := uefi.OutputProtocol(fw.Table)

	if binary.NativeEndian.Uint16([]byte{1, 0}) != 1 {
		t.Skip("wire format check assumes a little-endian host")
	}

	s := "Grüße, «UEFI» 1×2"
	_, err := out.WriteText(s)
	require.NoError(t, err)

	var wire []byte
	for _, u := range fw.Calls[0].Text {
		wire = binary.NativeEndian.AppendUint16(wire, u)
	}

	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	want, err := enc.String(s + "\x00")
	require.NoError(t, err)

	assert.Equal(t, []byte(want), wire)
}

func TestCheckText(t *testing.T) {
	fw := efitest.New(t)
	out := uefi.OutputProtocol(fw.Table)

	status, err := out.CheckText("Hi")
	require.NoError(t, err)
	assert.Equal(t, uefi.EFI_SUCCESS, status)
	require.Len(t, fw.Calls, 1)
	assert.Equal(t, "TestString", fw.Calls[0].Function)
	assert.Equal(t, terminated("Hi"), fw.Calls[0].Text)
}

func TestConsoleControl(t *testing.T) {
	fw := efitest.New(t)
	out := uefi.OutputProtocol(fw.Table)

	assert.Equal(t, uefi.EFI_SUCCESS, out.Reset(false))
	assert.Equal(t, uefi.EFI_SUCCESS, out.SetAttribute(uefi.EFI_YELLOW|uefi.EFI_BACKGROUND_BLUE))
	assert.Equal(t, uefi.EFI_SUCCESS, out.ClearScreen())
	assert.Equal(t, uefi.EFI_SUCCESS, out.EnableCursor(false))

	var functions []string
	for _, c := range fw.Calls {
		functions = append(functions, c.Function)
	}
	assert.Equal(t, []string{"Reset", "SetAttribute", "ClearScreen", "EnableCursor"}, functions)

	assert.EqualValues(t, uefi.EFI_YELLOW|uefi.EFI_BACKGROUND_BLUE, out.Mode.Attribute)
	assert.False(t, bool(out.Mode.CursorVisible))

	fw.ConOut.Status = uefi.EFI_UNSUPPORTED
	assert.Equal(t, uefi.EFI_UNSUPPORTED, out.ClearScreen())
}

func TestNoFirmware(t *testing.T) {
	out := &uefi.EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL{}

	status, err := out.WriteText("nobody listens")
	require.NoError(t, err)
	assert.Equal(t, uefi.EFI_UNSUPPORTED, status)
	assert.True(t, errors.Is(uefi.StatusError(status), uefi.ErrUnsupported))
}
