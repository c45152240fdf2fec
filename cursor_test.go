// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorFixedWidthRoundTrip(t *testing.T) {
	w := NewWriteCursor(64)
	w.WriteBool(true)
	w.WriteByte(0xAB)
	w.WriteInt8(-7)
	w.WriteUint16(0xBEEF)
	w.WriteInt16(-1234)
	w.WriteUint32(0xDEADBEEF)
	w.WriteInt32(-123456789)
	w.WriteUint64(0xFEEDFACECAFEBEEF)
	w.WriteInt64(-123456789012345)
	w.WriteFloat32(3.14159)
	w.WriteFloat64(2.718281828459045)

	r := NewCursor(w.Bytes())
	b, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, b)

	u8, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), u8)

	i8, err := r.ReadInt8()
	require.NoError(t, err)
	require.Equal(t, int8(-7), i8)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0xBEEF), u16)

	i16, err := r.ReadInt16()
	require.NoError(t, err)
	require.Equal(t, int16(-1234), i16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	i32, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-123456789), i32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0xFEEDFACECAFEBEEF), u64)

	i64, err := r.ReadInt64()
	require.NoError(t, err)
	require.Equal(t, int64(-123456789012345), i64)

	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	require.InDelta(t, float32(3.14159), f32, 0.00001)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	require.InDelta(t, 2.718281828459045, f64, 0.000000000000001)

	require.Equal(t, 0, r.Remaining())
}

func TestCursorReadExactPastEndFails(t *testing.T) {
	r := NewCursor([]byte{1, 2, 3})
	_, err := r.ReadExact(4)
	require.ErrorIs(t, err, ErrUnexpectedEnd)
}

func TestCursorVarintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 16383, 16384, 2097151, 2097152, 0xFFFFFFFF}
	w := NewWriteCursor(64)
	for _, v := range values {
		w.WriteVarint(v)
	}

	r := NewCursor(w.Bytes())
	for _, want := range values {
		got, err := r.ReadVarint()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestCursorVarintTooLongFails(t *testing.T) {
	// Five continuation bytes in a row never terminate within the 35-bit
	// shift budget.
	r := NewCursor([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01})
	_, err := r.ReadVarint()
	require.ErrorIs(t, err, ErrInvalidVarint)
}

func TestCursorString7RoundTrip(t *testing.T) {
	w := NewWriteCursor(64)
	w.WriteString7("")
	w.WriteString7("hello, world")
	w.WriteString7("unicode: éèê")

	r := NewCursor(w.Bytes())
	for _, want := range []string{"", "hello, world", "unicode: éèê"} {
		got, err := r.ReadString7()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestCursorString7InvalidUTF8Fails(t *testing.T) {
	w := NewWriteCursor(8)
	w.WriteVarint(1)
	w.Write([]byte{0xFF})

	r := NewCursor(w.Bytes())
	_, err := r.ReadString7()
	require.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestCursorSeekAndTell(t *testing.T) {
	r := NewCursor([]byte{1, 2, 3, 4, 5})
	require.Equal(t, 0, r.Tell())
	_, _ = r.ReadExact(2)
	require.Equal(t, 2, r.Tell())
	r.Seek(0)
	require.Equal(t, 0, r.Tell())
}
