// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// ByteCursor is a positioned byte buffer supporting fixed-width
// little-endian primitive reads/writes and 7-bit length-prefixed strings.
// It is the leaf-most component: every other piece of the codec reads
// from or writes to one.
type ByteCursor struct {
	buf []byte
	pos int
}

// NewCursor wraps an existing byte slice for reading.
func NewCursor(data []byte) *ByteCursor {
	return &ByteCursor{buf: data}
}

// NewWriteCursor returns an empty cursor ready for writing, with cap
// pre-allocated to size.
func NewWriteCursor(size int) *ByteCursor {
	return &ByteCursor{buf: make([]byte, 0, size)}
}

// Tell returns the current offset.
func (c *ByteCursor) Tell() int { return c.pos }

// Seek repositions the cursor. It does not validate against buffer length;
// the next read will fail with ErrUnexpectedEnd if out of range.
func (c *ByteCursor) Seek(pos int) { c.pos = pos }

// Len returns the total number of bytes buffered.
func (c *ByteCursor) Len() int { return len(c.buf) }

// Bytes returns the underlying buffer (valid for both read and write
// cursors; for a write cursor this is the data written so far).
func (c *ByteCursor) Bytes() []byte { return c.buf }

// Remaining reports how many unread bytes are left.
func (c *ByteCursor) Remaining() int { return len(c.buf) - c.pos }

// ReadExact reads exactly n bytes, failing with ErrUnexpectedEnd if fewer
// remain.
func (c *ByteCursor) ReadExact(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrUnexpectedEnd, n, c.pos, len(c.buf)-c.pos)
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

// Peek reads n bytes without advancing the cursor.
func (c *ByteCursor) Peek(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, fmt.Errorf("%w: peek %d bytes at offset %d, have %d",
			ErrUnexpectedEnd, n, c.pos, len(c.buf)-c.pos)
	}
	return c.buf[c.pos : c.pos+n], nil
}

// Write appends raw bytes to the cursor.
func (c *ByteCursor) Write(data []byte) {
	c.buf = append(c.buf, data...)
	c.pos = len(c.buf)
}

// ReadByte reads a single unsigned byte.
func (c *ByteCursor) ReadByte() (byte, error) {
	b, err := c.ReadExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// WriteByte writes a single byte.
func (c *ByteCursor) WriteByte(b byte) { c.Write([]byte{b}) }

// ReadBool reads a single byte as a boolean (0/1).
func (c *ByteCursor) ReadBool() (bool, error) {
	b, err := c.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// WriteBool writes a boolean as a single 0/1 byte.
func (c *ByteCursor) WriteBool(v bool) {
	if v {
		c.WriteByte(1)
	} else {
		c.WriteByte(0)
	}
}

// ReadInt8 reads a signed byte.
func (c *ByteCursor) ReadInt8() (int8, error) {
	b, err := c.ReadByte()
	return int8(b), err
}

// WriteInt8 writes a signed byte.
func (c *ByteCursor) WriteInt8(v int8) { c.WriteByte(byte(v)) }

// ReadUint16 reads a little-endian uint16.
func (c *ByteCursor) ReadUint16() (uint16, error) {
	b, err := c.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// WriteUint16 writes a little-endian uint16.
func (c *ByteCursor) WriteUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	c.Write(b[:])
}

// ReadInt16 reads a little-endian int16.
func (c *ByteCursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

// WriteInt16 writes a little-endian int16.
func (c *ByteCursor) WriteInt16(v int16) { c.WriteUint16(uint16(v)) }

// ReadUint32 reads a little-endian uint32.
func (c *ByteCursor) ReadUint32() (uint32, error) {
	b, err := c.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// WriteUint32 writes a little-endian uint32.
func (c *ByteCursor) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	c.Write(b[:])
}

// ReadInt32 reads a little-endian int32.
func (c *ByteCursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// WriteInt32 writes a little-endian int32.
func (c *ByteCursor) WriteInt32(v int32) { c.WriteUint32(uint32(v)) }

// ReadUint64 reads a little-endian uint64.
func (c *ByteCursor) ReadUint64() (uint64, error) {
	b, err := c.ReadExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// WriteUint64 writes a little-endian uint64.
func (c *ByteCursor) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	c.Write(b[:])
}

// ReadInt64 reads a little-endian int64.
func (c *ByteCursor) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

// WriteInt64 writes a little-endian int64.
func (c *ByteCursor) WriteInt64(v int64) { c.WriteUint64(uint64(v)) }

// ReadFloat32 reads an IEEE-754 little-endian single.
func (c *ByteCursor) ReadFloat32() (float32, error) {
	v, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// WriteFloat32 writes an IEEE-754 little-endian single.
func (c *ByteCursor) WriteFloat32(v float32) { c.WriteUint32(math.Float32bits(v)) }

// ReadFloat64 reads an IEEE-754 little-endian double.
func (c *ByteCursor) ReadFloat64() (float64, error) {
	v, err := c.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// WriteFloat64 writes an IEEE-754 little-endian double.
func (c *ByteCursor) WriteFloat64(v float64) { c.WriteUint64(math.Float64bits(v)) }

// ReadVarint reads a base-128, 7-bit-per-byte length-prefixed integer, low
// to high, with the high bit of each non-final byte set. Shift reaching or
// exceeding 35 fails with ErrInvalidVarint.
func (c *ByteCursor) ReadVarint() (uint32, error) {
	var result uint32
	var shift uint
	for {
		b, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, ErrInvalidVarint
		}
	}
}

// WriteVarint writes n as a base-128 varint. Zero length encodes as a
// single 0x00 byte; maximum encoded length is 5 bytes.
func (c *ByteCursor) WriteVarint(n uint32) {
	if n == 0 {
		c.WriteByte(0)
		return
	}
	for n > 0 {
		b := byte(n & 0x7f)
		n >>= 7
		if n > 0 {
			b |= 0x80
		}
		c.WriteByte(b)
	}
}

// ReadString7 reads a 7-bit-length-prefixed UTF-8 string.
func (c *ByteCursor) ReadString7() (string, error) {
	n, err := c.ReadVarint()
	if err != nil {
		return "", err
	}
	b, err := c.ReadExact(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// WriteString7 writes s as a 7-bit-length-prefixed UTF-8 string.
func (c *ByteCursor) WriteString7(s string) {
	c.WriteVarint(uint32(len(s)))
	c.Write([]byte(s))
}
