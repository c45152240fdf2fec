// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

import (
	"bytes"
	"fmt"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// Signature is the fixed 16-byte magic every well-formed UDLG file opens
// with.
var Signature = [16]byte{
	0xF9, 0x53, 0x8B, 0x83, 0x1F, 0x36, 0x32, 0x43,
	0xBA, 0xAE, 0x0D, 0x17, 0x86, 0x5D, 0x08, 0x54,
}

const (
	signatureSize = 16
	headerSize    = 8
)

// File is a decoded UDLG dialog file: the 16-byte signature is implicit
// (Signature), the 8-byte opaque Header is preserved verbatim, and
// Records holds the full record stream in file order, the last of which
// is always a MessageEnd.
type File struct {
	Header     [headerSize]byte
	Compressed bool
	Records    []Record

	data mmap.MMap
	f    *os.File
}

// IsUDLG reports whether data begins with the fixed UDLG signature.
func IsUDLG(data []byte) bool {
	return len(data) >= signatureSize && bytes.Equal(data[:signatureSize], Signature[:])
}

// IsUDLGPath reports whether the file named by path begins with the fixed
// UDLG signature, without reading the rest of the file.
func IsUDLGPath(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	var buf [signatureSize]byte
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		return false, nil
	}
	return bytes.Equal(buf[:], Signature[:]), nil
}

// Open memory-maps the file named by name and returns an unparsed File;
// call Parse to decode its records.
func Open(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	// Memory map the file instead of reading it whole into memory.
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &File{data: data, f: f}, nil
}

// NewBytes wraps an in-memory buffer as an unparsed File; call Parse to
// decode its records. Unlike Open, Close on a File built this way is a
// no-op.
func NewBytes(data []byte) *File {
	return &File{data: data}
}

// Close releases the memory mapping and underlying file handle, if any.
func (f *File) Close() error {
	if f.data != nil && f.f != nil {
		if err := f.data.Unmap(); err != nil {
			return err
		}
	}
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

// Parse decodes the signature, header, and record stream from f's
// underlying data. If the payload is gzip-compressed it is transparently
// decompressed first and Compressed is set so Encode recompresses it on
// the way back out.
func (f *File) Parse() error {
	if len(f.data) < signatureSize+headerSize {
		return fmt.Errorf("%w: file too small for header", ErrUnexpectedEnd)
	}
	if !bytes.Equal(f.data[:signatureSize], Signature[:]) {
		return ErrBadSignature
	}
	copy(f.Header[:], f.data[signatureSize:signatureSize+headerSize])

	payload := f.data[signatureSize+headerSize:]
	if looksCompressed(payload) {
		decompressed, err := decompressPayload(payload)
		if err != nil {
			return err
		}
		payload = decompressed
		f.Compressed = true
	}

	c := NewCursor(payload)
	store := NewGraphStore()
	for {
		rec, err := ReadRecord(c, store)
		if err != nil {
			return fmt.Errorf("record at offset %d: %w", c.Tell(), err)
		}
		store.Append(rec)
		if _, done := rec.(MessageEnd); done {
			break
		}
	}
	f.Records = store.Records
	log.Debugf("parsed %d records, compressed=%v", len(f.Records), f.Compressed)
	return nil
}

// Encode serializes Header and Records back into a full UDLG file image,
// recompressing the payload if Compressed is set.
func (f *File) Encode() ([]byte, error) {
	store := NewGraphStore()
	for _, r := range f.Records {
		store.Append(r)
	}

	body := NewWriteCursor(len(f.data))
	for _, r := range f.Records {
		if err := WriteRecord(body, r, store); err != nil {
			return nil, err
		}
	}
	payload := body.Bytes()
	if f.Compressed {
		compressed, err := compressPayload(payload)
		if err != nil {
			return nil, err
		}
		payload = compressed
	}

	out := NewWriteCursor(signatureSize + headerSize + len(payload))
	out.Write(Signature[:])
	out.Write(f.Header[:])
	out.Write(payload)
	return out.Bytes(), nil
}
