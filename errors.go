// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

import "errors"

// Sentinel errors for the taxonomy described by the format specification.
// All of them are fatal to the decode/encode operation in progress; none
// are retried by the codec itself. Callers wrap these with fmt.Errorf("%w: ...")
// to add positional context (offset, record kind, object id).
var (
	// ErrBadSignature is returned when the first 16 bytes of a file do not
	// match the fixed UDLG signature.
	ErrBadSignature = errors.New("udlg: bad signature")

	// ErrUnexpectedEnd is returned when a read would run past the end of
	// the cursor's buffer.
	ErrUnexpectedEnd = errors.New("udlg: unexpected end of stream")

	// ErrInvalidVarint is returned when a 7-bit encoded integer exceeds a
	// 35-bit shift without terminating.
	ErrInvalidVarint = errors.New("udlg: invalid 7-bit encoded integer")

	// ErrInvalidUTF8 is returned when string bytes fail UTF-8 validation
	// on decode.
	ErrInvalidUTF8 = errors.New("udlg: invalid utf-8 string")

	// ErrUnsupportedRecord is returned for a record tag outside the
	// supported set (0-17).
	ErrUnsupportedRecord = errors.New("udlg: unsupported record kind")

	// ErrUnsupportedPrimitive is returned for a primitive kind outside the
	// fixed-width table.
	ErrUnsupportedPrimitive = errors.New("udlg: unsupported primitive kind")

	// ErrUnsupportedArrayShape is returned for a BinaryArray whose kind is
	// not Single or whose rank is not 1.
	ErrUnsupportedArrayShape = errors.New("udlg: unsupported binary array shape")

	// ErrUnresolvedMetadata is returned when a ClassWithId.MetadataID has
	// no matching class record.
	ErrUnresolvedMetadata = errors.New("udlg: unresolved metadata id")

	// ErrArrayOverrun is returned when null-run expansion lands past the
	// declared slot count of a BinaryArray, ArraySingleObject or
	// ArraySingleString. Class member lists are not null-run expanded
	// (each member reads exactly one value), so they never produce it.
	ErrArrayOverrun = errors.New("udlg: array overrun")

	// ErrDecompression is returned when the gzip payload is malformed.
	ErrDecompression = errors.New("udlg: decompression error")
)
