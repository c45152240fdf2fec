// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		SerializedStreamHeader{RootID: 1, HeaderID: -1, MajorVersion: 1, MinorVersion: 0},
		BinaryLibrary{LibraryID: 2, LibraryName: "mscorlib"},
		ClassWithMembersAndTypes{
			classWithTypesBody: classWithTypesBody{
				ClassInfo: ClassInfo{ObjectID: 1, Name: "DialogLine", MemberNames: []string{"Id", "Text"}},
				MemberTypeInfo: MemberTypeInfo{
					Kinds:  []BinaryKind{BinaryPrimitive, BinaryString},
					Extras: []KindExtra{{Primitive: PrimitiveInt32}, {}},
				},
				Values: []Value{
					{Tag: TagI32, I32: 1},
					{Tag: TagRecord, Record: BinaryObjectString{ObjectID: 3, Value: "Stay a while and listen."}},
				},
			},
			LibraryID: 2,
		},
		MessageEnd{},
	}
}

func TestFileParseEncodeRoundTripUncompressed(t *testing.T) {
	f := &File{Header: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}, Records: sampleRecords()}
	encoded, err := f.Encode()
	require.NoError(t, err)
	require.True(t, IsUDLG(encoded))

	parsed := NewBytes(encoded)
	require.NoError(t, parsed.Parse())
	require.False(t, parsed.Compressed)
	require.Equal(t, f.Header, parsed.Header)
	require.Equal(t, f.Records, parsed.Records)

	reEncoded, err := parsed.Encode()
	require.NoError(t, err)
	require.Equal(t, encoded, reEncoded)
}

func TestFileParseEncodeRoundTripCompressed(t *testing.T) {
	f := &File{Header: [8]byte{0xAA, 0xBB, 0, 0, 0, 0, 0, 0}, Compressed: true, Records: sampleRecords()}
	encoded, err := f.Encode()
	require.NoError(t, err)

	parsed := NewBytes(encoded)
	require.NoError(t, parsed.Parse())
	require.True(t, parsed.Compressed)
	require.Equal(t, f.Records, parsed.Records)
}

func TestFileParseBadSignatureFails(t *testing.T) {
	data := append([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, make([]byte, 8)...)
	f := NewBytes(data)
	err := f.Parse()
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestFileParseTooSmallFails(t *testing.T) {
	f := NewBytes(Signature[:10])
	err := f.Parse()
	require.ErrorIs(t, err, ErrUnexpectedEnd)
}

func TestIsUDLGPath(t *testing.T) {
	dir := t.TempDir()

	f := &File{Records: sampleRecords()}
	encoded, err := f.Encode()
	require.NoError(t, err)

	good := filepath.Join(dir, "dialog.bytes")
	require.NoError(t, os.WriteFile(good, encoded, 0o644))
	ok, err := IsUDLGPath(good)
	require.NoError(t, err)
	require.True(t, ok)

	bad := filepath.Join(dir, "not_udlg.txt")
	require.NoError(t, os.WriteFile(bad, []byte("just some text"), 0o644))
	ok, err = IsUDLGPath(bad)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOpenAndCloseFromDisk(t *testing.T) {
	dir := t.TempDir()
	f := &File{Records: sampleRecords()}
	encoded, err := f.Encode()
	require.NoError(t, err)

	path := filepath.Join(dir, "dialog.bytes")
	require.NoError(t, os.WriteFile(path, encoded, 0o644))

	opened, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, opened.Parse())
	require.Equal(t, f.Records, opened.Records)
	require.NoError(t, opened.Close())
}
