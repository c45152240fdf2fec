// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNullRunCount(t *testing.T) {
	require.Equal(t, int32(1), nullRunCount(ObjectNull{}))
	require.Equal(t, int32(1), nullRunCount(MessageEnd{}))
	require.Equal(t, int32(5), nullRunCount(ObjectNullMultiple{Count: 5}))
	require.Equal(t, int32(200), nullRunCount(ObjectNullMultiple256{Count: 200}))
}

func TestObjectIDOf(t *testing.T) {
	id, ok := objectIDOf(BinaryObjectString{ObjectID: 11, Value: "x"})
	require.True(t, ok)
	require.Equal(t, int32(11), id)

	_, ok = objectIDOf(MemberReference{IDRef: 3})
	require.False(t, ok)

	_, ok = objectIDOf(MessageEnd{})
	require.False(t, ok)

	id, ok = objectIDOf(ArraySingleObject{ArrayInfo: ArrayInfo{ObjectID: 4}})
	require.True(t, ok)
	require.Equal(t, int32(4), id)
}

func TestClassMetadataOf(t *testing.T) {
	ci := ClassInfo{ObjectID: 1, Name: "Node"}
	mti := MemberTypeInfo{Kinds: []BinaryKind{BinaryPrimitive}}

	gotCI, gotMTI, ok := classMetadataOf(ClassWithMembersAndTypes{classWithTypesBody{ClassInfo: ci, MemberTypeInfo: mti}, 0})
	require.True(t, ok)
	require.Equal(t, ci, gotCI)
	require.Equal(t, mti, gotMTI)

	_, _, ok = classMetadataOf(ClassWithMembers{ClassInfo: ci})
	require.False(t, ok)

	_, _, ok = classMetadataOf(ObjectNull{})
	require.False(t, ok)
}

func TestRecordKindMethods(t *testing.T) {
	require.Equal(t, RecordSerializedStreamHeader, SerializedStreamHeader{}.Kind())
	require.Equal(t, RecordBinaryArray, BinaryArray{}.Kind())
	require.Equal(t, RecordClassWithId, ClassWithId{}.Kind())
	require.Equal(t, RecordMessageEnd, MessageEnd{}.Kind())
}
