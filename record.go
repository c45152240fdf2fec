// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

// Record is the tagged union of every record kind the codec supports.
// Each concrete type below implements Kind(), and RecordCodec's read/write
// paths are plain type switches over these — no dispatch dictionary, no
// reflection.
type Record interface {
	Kind() RecordKind
}

// SerializedStreamHeader opens every well-formed stream.
type SerializedStreamHeader struct {
	RootID       int32
	HeaderID     int32
	MajorVersion int32
	MinorVersion int32
}

// Kind implements Record.
func (SerializedStreamHeader) Kind() RecordKind { return RecordSerializedStreamHeader }

// BinaryLibrary names an assembly referenced by later class records.
type BinaryLibrary struct {
	LibraryID   int32
	LibraryName string
}

// Kind implements Record.
func (BinaryLibrary) Kind() RecordKind { return RecordBinaryLibrary }

// BinaryObjectString is a string value with its own object id, so later
// records can reference it.
type BinaryObjectString struct {
	ObjectID int32
	Value    string
}

// Kind implements Record.
func (BinaryObjectString) Kind() RecordKind { return RecordBinaryObjectString }

// classWithTypesBody holds the fields shared by ClassWithMembersAndTypes
// and SystemClassWithMembersAndTypes.
type classWithTypesBody struct {
	ClassInfo      ClassInfo
	MemberTypeInfo MemberTypeInfo
	Values         []Value
}

// ClassWithMembersAndTypes is a class record carrying full per-member type
// info and an owning library id.
type ClassWithMembersAndTypes struct {
	classWithTypesBody
	LibraryID int32
}

// Kind implements Record.
func (ClassWithMembersAndTypes) Kind() RecordKind { return RecordClassWithMembersAndTypes }

// SystemClassWithMembersAndTypes is identical to ClassWithMembersAndTypes
// but omits the library id (the class belongs to mscorlib/System).
type SystemClassWithMembersAndTypes struct {
	classWithTypesBody
}

// Kind implements Record.
func (SystemClassWithMembersAndTypes) Kind() RecordKind {
	return RecordSystemClassWithMembersAndTypes
}

// ClassWithMembers declares a class's shape with no per-member type info
// and no trailing values (structural only, spec §4.3).
type ClassWithMembers struct {
	ClassInfo ClassInfo
	LibraryID int32
}

// Kind implements Record.
func (ClassWithMembers) Kind() RecordKind { return RecordClassWithMembers }

// SystemClassWithMembers is ClassWithMembers without a library id.
type SystemClassWithMembers struct {
	ClassInfo ClassInfo
}

// Kind implements Record.
func (SystemClassWithMembers) Kind() RecordKind { return RecordSystemClassWithMembers }

// ClassWithId is an instance whose member type layout is borrowed from an
// earlier class-with-types record named by MetadataID.
type ClassWithId struct {
	ObjectID   int32
	MetadataID int32
	Values     []Value
}

// Kind implements Record.
func (ClassWithId) Kind() RecordKind { return RecordClassWithId }

// BinaryArray is a general array record. Only ArrayKind ==
// BinaryArraySingle with Rank == 1 is accepted by the codec; any other
// shape fails with ErrUnsupportedArrayShape (spec §4.3).
type BinaryArray struct {
	ObjectID     int32
	ArrayKind    BinaryArrayKind
	Rank         int32
	Lengths      []int32
	LowerBounds  []int32
	ElementKind  BinaryKind
	ElementExtra KindExtra
	Values       []Value
}

// Kind implements Record.
func (BinaryArray) Kind() RecordKind { return RecordBinaryArray }

// ArraySinglePrimitive is a flat array of one primitive kind; its values
// are raw primitives with no null-run expansion.
type ArraySinglePrimitive struct {
	ArrayInfo   ArrayInfo
	ElementKind PrimitiveKind
	Values      []Value
}

// Kind implements Record.
func (ArraySinglePrimitive) Kind() RecordKind { return RecordArraySinglePrimitive }

// ArraySingleObject is a flat array of object-typed records, subject to
// null-run expansion.
type ArraySingleObject struct {
	ArrayInfo ArrayInfo
	Values    []Value
}

// Kind implements Record.
func (ArraySingleObject) Kind() RecordKind { return RecordArraySingleObject }

// ArraySingleString is a flat array of string-typed records, subject to
// null-run expansion.
type ArraySingleString struct {
	ArrayInfo ArrayInfo
	Values    []Value
}

// Kind implements Record.
func (ArraySingleString) Kind() RecordKind { return RecordArraySingleString }

// MemberReference points at a previously or subsequently declared object
// id (forward references are legal, spec §3).
type MemberReference struct {
	IDRef int32
}

// Kind implements Record.
func (MemberReference) Kind() RecordKind { return RecordMemberReference }

// ObjectNull is a single null slot.
type ObjectNull struct{}

// Kind implements Record.
func (ObjectNull) Kind() RecordKind { return RecordObjectNull }

// ObjectNullMultiple is a run of Count null slots, Count encoded as Int32.
type ObjectNullMultiple struct {
	Count int32
}

// Kind implements Record.
func (ObjectNullMultiple) Kind() RecordKind { return RecordObjectNullMultiple }

// ObjectNullMultiple256 is a run of Count null slots, Count encoded as a
// single byte (runs no longer than 255).
type ObjectNullMultiple256 struct {
	Count uint8
}

// Kind implements Record.
func (ObjectNullMultiple256) Kind() RecordKind { return RecordObjectNullMultiple256 }

// MemberPrimitiveTyped is a single typed primitive value appearing where a
// Record is otherwise expected (e.g. inside a ClassWithId's values).
type MemberPrimitiveTyped struct {
	PrimitiveKind PrimitiveKind
	Value         Value
}

// Kind implements Record.
func (MemberPrimitiveTyped) Kind() RecordKind { return RecordMemberPrimitiveTyped }

// MessageEnd is always the final record of a well-formed stream.
type MessageEnd struct{}

// Kind implements Record.
func (MessageEnd) Kind() RecordKind { return RecordMessageEnd }

// nullRunCount returns the slot contribution of r within an enclosing
// sequence: the run length for the two null-run kinds, 1 for anything
// else (spec §4.3.1).
func nullRunCount(r Record) int32 {
	switch v := r.(type) {
	case ObjectNullMultiple:
		return v.Count
	case ObjectNullMultiple256:
		return int32(v.Count)
	default:
		return 1
	}
}

// objectIDOf returns the object id a record declares, if any: the
// ObjectID of strings, ClassWithId and arrays, and the ClassInfo.ObjectID
// of every class record (including the structural-only
// ClassWithMembers/SystemClassWithMembers). Records with no id of their
// own (MemberReference, ObjectNull*, MessageEnd, MemberPrimitiveTyped,
// SerializedStreamHeader, BinaryLibrary) report false.
func objectIDOf(r Record) (int32, bool) {
	switch v := r.(type) {
	case BinaryObjectString:
		return v.ObjectID, true
	case ClassWithMembersAndTypes:
		return v.ClassInfo.ObjectID, true
	case SystemClassWithMembersAndTypes:
		return v.ClassInfo.ObjectID, true
	case ClassWithMembers:
		return v.ClassInfo.ObjectID, true
	case SystemClassWithMembers:
		return v.ClassInfo.ObjectID, true
	case ClassWithId:
		return v.ObjectID, true
	case BinaryArray:
		return v.ObjectID, true
	case ArraySinglePrimitive:
		return v.ArrayInfo.ObjectID, true
	case ArraySingleObject:
		return v.ArrayInfo.ObjectID, true
	case ArraySingleString:
		return v.ArrayInfo.ObjectID, true
	default:
		return 0, false
	}
}

// classMetadataOf returns the ClassInfo and MemberTypeInfo backing a
// class-with-types record, if r is one.
func classMetadataOf(r Record) (ClassInfo, MemberTypeInfo, bool) {
	switch v := r.(type) {
	case ClassWithMembersAndTypes:
		return v.ClassInfo, v.MemberTypeInfo, true
	case SystemClassWithMembersAndTypes:
		return v.ClassInfo, v.MemberTypeInfo, true
	default:
		return ClassInfo{}, MemberTypeInfo{}, false
	}
}
