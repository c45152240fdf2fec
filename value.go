// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

// PrimitiveKind enumerates the .NET primitive type tags used by
// MemberTypeInfo, BinaryArray element kinds, and MemberPrimitiveTyped.
type PrimitiveKind byte

// Primitive kind values, fixed by the wire format.
const (
	PrimitiveBoolean  PrimitiveKind = 1
	PrimitiveByte     PrimitiveKind = 2
	PrimitiveChar     PrimitiveKind = 3
	PrimitiveDecimal  PrimitiveKind = 5
	PrimitiveDouble   PrimitiveKind = 6
	PrimitiveInt16    PrimitiveKind = 7
	PrimitiveInt32    PrimitiveKind = 8
	PrimitiveInt64    PrimitiveKind = 9
	PrimitiveSByte    PrimitiveKind = 10
	PrimitiveSingle   PrimitiveKind = 11
	PrimitiveTimeSpan PrimitiveKind = 12
	PrimitiveDateTime PrimitiveKind = 13
	PrimitiveUInt16   PrimitiveKind = 14
	PrimitiveUInt32   PrimitiveKind = 15
	PrimitiveUInt64   PrimitiveKind = 16
	PrimitiveNull     PrimitiveKind = 17
	PrimitiveString   PrimitiveKind = 18
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveBoolean:
		return "Boolean"
	case PrimitiveByte:
		return "Byte"
	case PrimitiveChar:
		return "Char"
	case PrimitiveDecimal:
		return "Decimal"
	case PrimitiveDouble:
		return "Double"
	case PrimitiveInt16:
		return "Int16"
	case PrimitiveInt32:
		return "Int32"
	case PrimitiveInt64:
		return "Int64"
	case PrimitiveSByte:
		return "SByte"
	case PrimitiveSingle:
		return "Single"
	case PrimitiveTimeSpan:
		return "TimeSpan"
	case PrimitiveDateTime:
		return "DateTime"
	case PrimitiveUInt16:
		return "UInt16"
	case PrimitiveUInt32:
		return "UInt32"
	case PrimitiveUInt64:
		return "UInt64"
	case PrimitiveNull:
		return "Null"
	case PrimitiveString:
		return "String"
	default:
		return "Unknown"
	}
}

// BinaryKind enumerates the shape of a class member or array element.
type BinaryKind byte

// Binary kind values, fixed by the wire format.
const (
	BinaryPrimitive      BinaryKind = 0
	BinaryString         BinaryKind = 1
	BinaryObject         BinaryKind = 2
	BinarySystemClass    BinaryKind = 3
	BinaryClass          BinaryKind = 4
	BinaryObjectArray    BinaryKind = 5
	BinaryStringArray    BinaryKind = 6
	BinaryPrimitiveArray BinaryKind = 7
)

// BinaryArrayKind enumerates the shape of a BinaryArray record. Only
// BinaryArraySingle is fully supported by the codec (spec §4.3).
type BinaryArrayKind byte

// Binary array kind values, fixed by the wire format.
const (
	BinaryArraySingle            BinaryArrayKind = 0
	BinaryArrayJagged            BinaryArrayKind = 1
	BinaryArrayRectangular       BinaryArrayKind = 2
	BinaryArraySingleOffset      BinaryArrayKind = 3
	BinaryArrayJaggedOffset      BinaryArrayKind = 4
	BinaryArrayRectangularOffset BinaryArrayKind = 5
)

func (k BinaryArrayKind) hasOffsets() bool {
	return k == BinaryArraySingleOffset || k == BinaryArrayJaggedOffset || k == BinaryArrayRectangularOffset
}

// RecordKind tags the leading byte of every record in the stream. Only
// kinds 0-17 are supported end to end; 21/22 are reserved.
type RecordKind byte

// Record kind values, fixed by the wire format.
const (
	RecordSerializedStreamHeader         RecordKind = 0
	RecordClassWithId                    RecordKind = 1
	RecordSystemClassWithMembers         RecordKind = 2
	RecordClassWithMembers               RecordKind = 3
	RecordSystemClassWithMembersAndTypes RecordKind = 4
	RecordClassWithMembersAndTypes       RecordKind = 5
	RecordBinaryObjectString             RecordKind = 6
	RecordBinaryArray                    RecordKind = 7
	RecordMemberPrimitiveTyped           RecordKind = 8
	RecordMemberReference                RecordKind = 9
	RecordObjectNull                     RecordKind = 10
	RecordMessageEnd                     RecordKind = 11
	RecordBinaryLibrary                  RecordKind = 12
	RecordObjectNullMultiple256          RecordKind = 13
	RecordObjectNullMultiple             RecordKind = 14
	RecordArraySinglePrimitive           RecordKind = 15
	RecordArraySingleObject              RecordKind = 16
	RecordArraySingleString              RecordKind = 17
	RecordMethodCall                     RecordKind = 21
	RecordMethodReturn                   RecordKind = 22
)

// DateTimeKind mirrors System.DateTimeKind as carried in the low bits of a
// serialized DateTime's tick count.
type DateTimeKind byte

// DateTime kind values.
const (
	DateTimeUnspecified DateTimeKind = 0
	DateTimeUtc         DateTimeKind = 1
	DateTimeLocal       DateTimeKind = 2
)

// DateTimeValue is a decoded .NET DateTime: a kind tag and a 62-bit
// nonnegative tick count.
type DateTimeValue struct {
	Kind  DateTimeKind
	Ticks int64
}

// ValueTag discriminates the variants of Value.
type ValueTag byte

// Value tag values.
const (
	TagBool ValueTag = iota
	TagU8
	TagI8
	TagU16
	TagI16
	TagU32
	TagI32
	TagU64
	TagI64
	TagF32
	TagF64
	TagStr
	TagDecimal
	TagDateTime
	TagTimeSpan
	TagRecord
)

// Value is the tagged-variant leaf of the IR. Exactly one of the typed
// fields is meaningful, selected by Tag.
type Value struct {
	Tag      ValueTag
	Bool     bool
	U8       uint8
	I8       int8
	U16      uint16
	I16      int16
	U32      uint32
	I32      int32
	U64      uint64
	I64      int64
	F32      float32
	F64      float64
	Str      string // also backs Decimal (decimal literal string)
	DateTime DateTimeValue
	TimeSpan int64
	Record   Record
}

// ClassInfo is the shared { ObjectId, Name, MemberNames } header that
// precedes every class-with-members record.
type ClassInfo struct {
	ObjectID    int32
	Name        string
	MemberNames []string
}

// MemberCount returns len(MemberNames), the declared member count.
func (ci ClassInfo) MemberCount() int32 { return int32(len(ci.MemberNames)) }

// ClassTypeInfo names a class-typed member's runtime type and owning
// library.
type ClassTypeInfo struct {
	TypeName  string
	LibraryID int32
}

// MemberTypeInfo carries the per-member BinaryKind and its kind-specific
// extra payload, read as two passes (all kinds, then all extras) per
// spec §4.3.2.
type MemberTypeInfo struct {
	Kinds  []BinaryKind
	Extras []KindExtra
}

// KindExtra is the kind-specific "additional info" that follows a
// BinaryKind tag in a MemberTypeInfo or BinaryArray element descriptor.
// Exactly one field is populated, selected by the owning BinaryKind:
// Primitive/PrimitiveArray -> Primitive; SystemClass -> SystemClassName;
// Class -> Class; String/StringArray/Object -> none.
type KindExtra struct {
	Primitive       PrimitiveKind
	SystemClassName string
	Class           ClassTypeInfo
}

// ArrayInfo is the { ObjectId, Length } header shared by the single-rank
// array record kinds.
type ArrayInfo struct {
	ObjectID int32
	Length   int32
}
