// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

import "fmt"

// ReadRecord reads one tagged record from c: a one-byte RecordKind tag
// followed by its kind-specific fields. It is the single entry point for
// every nested record read throughout the codec (class member values,
// array elements, top-level stream records) — the symmetry with
// WriteRecord is the key design invariant: a kind with no write path here
// cannot appear in an encoded file.
func ReadRecord(c *ByteCursor, store *GraphStore) (Record, error) {
	tag, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	switch RecordKind(tag) {
	case RecordSerializedStreamHeader:
		return readSerializedStreamHeader(c)
	case RecordClassWithId:
		return readClassWithId(c, store)
	case RecordSystemClassWithMembers:
		return readSystemClassWithMembers(c)
	case RecordClassWithMembers:
		return readClassWithMembers(c)
	case RecordSystemClassWithMembersAndTypes:
		return readClassWithMembersAndTypes(c, store, true)
	case RecordClassWithMembersAndTypes:
		return readClassWithMembersAndTypes(c, store, false)
	case RecordBinaryObjectString:
		return readBinaryObjectString(c)
	case RecordBinaryArray:
		return readBinaryArray(c, store)
	case RecordMemberPrimitiveTyped:
		return readMemberPrimitiveTyped(c)
	case RecordMemberReference:
		return readMemberReference(c)
	case RecordObjectNull:
		return ObjectNull{}, nil
	case RecordMessageEnd:
		return MessageEnd{}, nil
	case RecordBinaryLibrary:
		return readBinaryLibrary(c)
	case RecordObjectNullMultiple256:
		return readObjectNullMultiple256(c)
	case RecordObjectNullMultiple:
		return readObjectNullMultiple(c)
	case RecordArraySinglePrimitive:
		return readArraySinglePrimitive(c)
	case RecordArraySingleObject:
		return readArraySingleObject(c, store)
	case RecordArraySingleString:
		return readArraySingleString(c, store)
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrUnsupportedRecord, tag)
	}
}

// WriteRecord writes r's one-byte RecordKind tag followed by its
// kind-specific fields, mirroring ReadRecord field-for-field.
func WriteRecord(c *ByteCursor, r Record, store *GraphStore) error {
	c.WriteByte(byte(r.Kind()))
	switch v := r.(type) {
	case SerializedStreamHeader:
		writeSerializedStreamHeader(c, v)
		return nil
	case ClassWithId:
		return writeClassWithId(c, v, store)
	case SystemClassWithMembers:
		writeSystemClassWithMembers(c, v)
		return nil
	case ClassWithMembers:
		writeClassWithMembers(c, v)
		return nil
	case SystemClassWithMembersAndTypes:
		return writeClassWithMembersAndTypes(c, v.classWithTypesBody, 0, true, store)
	case ClassWithMembersAndTypes:
		return writeClassWithMembersAndTypes(c, v.classWithTypesBody, v.LibraryID, false, store)
	case BinaryObjectString:
		writeBinaryObjectString(c, v)
		return nil
	case BinaryArray:
		return writeBinaryArray(c, v, store)
	case MemberPrimitiveTyped:
		return writeMemberPrimitiveTyped(c, v)
	case MemberReference:
		writeMemberReference(c, v)
		return nil
	case ObjectNull:
		return nil
	case MessageEnd:
		return nil
	case BinaryLibrary:
		writeBinaryLibrary(c, v)
		return nil
	case ObjectNullMultiple256:
		c.WriteByte(v.Count)
		return nil
	case ObjectNullMultiple:
		c.WriteInt32(v.Count)
		return nil
	case ArraySinglePrimitive:
		return writeArraySinglePrimitive(c, v)
	case ArraySingleObject:
		return writeArraySingleObject(c, v, store)
	case ArraySingleString:
		return writeArraySingleString(c, v, store)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedRecord, r)
	}
}

func readSerializedStreamHeader(c *ByteCursor) (Record, error) {
	rootID, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	headerID, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	major, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	minor, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	return SerializedStreamHeader{RootID: rootID, HeaderID: headerID, MajorVersion: major, MinorVersion: minor}, nil
}

func writeSerializedStreamHeader(c *ByteCursor, v SerializedStreamHeader) {
	c.WriteInt32(v.RootID)
	c.WriteInt32(v.HeaderID)
	c.WriteInt32(v.MajorVersion)
	c.WriteInt32(v.MinorVersion)
}

func readBinaryLibrary(c *ByteCursor) (Record, error) {
	id, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	name, err := c.ReadString7()
	if err != nil {
		return nil, err
	}
	return BinaryLibrary{LibraryID: id, LibraryName: name}, nil
}

func writeBinaryLibrary(c *ByteCursor, v BinaryLibrary) {
	c.WriteInt32(v.LibraryID)
	c.WriteString7(v.LibraryName)
}

func readBinaryObjectString(c *ByteCursor) (Record, error) {
	id, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	value, err := c.ReadString7()
	if err != nil {
		return nil, err
	}
	return BinaryObjectString{ObjectID: id, Value: value}, nil
}

func writeBinaryObjectString(c *ByteCursor, v BinaryObjectString) {
	c.WriteInt32(v.ObjectID)
	c.WriteString7(v.Value)
}

func readMemberReference(c *ByteCursor) (Record, error) {
	id, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	return MemberReference{IDRef: id}, nil
}

func writeMemberReference(c *ByteCursor, v MemberReference) {
	c.WriteInt32(v.IDRef)
}

func readObjectNullMultiple(c *ByteCursor) (Record, error) {
	n, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	return ObjectNullMultiple{Count: n}, nil
}

func readObjectNullMultiple256(c *ByteCursor) (Record, error) {
	n, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	return ObjectNullMultiple256{Count: n}, nil
}

func readMemberPrimitiveTyped(c *ByteCursor) (Record, error) {
	kindByte, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	kind := PrimitiveKind(kindByte)
	val, err := ReadPrimitive(c, kind)
	if err != nil {
		return nil, err
	}
	return MemberPrimitiveTyped{PrimitiveKind: kind, Value: val}, nil
}

func writeMemberPrimitiveTyped(c *ByteCursor, v MemberPrimitiveTyped) error {
	c.WriteByte(byte(v.PrimitiveKind))
	return WritePrimitive(c, v.PrimitiveKind, v.Value)
}

func readClassInfo(c *ByteCursor) (ClassInfo, error) {
	id, err := c.ReadInt32()
	if err != nil {
		return ClassInfo{}, err
	}
	name, err := c.ReadString7()
	if err != nil {
		return ClassInfo{}, err
	}
	memberCount, err := c.ReadInt32()
	if err != nil {
		return ClassInfo{}, err
	}
	names := make([]string, memberCount)
	for i := range names {
		names[i], err = c.ReadString7()
		if err != nil {
			return ClassInfo{}, err
		}
	}
	return ClassInfo{ObjectID: id, Name: name, MemberNames: names}, nil
}

func writeClassInfo(c *ByteCursor, ci ClassInfo) {
	c.WriteInt32(ci.ObjectID)
	c.WriteString7(ci.Name)
	c.WriteInt32(ci.MemberCount())
	for _, name := range ci.MemberNames {
		c.WriteString7(name)
	}
}

func readClassTypeInfo(c *ByteCursor) (ClassTypeInfo, error) {
	name, err := c.ReadString7()
	if err != nil {
		return ClassTypeInfo{}, err
	}
	libID, err := c.ReadInt32()
	if err != nil {
		return ClassTypeInfo{}, err
	}
	return ClassTypeInfo{TypeName: name, LibraryID: libID}, nil
}

func writeClassTypeInfo(c *ByteCursor, v ClassTypeInfo) {
	c.WriteString7(v.TypeName)
	c.WriteInt32(v.LibraryID)
}

// readKindExtra reads the kind-specific "additional info" payload that
// follows a BinaryKind tag (spec §4.3.2's second pass).
func readKindExtra(c *ByteCursor, kind BinaryKind) (KindExtra, error) {
	switch kind {
	case BinaryPrimitive, BinaryPrimitiveArray:
		b, err := c.ReadByte()
		if err != nil {
			return KindExtra{}, err
		}
		return KindExtra{Primitive: PrimitiveKind(b)}, nil
	case BinarySystemClass:
		name, err := c.ReadString7()
		if err != nil {
			return KindExtra{}, err
		}
		return KindExtra{SystemClassName: name}, nil
	case BinaryClass:
		cti, err := readClassTypeInfo(c)
		if err != nil {
			return KindExtra{}, err
		}
		return KindExtra{Class: cti}, nil
	case BinaryString, BinaryStringArray, BinaryObject:
		return KindExtra{}, nil
	default:
		return KindExtra{}, fmt.Errorf("%w: binary kind %d", ErrUnsupportedRecord, kind)
	}
}

func writeKindExtra(c *ByteCursor, kind BinaryKind, extra KindExtra) error {
	switch kind {
	case BinaryPrimitive, BinaryPrimitiveArray:
		c.WriteByte(byte(extra.Primitive))
	case BinarySystemClass:
		c.WriteString7(extra.SystemClassName)
	case BinaryClass:
		writeClassTypeInfo(c, extra.Class)
	case BinaryString, BinaryStringArray, BinaryObject:
	default:
		return fmt.Errorf("%w: binary kind %d", ErrUnsupportedRecord, kind)
	}
	return nil
}

// readMemberTypeInfo reads all N BinaryKind tags first, then all N extras,
// per spec §4.3.2.
func readMemberTypeInfo(c *ByteCursor, count int32) (MemberTypeInfo, error) {
	kinds := make([]BinaryKind, count)
	for i := range kinds {
		b, err := c.ReadByte()
		if err != nil {
			return MemberTypeInfo{}, err
		}
		kinds[i] = BinaryKind(b)
	}
	extras := make([]KindExtra, count)
	for i, k := range kinds {
		extra, err := readKindExtra(c, k)
		if err != nil {
			return MemberTypeInfo{}, err
		}
		extras[i] = extra
	}
	return MemberTypeInfo{Kinds: kinds, Extras: extras}, nil
}

func writeMemberTypeInfo(c *ByteCursor, mti MemberTypeInfo) error {
	for _, k := range mti.Kinds {
		c.WriteByte(byte(k))
	}
	for i, k := range mti.Kinds {
		if err := writeKindExtra(c, k, mti.Extras[i]); err != nil {
			return err
		}
	}
	return nil
}

// readClassMemberValues reads exactly len(mti.Kinds) member values, one
// per declared member: primitives are read inline, every other kind reads
// one nested tagged record. Unlike arrays, class member values are not
// null-run expanded — BinaryFormatter only compacts nulls inside arrays,
// never inside a class's member list (confirmed against
// original_source/udlg_tools.py's read_write_class_values, which reads
// exactly m_count values with no run-length bookkeeping).
func readClassMemberValues(c *ByteCursor, store *GraphStore, mti MemberTypeInfo) ([]Value, error) {
	values := make([]Value, len(mti.Kinds))
	for i, kind := range mti.Kinds {
		if kind == BinaryPrimitive {
			v, err := ReadPrimitive(c, mti.Extras[i].Primitive)
			if err != nil {
				return nil, err
			}
			values[i] = v
			continue
		}
		rec, err := ReadRecord(c, store)
		if err != nil {
			return nil, err
		}
		values[i] = Value{Tag: TagRecord, Record: rec}
	}
	return values, nil
}

func writeClassMemberValues(c *ByteCursor, store *GraphStore, mti MemberTypeInfo, values []Value) error {
	for i, kind := range mti.Kinds {
		if kind == BinaryPrimitive {
			if err := WritePrimitive(c, mti.Extras[i].Primitive, values[i]); err != nil {
				return err
			}
			continue
		}
		if err := WriteRecord(c, values[i].Record, store); err != nil {
			return err
		}
	}
	return nil
}

func readClassWithMembersAndTypes(c *ByteCursor, store *GraphStore, system bool) (Record, error) {
	ci, err := readClassInfo(c)
	if err != nil {
		return nil, err
	}
	mti, err := readMemberTypeInfo(c, ci.MemberCount())
	if err != nil {
		return nil, err
	}
	var libraryID int32
	if !system {
		libraryID, err = c.ReadInt32()
		if err != nil {
			return nil, err
		}
	}

	// Register a placeholder before reading values so an id lookup back to
	// this object id (e.g. a nested ClassWithId using it as MetadataID)
	// resolves (spec §4.4).
	body := classWithTypesBody{ClassInfo: ci, MemberTypeInfo: mti}
	if system {
		store.BeginInFlight(ci.ObjectID, SystemClassWithMembersAndTypes{body})
	} else {
		store.BeginInFlight(ci.ObjectID, ClassWithMembersAndTypes{body, libraryID})
	}

	values, err := readClassMemberValues(c, store, mti)
	store.EndInFlight(ci.ObjectID)
	if err != nil {
		return nil, err
	}
	body.Values = values
	if system {
		return SystemClassWithMembersAndTypes{body}, nil
	}
	return ClassWithMembersAndTypes{body, libraryID}, nil
}

func writeClassWithMembersAndTypes(c *ByteCursor, body classWithTypesBody, libraryID int32, system bool, store *GraphStore) error {
	writeClassInfo(c, body.ClassInfo)
	if err := writeMemberTypeInfo(c, body.MemberTypeInfo); err != nil {
		return err
	}
	if !system {
		c.WriteInt32(libraryID)
	}
	return writeClassMemberValues(c, store, body.MemberTypeInfo, body.Values)
}

func readClassWithMembers(c *ByteCursor) (Record, error) {
	ci, err := readClassInfo(c)
	if err != nil {
		return nil, err
	}
	libID, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	return ClassWithMembers{ClassInfo: ci, LibraryID: libID}, nil
}

func writeClassWithMembers(c *ByteCursor, v ClassWithMembers) {
	writeClassInfo(c, v.ClassInfo)
	c.WriteInt32(v.LibraryID)
}

func readSystemClassWithMembers(c *ByteCursor) (Record, error) {
	ci, err := readClassInfo(c)
	if err != nil {
		return nil, err
	}
	return SystemClassWithMembers{ClassInfo: ci}, nil
}

func writeSystemClassWithMembers(c *ByteCursor, v SystemClassWithMembers) {
	writeClassInfo(c, v.ClassInfo)
}

func readClassWithId(c *ByteCursor, store *GraphStore) (Record, error) {
	objectID, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	metadataID, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	_, mti, err := store.ParentOf(metadataID)
	if err != nil {
		return nil, err
	}
	values, err := readClassMemberValues(c, store, mti)
	if err != nil {
		return nil, err
	}
	return ClassWithId{ObjectID: objectID, MetadataID: metadataID, Values: values}, nil
}

func writeClassWithId(c *ByteCursor, v ClassWithId, store *GraphStore) error {
	c.WriteInt32(v.ObjectID)
	c.WriteInt32(v.MetadataID)
	_, mti, err := store.ParentOf(v.MetadataID)
	if err != nil {
		return err
	}
	return writeClassMemberValues(c, store, mti, v.Values)
}

// readSequence reads records until the sum of their null-run
// contributions equals declared, per spec §4.3.1. Used by BinaryArray's
// generic element loop and by ArraySingleObject/ArraySingleString.
func readSequence(c *ByteCursor, store *GraphStore, declared int32) ([]Value, error) {
	var values []Value
	var filled int32
	for filled < declared {
		rec, err := ReadRecord(c, store)
		if err != nil {
			return nil, err
		}
		filled += nullRunCount(rec)
		if filled > declared {
			return nil, fmt.Errorf("%w: declared %d, landed on %d", ErrArrayOverrun, declared, filled)
		}
		values = append(values, Value{Tag: TagRecord, Record: rec})
	}
	return values, nil
}

func writeSequence(c *ByteCursor, store *GraphStore, values []Value) error {
	for _, v := range values {
		if err := WriteRecord(c, v.Record, store); err != nil {
			return err
		}
	}
	return nil
}

func readArrayInfo(c *ByteCursor) (ArrayInfo, error) {
	id, err := c.ReadInt32()
	if err != nil {
		return ArrayInfo{}, err
	}
	length, err := c.ReadInt32()
	if err != nil {
		return ArrayInfo{}, err
	}
	return ArrayInfo{ObjectID: id, Length: length}, nil
}

func writeArrayInfo(c *ByteCursor, v ArrayInfo) {
	c.WriteInt32(v.ObjectID)
	c.WriteInt32(v.Length)
}

func readBinaryArray(c *ByteCursor, store *GraphStore) (Record, error) {
	objectID, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	arrayKindByte, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	arrayKind := BinaryArrayKind(arrayKindByte)
	rank, err := c.ReadInt32()
	if err != nil {
		return nil, err
	}
	if arrayKind != BinaryArraySingle || rank != 1 {
		return nil, fmt.Errorf("%w: kind %d rank %d", ErrUnsupportedArrayShape, arrayKind, rank)
	}
	lengths := make([]int32, rank)
	for i := range lengths {
		lengths[i], err = c.ReadInt32()
		if err != nil {
			return nil, err
		}
	}
	var bounds []int32
	if arrayKind.hasOffsets() {
		bounds = make([]int32, rank)
		for i := range bounds {
			bounds[i], err = c.ReadInt32()
			if err != nil {
				return nil, err
			}
		}
	}
	elemKindByte, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	elemKind := BinaryKind(elemKindByte)
	extra, err := readKindExtra(c, elemKind)
	if err != nil {
		return nil, err
	}
	values, err := readSequence(c, store, lengths[0])
	if err != nil {
		return nil, err
	}
	return BinaryArray{
		ObjectID:     objectID,
		ArrayKind:    arrayKind,
		Rank:         rank,
		Lengths:      lengths,
		LowerBounds:  bounds,
		ElementKind:  elemKind,
		ElementExtra: extra,
		Values:       values,
	}, nil
}

func writeBinaryArray(c *ByteCursor, v BinaryArray, store *GraphStore) error {
	c.WriteInt32(v.ObjectID)
	c.WriteByte(byte(v.ArrayKind))
	c.WriteInt32(v.Rank)
	for _, l := range v.Lengths {
		c.WriteInt32(l)
	}
	if v.ArrayKind.hasOffsets() {
		for _, b := range v.LowerBounds {
			c.WriteInt32(b)
		}
	}
	c.WriteByte(byte(v.ElementKind))
	if err := writeKindExtra(c, v.ElementKind, v.ElementExtra); err != nil {
		return err
	}
	return writeSequence(c, store, v.Values)
}

func readArraySinglePrimitive(c *ByteCursor) (Record, error) {
	info, err := readArrayInfo(c)
	if err != nil {
		return nil, err
	}
	kindByte, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	kind := PrimitiveKind(kindByte)
	values := make([]Value, info.Length)
	for i := range values {
		values[i], err = ReadPrimitive(c, kind)
		if err != nil {
			return nil, err
		}
	}
	return ArraySinglePrimitive{ArrayInfo: info, ElementKind: kind, Values: values}, nil
}

func writeArraySinglePrimitive(c *ByteCursor, v ArraySinglePrimitive) error {
	writeArrayInfo(c, v.ArrayInfo)
	c.WriteByte(byte(v.ElementKind))
	for _, val := range v.Values {
		if err := WritePrimitive(c, v.ElementKind, val); err != nil {
			return err
		}
	}
	return nil
}

func readArraySingleObject(c *ByteCursor, store *GraphStore) (Record, error) {
	info, err := readArrayInfo(c)
	if err != nil {
		return nil, err
	}
	values, err := readSequence(c, store, info.Length)
	if err != nil {
		return nil, err
	}
	return ArraySingleObject{ArrayInfo: info, Values: values}, nil
}

func writeArraySingleObject(c *ByteCursor, v ArraySingleObject, store *GraphStore) error {
	writeArrayInfo(c, v.ArrayInfo)
	return writeSequence(c, store, v.Values)
}

func readArraySingleString(c *ByteCursor, store *GraphStore) (Record, error) {
	info, err := readArrayInfo(c)
	if err != nil {
		return nil, err
	}
	values, err := readSequence(c, store, info.Length)
	if err != nil {
		return nil, err
	}
	return ArraySingleString{ArrayInfo: info, Values: values}, nil
}

func writeArraySingleString(c *ByteCursor, v ArraySingleString, store *GraphStore) error {
	writeArrayInfo(c, v.ArrayInfo)
	return writeSequence(c, store, v.Values)
}
