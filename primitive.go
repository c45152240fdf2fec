// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

import "fmt"

// dateTimeKindMask covers the two low bits of a serialized DateTime that
// carry System.DateTimeKind; the remaining 62 bits are the tick count.
const dateTimeKindMask = int64(0x03)

// ReadPrimitive decodes a single value of the given kind from c. Decimal is
// read as a decimal-literal string, DateTime as ticks+kind, TimeSpan as a
// raw Int64 tick count. Char uses the same 7-bit length-prefixed string
// encoding as String (the source format's simplification, preserved here).
func ReadPrimitive(c *ByteCursor, kind PrimitiveKind) (Value, error) {
	switch kind {
	case PrimitiveBoolean:
		b, err := c.ReadBool()
		return Value{Tag: TagBool, Bool: b}, err
	case PrimitiveByte:
		b, err := c.ReadByte()
		return Value{Tag: TagU8, U8: b}, err
	case PrimitiveSByte:
		v, err := c.ReadInt8()
		return Value{Tag: TagI8, I8: v}, err
	case PrimitiveInt16:
		v, err := c.ReadInt16()
		return Value{Tag: TagI16, I16: v}, err
	case PrimitiveUInt16:
		v, err := c.ReadUint16()
		return Value{Tag: TagU16, U16: v}, err
	case PrimitiveInt32:
		v, err := c.ReadInt32()
		return Value{Tag: TagI32, I32: v}, err
	case PrimitiveUInt32:
		v, err := c.ReadUint32()
		return Value{Tag: TagU32, U32: v}, err
	case PrimitiveInt64:
		v, err := c.ReadInt64()
		return Value{Tag: TagI64, I64: v}, err
	case PrimitiveUInt64:
		v, err := c.ReadUint64()
		return Value{Tag: TagU64, U64: v}, err
	case PrimitiveSingle:
		v, err := c.ReadFloat32()
		return Value{Tag: TagF32, F32: v}, err
	case PrimitiveDouble:
		v, err := c.ReadFloat64()
		return Value{Tag: TagF64, F64: v}, err
	case PrimitiveChar, PrimitiveString:
		s, err := c.ReadString7()
		return Value{Tag: TagStr, Str: s}, err
	case PrimitiveDecimal:
		s, err := c.ReadString7()
		return Value{Tag: TagDecimal, Str: s}, err
	case PrimitiveTimeSpan:
		v, err := c.ReadInt64()
		return Value{Tag: TagTimeSpan, TimeSpan: v}, err
	case PrimitiveDateTime:
		return readDateTime(c)
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedPrimitive, kind)
	}
}

// WritePrimitive encodes v (whose Tag must match kind's natural variant)
// to c.
func WritePrimitive(c *ByteCursor, kind PrimitiveKind, v Value) error {
	switch kind {
	case PrimitiveBoolean:
		c.WriteBool(v.Bool)
	case PrimitiveByte:
		c.WriteByte(v.U8)
	case PrimitiveSByte:
		c.WriteInt8(v.I8)
	case PrimitiveInt16:
		c.WriteInt16(v.I16)
	case PrimitiveUInt16:
		c.WriteUint16(v.U16)
	case PrimitiveInt32:
		c.WriteInt32(v.I32)
	case PrimitiveUInt32:
		c.WriteUint32(v.U32)
	case PrimitiveInt64:
		c.WriteInt64(v.I64)
	case PrimitiveUInt64:
		c.WriteUint64(v.U64)
	case PrimitiveSingle:
		c.WriteFloat32(v.F32)
	case PrimitiveDouble:
		c.WriteFloat64(v.F64)
	case PrimitiveChar, PrimitiveString, PrimitiveDecimal:
		c.WriteString7(v.Str)
	case PrimitiveTimeSpan:
		c.WriteInt64(v.TimeSpan)
	case PrimitiveDateTime:
		writeDateTime(c, v.DateTime)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedPrimitive, kind)
	}
	return nil
}

// readDateTime decodes the Int64 wire value of a DateTime: the low two
// bits are the DateTimeKind, the remaining bits are the tick count. If
// both kind bits are set, Utc wins by policy (spec §4.2, §9).
func readDateTime(c *ByteCursor) (Value, error) {
	raw, err := c.ReadInt64()
	if err != nil {
		return Value{}, err
	}
	kind := DateTimeUnspecified
	switch raw & dateTimeKindMask {
	case 0x01, 0x03:
		kind = DateTimeUtc
	case 0x02:
		kind = DateTimeLocal
	}
	return Value{
		Tag: TagDateTime,
		DateTime: DateTimeValue{
			Kind:  kind,
			Ticks: raw &^ dateTimeKindMask,
		},
	}, nil
}

// writeDateTime encodes a DateTimeValue back into its packed Int64 wire
// form.
func writeDateTime(c *ByteCursor, dt DateTimeValue) {
	var kindBits int64
	switch dt.Kind {
	case DateTimeUtc:
		kindBits = 0x01
	case DateTimeLocal:
		kindBits = 0x02
	}
	c.WriteInt64((dt.Ticks &^ dateTimeKindMask) | kindBits)
}
