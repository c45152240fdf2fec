// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package translate implements the text extraction and re-injection
// workflow layered on top of a decoded udlg.File: pulling translatable
// strings out to a CSV sidecar and merging translations back in without
// disturbing a file's object graph or topology.
package translate

import "github.com/dialogware/udlg"

// Mode selects which heuristic locates translatable text inside a
// record's Values.
type Mode int

const (
	// ModeEnglish extracts BinaryObjectString values that either follow
	// a literal "English" marker string or follow a MemberReference to
	// an object holding the literal "English" string.
	ModeEnglish Mode = iota

	// ModeVariables extracts (variable, text) string pairs from a
	// Values sequence shaped like [count, var0, text0, var1, text1, ...].
	ModeVariables
)

// Options configures an extraction or injection pass.
type Options struct {
	Mode Mode

	// IncludeFilePath prepends a File column to every CSV row, and keys
	// injection lookups on (File, text) / (File, variable) instead of a
	// composite "variable|basename" key.
	IncludeFilePath bool
}

// englishMarkerIDs returns the object ids of every BinaryObjectString
// carried directly in the Values of a record in records whose Value is
// the literal "English" (top-level string records and strings nested
// deeper than one level are not scanned) — the
// set a MemberReference has to land in for ModeEnglish to treat what
// follows it as translatable.
func englishMarkerIDs(records []udlg.Record) map[int32]bool {
	ids := make(map[int32]bool)
	for _, r := range records {
		for _, v := range valuesOf(r) {
			if v.Tag != udlg.TagRecord {
				continue
			}
			if s, ok := v.Record.(udlg.BinaryObjectString); ok && s.Value == "English" {
				ids[s.ObjectID] = true
			}
		}
	}
	return ids
}

// valuesOf returns the Values slice a record carries, if any.
func valuesOf(r udlg.Record) []udlg.Value {
	switch v := r.(type) {
	case udlg.ClassWithMembersAndTypes:
		return v.Values
	case udlg.SystemClassWithMembersAndTypes:
		return v.Values
	case udlg.ClassWithId:
		return v.Values
	case udlg.BinaryArray:
		return v.Values
	case udlg.ArraySingleObject:
		return v.Values
	case udlg.ArraySingleString:
		return v.Values
	case udlg.ArraySinglePrimitive:
		return v.Values
	default:
		return nil
	}
}

// withValuesOf returns a copy of r with its Values slice replaced by
// values. Records with no Values slice are returned unchanged.
func withValuesOf(r udlg.Record, values []udlg.Value) udlg.Record {
	switch v := r.(type) {
	case udlg.ClassWithMembersAndTypes:
		v.Values = values
		return v
	case udlg.SystemClassWithMembersAndTypes:
		v.Values = values
		return v
	case udlg.ClassWithId:
		v.Values = values
		return v
	case udlg.BinaryArray:
		v.Values = values
		return v
	case udlg.ArraySingleObject:
		v.Values = values
		return v
	case udlg.ArraySingleString:
		v.Values = values
		return v
	case udlg.ArraySinglePrimitive:
		v.Values = values
		return v
	default:
		return r
	}
}

func isIntTag(tag udlg.ValueTag) bool {
	switch tag {
	case udlg.TagI8, udlg.TagU8, udlg.TagI16, udlg.TagU16, udlg.TagI32, udlg.TagU32, udlg.TagI64, udlg.TagU64:
		return true
	default:
		return false
	}
}
