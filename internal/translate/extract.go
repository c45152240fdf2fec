// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package translate

import "github.com/dialogware/udlg"

// stringOf returns the text a Value carries, whether it's a plain string
// value or a record-wrapped BinaryObjectString, and whether it is
// string-shaped at all.
func stringOf(v udlg.Value) (string, bool) {
	switch v.Tag {
	case udlg.TagStr:
		return v.Str, true
	case udlg.TagRecord:
		if s, ok := v.Record.(udlg.BinaryObjectString); ok {
			return s.Value, true
		}
	}
	return "", false
}

// intOf returns the integer a Value carries if it is one of the integer
// tags, and whether it is.
func intOf(v udlg.Value) (int64, bool) {
	switch v.Tag {
	case udlg.TagI8:
		return int64(v.I8), true
	case udlg.TagU8:
		return int64(v.U8), true
	case udlg.TagI16:
		return int64(v.I16), true
	case udlg.TagU16:
		return int64(v.U16), true
	case udlg.TagI32:
		return int64(v.I32), true
	case udlg.TagU32:
		return int64(v.U32), true
	case udlg.TagI64:
		return v.I64, true
	case udlg.TagU64:
		return int64(v.U64), true
	}
	return 0, false
}

// Extract walks records and returns the translatable rows per opts.Mode.
// basename is written to Row.File when opts.IncludeFilePath is true and is
// otherwise unused; the composite "variable|basename" key is built later
// by Row.Key at injection time.
func Extract(records []udlg.Record, opts Options, basename string) []Row {
	switch opts.Mode {
	case ModeVariables:
		return extractVariables(records, opts, basename)
	default:
		return extractEnglish(records, opts, basename)
	}
}

// extractEnglish implements the "English" marker heuristic: a
// BinaryObjectString is translatable when the Value immediately before it
// in stream order was the literal string "English", or was a
// MemberReference pointing at an object id that englishMarkerIDs found
// holding the literal "English" (anywhere in records, before or after).
//
// Only BinaryObjectString and MemberReference values drive the state
// machine. Any other record-wrapped value (Tag == TagRecord but neither
// of those two) is passed over without disturbing the running state —
// this matches the reference tool's extract_texts_to_csv, which only
// updates its bookkeeping inside the BinaryObjectString and
// MemberReference branches of its dispatch.
func extractEnglish(records []udlg.Record, opts Options, basename string) []Row {
	markers := englishMarkerIDs(records)

	var rows []Row
	for _, rec := range records {
		previousWasEnglish := false
		var previousIDRef int32
		havePreviousIDRef := false

		for _, v := range valuesOf(rec) {
			if v.Tag != udlg.TagRecord {
				previousWasEnglish = false
				havePreviousIDRef = false
				continue
			}

			switch inner := v.Record.(type) {
			case udlg.BinaryObjectString:
				translatable := previousWasEnglish || (havePreviousIDRef && markers[previousIDRef])
				if translatable && inner.Value != "English" {
					row := Row{Original: inner.Value}
					if opts.IncludeFilePath {
						row.File = basename
					}
					rows = append(rows, row)
				}
				previousWasEnglish = inner.Value == "English"
				havePreviousIDRef = false
			case udlg.MemberReference:
				previousIDRef = inner.IDRef
				havePreviousIDRef = true
				previousWasEnglish = false
			default:
				// Some other record-wrapped value: leave the running
				// state untouched.
			}
		}
	}
	return rows
}

// extractVariables implements the [count, var0, text0, var1, text1, ...]
// heuristic: a record's own Values sequence is treated as a flat table of
// (variable, text) pairs when it opens with an integer count matching the
// number of pairs that follow.
func extractVariables(records []udlg.Record, opts Options, basename string) []Row {
	var rows []Row
	for _, rec := range records {
		vals := valuesOf(rec)
		if len(vals) < 3 || !isIntTag(vals[0].Tag) {
			continue
		}
		count, ok := intOf(vals[0])
		if !ok || count <= 0 || int64(len(vals)) != 1+2*count {
			continue
		}

		valid := true
		pairs := make([]Row, 0, count)
		for i := int64(0); i < count; i++ {
			variable, ok1 := stringOf(vals[1+2*i])
			text, ok2 := stringOf(vals[2+2*i])
			if !ok1 || !ok2 {
				valid = false
				break
			}
			row := Row{Variable: variable, Original: text}
			if opts.IncludeFilePath {
				row.File = basename
			}
			pairs = append(pairs, row)
		}
		if valid {
			rows = append(rows, pairs...)
		}
	}
	return rows
}
