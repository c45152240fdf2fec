// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package translate

import "github.com/dialogware/udlg"

// Translations maps a Row.Key (see Row.Key) to its replacement text.
type Translations map[string]string

// NewTranslations indexes rows by Row.Key for the given mode and file
// scoping, skipping rows with no Translation.
func NewTranslations(rows []Row, mode Mode, includeFilePath bool, basename string) Translations {
	t := make(Translations, len(rows))
	for _, r := range rows {
		if r.Translation == "" {
			continue
		}
		t[r.Key(mode, includeFilePath, basename)] = r.Translation
	}
	return t
}

// Inject walks records exactly as Extract does and returns a new slice
// with every translatable string replaced by its entry in t, if one
// exists. Records with no matching translation are left untouched.
func Inject(records []udlg.Record, opts Options, t Translations, basename string) []udlg.Record {
	switch opts.Mode {
	case ModeVariables:
		return injectVariables(records, opts, t, basename)
	default:
		return injectEnglish(records, opts, t, basename)
	}
}

func injectEnglish(records []udlg.Record, opts Options, t Translations, basename string) []udlg.Record {
	markers := englishMarkerIDs(records)

	out := make([]udlg.Record, len(records))

	for i, rec := range records {
		vals := valuesOf(rec)
		if vals == nil {
			out[i] = rec
			continue
		}

		previousWasEnglish := false
		var previousIDRef int32
		havePreviousIDRef := false

		newVals := make([]udlg.Value, len(vals))
		changed := false
		for j, v := range vals {
			newVals[j] = v
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
					if text, ok := t[row.Key(opts.Mode, opts.IncludeFilePath, basename)]; ok {
						inner.Value = text
						newVals[j] = udlg.Value{Tag: udlg.TagRecord, Record: inner}
						changed = true
					}
				}
				previousWasEnglish = inner.Value == "English"
				havePreviousIDRef = false
			case udlg.MemberReference:
				previousIDRef = inner.IDRef
				havePreviousIDRef = true
				previousWasEnglish = false
			default:
			}
		}

		if changed {
			out[i] = withValuesOf(rec, newVals)
		} else {
			out[i] = rec
		}
	}
	return out
}

func injectVariables(records []udlg.Record, opts Options, t Translations, basename string) []udlg.Record {
	out := make([]udlg.Record, len(records))
	for i, rec := range records {
		vals := valuesOf(rec)
		if len(vals) < 3 || !isIntTag(vals[0].Tag) {
			out[i] = rec
			continue
		}
		count, ok := intOf(vals[0])
		if !ok || count <= 0 || int64(len(vals)) != 1+2*count {
			out[i] = rec
			continue
		}

		newVals := make([]udlg.Value, len(vals))
		copy(newVals, vals)
		changed := false
		valid := true
		for k := int64(0); k < count; k++ {
			variable, ok1 := stringOf(vals[1+2*k])
			_, ok2 := stringOf(vals[2+2*k])
			if !ok1 || !ok2 {
				valid = false
				break
			}
			row := Row{Variable: variable}
			if opts.IncludeFilePath {
				row.File = basename
			}
			text, ok := t[row.Key(opts.Mode, opts.IncludeFilePath, basename)]
			if !ok {
				continue
			}
			newVals[2+2*k] = setStringValue(vals[2+2*k], text)
			changed = true
		}
		if valid && changed {
			out[i] = withValuesOf(rec, newVals)
		} else {
			out[i] = rec
		}
	}
	return out
}

// setStringValue returns a copy of v with its string payload replaced by
// text, preserving whether v was a plain string value or a
// record-wrapped BinaryObjectString.
func setStringValue(v udlg.Value, text string) udlg.Value {
	if v.Tag == udlg.TagRecord {
		if s, ok := v.Record.(udlg.BinaryObjectString); ok {
			s.Value = text
			return udlg.Value{Tag: udlg.TagRecord, Record: s}
		}
	}
	return udlg.Value{Tag: udlg.TagStr, Str: text}
}
