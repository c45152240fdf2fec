// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package translate

import (
	"testing"

	"github.com/dialogware/udlg"
	"github.com/stretchr/testify/require"
)

func TestInjectEnglishReplacesMarkedString(t *testing.T) {
	records := []udlg.Record{
		classWithValues(str("English"), str("Stay a while and listen.")),
	}
	opts := Options{Mode: ModeEnglish}
	rows := []Row{{Original: "Stay a while and listen.", Translation: "Quedate un rato y escucha."}}
	t2 := NewTranslations(rows, opts.Mode, opts.IncludeFilePath, "dialog.bytes")

	out := Inject(records, opts, t2, "dialog.bytes")
	require.Len(t, out, 1)
	vals := valuesOf(out[0])
	require.Len(t, vals, 2)
	replaced, ok := stringOf(vals[1])
	require.True(t, ok)
	require.Equal(t, "Quedate un rato y escucha.", replaced)

	// The English marker string itself is untouched.
	marker, ok := stringOf(vals[0])
	require.True(t, ok)
	require.Equal(t, "English", marker)
}

func TestInjectEnglishLeavesUnmatchedRowsAlone(t *testing.T) {
	records := []udlg.Record{
		classWithValues(str("English"), str("Untranslated line.")),
	}
	opts := Options{Mode: ModeEnglish}
	t2 := NewTranslations(nil, opts.Mode, opts.IncludeFilePath, "dialog.bytes")

	out := Inject(records, opts, t2, "dialog.bytes")
	require.Equal(t, records, out)
}

// TestInjectEnglishStateDoesNotLeakAcrossRecords mirrors
// TestExtractEnglishStateDoesNotLeakAcrossRecords: a string in a record
// that follows one ending with the "English" marker must not be
// rewritten just because the marker flag carried over from the prior
// record.
func TestInjectEnglishStateDoesNotLeakAcrossRecords(t *testing.T) {
	records := []udlg.Record{
		classWithValues(str("English")),
		classWithValues(str("leaked")),
	}
	opts := Options{Mode: ModeEnglish}
	rows := []Row{{Original: "leaked", Translation: "should not apply"}}
	t2 := NewTranslations(rows, opts.Mode, opts.IncludeFilePath, "dialog.bytes")

	out := Inject(records, opts, t2, "dialog.bytes")
	require.Equal(t, records, out)
}

func TestInjectVariablesReplacesTextKeepsVariable(t *testing.T) {
	records := []udlg.Record{
		classWithValues(
			udlg.Value{Tag: udlg.TagI32, I32: 1},
			str("Greeting"), str("Hello there."),
		),
	}
	opts := Options{Mode: ModeVariables}
	rows := []Row{{Variable: "Greeting", Original: "Hello there.", Translation: "Hola."}}
	t2 := NewTranslations(rows, opts.Mode, opts.IncludeFilePath, "dialog.bytes")

	out := Inject(records, opts, t2, "dialog.bytes")
	vals := valuesOf(out[0])
	variable, _ := stringOf(vals[1])
	text, _ := stringOf(vals[2])
	require.Equal(t, "Greeting", variable)
	require.Equal(t, "Hola.", text)
}

func TestInjectVariablesCompositeKeyScopesPerFile(t *testing.T) {
	records := []udlg.Record{
		classWithValues(
			udlg.Value{Tag: udlg.TagI32, I32: 1},
			str("Greeting"), str("Hello there."),
		),
	}
	opts := Options{Mode: ModeVariables}
	rows := []Row{{Variable: "Greeting", Original: "Hello there.", Translation: "Hola."}}
	t2 := NewTranslations(rows, opts.Mode, opts.IncludeFilePath, "other.bytes")

	out := Inject(records, opts, t2, "dialog.bytes")
	require.Equal(t, records, out) // composite key mismatch: no replacement
}
