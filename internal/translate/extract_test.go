// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package translate

import (
	"testing"

	"github.com/dialogware/udlg"
	"github.com/stretchr/testify/require"
)

// classWithValues builds a minimal ClassWithMembersAndTypes carrying only
// the Values a test cares about; the rest of its fields are irrelevant to
// extraction/injection, which only look at Values.
func classWithValues(vals ...udlg.Value) udlg.Record {
	rec := udlg.ClassWithMembersAndTypes{}
	rec.Values = vals
	return rec
}

func str(s string) udlg.Value {
	return udlg.Value{Tag: udlg.TagRecord, Record: udlg.BinaryObjectString{Value: s}}
}

func ref(id int32) udlg.Value {
	return udlg.Value{Tag: udlg.TagRecord, Record: udlg.MemberReference{IDRef: id}}
}

func TestExtractEnglishDirectMarker(t *testing.T) {
	records := []udlg.Record{
		classWithValues(str("English"), str("Stay a while and listen.")),
	}
	rows := Extract(records, Options{Mode: ModeEnglish}, "dialog.bytes")
	require.Len(t, rows, 1)
	require.Equal(t, "Stay a while and listen.", rows[0].Original)
}

func TestExtractEnglishViaMemberReference(t *testing.T) {
	records := []udlg.Record{
		classWithValues(
			udlg.Value{Tag: udlg.TagRecord, Record: udlg.BinaryObjectString{ObjectID: 9, Value: "English"}},
		),
		classWithValues(ref(9), str("I am reborn.")),
	}
	rows := Extract(records, Options{Mode: ModeEnglish}, "dialog.bytes")
	require.Len(t, rows, 1)
	require.Equal(t, "I am reborn.", rows[0].Original)
}

func TestExtractEnglishUnrelatedRecordDoesNotResetState(t *testing.T) {
	records := []udlg.Record{
		classWithValues(
			str("English"),
			udlg.Value{Tag: udlg.TagRecord, Record: udlg.ObjectNull{}},
			str("Still translatable."),
		),
	}
	rows := Extract(records, Options{Mode: ModeEnglish}, "dialog.bytes")
	require.Len(t, rows, 1)
	require.Equal(t, "Still translatable.", rows[0].Original)
}

func TestExtractEnglishPrimitiveResetsState(t *testing.T) {
	records := []udlg.Record{
		classWithValues(
			str("English"),
			udlg.Value{Tag: udlg.TagI32, I32: 7},
			str("Not translatable."),
		),
	}
	rows := Extract(records, Options{Mode: ModeEnglish}, "dialog.bytes")
	require.Empty(t, rows)
}

func TestExtractVariablesShapedSequence(t *testing.T) {
	records := []udlg.Record{
		classWithValues(
			udlg.Value{Tag: udlg.TagI32, I32: 2},
			str("Greeting"), str("Hello there."),
			str("Farewell"), str("Safe travels."),
		),
	}
	rows := Extract(records, Options{Mode: ModeVariables}, "dialog.bytes")
	require.Len(t, rows, 2)
	require.Equal(t, "Greeting", rows[0].Variable)
	require.Equal(t, "Hello there.", rows[0].Original)
	require.Equal(t, "Farewell", rows[1].Variable)
}

// TestExtractEnglishStateDoesNotLeakAcrossRecords guards against carrying
// previousWasEnglish over from one record's Values into the next
// record's: a BinaryObjectString in a later, unrelated record must not
// be treated as translatable just because the previous record ended
// with the "English" marker.
func TestExtractEnglishStateDoesNotLeakAcrossRecords(t *testing.T) {
	records := []udlg.Record{
		classWithValues(str("English")),
		classWithValues(str("leaked")),
	}
	rows := Extract(records, Options{Mode: ModeEnglish}, "dialog.bytes")
	require.Empty(t, rows)
}

func TestExtractVariablesRejectsMismatchedCount(t *testing.T) {
	records := []udlg.Record{
		classWithValues(
			udlg.Value{Tag: udlg.TagI32, I32: 3},
			str("Greeting"), str("Hello there."),
		),
	}
	rows := Extract(records, Options{Mode: ModeVariables}, "dialog.bytes")
	require.Empty(t, rows)
}
