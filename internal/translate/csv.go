// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package translate

import (
	"encoding/csv"
	"io"
	"strings"
)

// Row is one extracted or re-injected translation line. Which fields are
// meaningful depends on Mode and Options.IncludeFilePath: File is only
// set when IncludeFilePath is true, Variable is only set in
// ModeVariables.
type Row struct {
	File        string
	Variable    string
	Original    string
	Translation string
}

// Key returns the lookup key Inject uses to match a CSV row back to an
// extracted text. Rows always store a plain Variable name; in
// ModeVariables without a file column, Key builds the composite
// "variable|basename" the reference tool uses internally so the same
// variable name in two different files doesn't collide with a single
// shared translation.
func (r Row) Key(mode Mode, includeFilePath bool, basename string) string {
	switch {
	case mode == ModeVariables && includeFilePath:
		return r.File + "|" + r.Variable
	case mode == ModeVariables:
		return r.Variable + "|" + basename
	case mode == ModeEnglish && includeFilePath:
		return r.File + "|" + r.Original
	default:
		return r.Original
	}
}

// escapeNewlines replaces literal CR/LF with the two-character sequence
// "\n" so a multi-line dialog string survives a single CSV cell.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	return strings.ReplaceAll(s, "\n", "\\n")
}

// unescapeNewlines turns every two-character "\n" sequence back into
// CRLF, so a string escapeNewlines built from a lone LF comes back as
// CRLF.
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\\n", "\r\n")
}

// Header returns the CSV column header matching mode/includeFilePath, in
// the same order WriteCSV emits rows.
func Header(mode Mode, includeFilePath bool) []string {
	switch {
	case mode == ModeVariables && includeFilePath:
		return []string{"File", "Variable", "Original", "Translation"}
	case mode == ModeVariables:
		return []string{"Variable", "Original", "Translation"}
	case includeFilePath:
		return []string{"File", "Original", "Translation"}
	default:
		return []string{"Original", "Translation"}
	}
}

// WriteCSV writes rows to w in the column order Header describes.
func WriteCSV(w io.Writer, mode Mode, includeFilePath bool, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(mode, includeFilePath)); err != nil {
		return err
	}
	for _, r := range rows {
		var record []string
		switch {
		case mode == ModeVariables && includeFilePath:
			record = []string{r.File, r.Variable, r.Original, r.Translation}
		case mode == ModeVariables:
			record = []string{r.Variable, r.Original, r.Translation}
		case includeFilePath:
			record = []string{r.File, r.Original, r.Translation}
		default:
			record = []string{r.Original, r.Translation}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads rows previously written by WriteCSV, skipping the header
// row.
func ReadCSV(r io.Reader, mode Mode, includeFilePath bool) ([]Row, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	records = records[1:] // drop header

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		var row Row
		switch {
		case mode == ModeVariables && includeFilePath && len(rec) >= 4:
			row = Row{File: rec[0], Variable: rec[1], Original: rec[2], Translation: rec[3]}
		case mode == ModeVariables && len(rec) >= 3:
			row = Row{Variable: rec[0], Original: rec[1], Translation: rec[2]}
		case includeFilePath && len(rec) >= 3:
			row = Row{File: rec[0], Original: rec[1], Translation: rec[2]}
		case len(rec) >= 2:
			row = Row{Original: rec[0], Translation: rec[1]}
		default:
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Dedup removes duplicate rows the way the reference tool's
// deduplicate_csv_data does. It only applies when IncludeFilePath is
// false: with a file column present, every row is file-scoped already
// and dedup is skipped.
//
// In ModeEnglish, rows are grouped by Original and the first Translation
// seen wins. In ModeVariables, rows are grouped by their plain Variable
// name; if every row sharing that name also shares one Original source
// string, they collapse to a single row. Otherwise (the same variable
// name reused for different source text across files) all rows are
// kept, unchanged, so a human resolves the conflict by hand.
func Dedup(mode Mode, includeFilePath bool, rows []Row) []Row {
	if includeFilePath {
		return rows
	}

	if mode == ModeEnglish {
		seen := make(map[string]bool, len(rows))
		var out []Row
		for _, r := range rows {
			if seen[r.Original] {
				continue
			}
			seen[r.Original] = true
			out = append(out, r)
		}
		return out
	}

	type group struct {
		name string
		rows []Row
	}
	order := make([]string, 0, len(rows))
	groups := make(map[string]*group, len(rows))
	for _, r := range rows {
		g, ok := groups[r.Variable]
		if !ok {
			g = &group{name: r.Variable}
			groups[r.Variable] = g
			order = append(order, r.Variable)
		}
		g.rows = append(g.rows, r)
	}

	var out []Row
	for _, name := range order {
		g := groups[name]
		unique := dedupExact(g.rows)
		if len(unique) == 1 {
			out = append(out, unique[0])
			continue
		}
		originals := make(map[string]bool)
		for _, r := range unique {
			originals[r.Original] = true
		}
		if len(originals) == 1 {
			out = append(out, unique[0])
			continue
		}
		out = append(out, unique...)
	}
	return out
}

func dedupExact(rows []Row) []Row {
	var out []Row
	for _, r := range rows {
		dup := false
		for _, o := range out {
			if o == r {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r)
		}
	}
	return out
}
