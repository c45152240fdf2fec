// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

// FuzzParse replaces the old Fuzz(data []byte) int entry point (the
// dvyukov/go-fuzz convention the teacher shipped) with a native
// testing.F target: run with `go test -fuzz=FuzzParse`. Parse must never
// panic on arbitrary input; any error it returns is an expected outcome,
// not a failure.
import "testing"

func FuzzParse(f *testing.F) {
	sample := &File{Header: [8]byte{1, 2, 3, 4, 5, 6, 7, 8}, Records: sampleRecords()}
	encoded, err := sample.Encode()
	if err != nil {
		f.Fatalf("failed to build seed corpus: %v", err)
	}
	f.Add(encoded)
	f.Add(Signature[:])
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		file := NewBytes(data)
		_ = file.Parse() // errors are fine, panics are not
	})
}
