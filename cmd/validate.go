// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dialogware/udlg"
	"github.com/spf13/cobra"
)

// validateOne parses filename and re-encodes it, reporting whether the
// result is byte-for-byte identical to the original. A mismatch here
// means the codec dropped or altered something the original file
// carried.
func validateOne(filename string) error {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if !udlg.IsUDLG(raw) {
		return fmt.Errorf("not a UDLG file")
	}

	f := udlg.NewBytes(raw)
	if err := f.Parse(); err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	encoded, err := f.Encode()
	if err != nil {
		return fmt.Errorf("re-encode failed: %w", err)
	}
	if !bytes.Equal(raw, encoded) {
		return fmt.Errorf("round-trip mismatch: %d bytes in, %d bytes out", len(raw), len(encoded))
	}
	return nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file-or-dir>",
		Short: "Round-trip UDLG files and report any that fail to reproduce byte-for-byte",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := walkTargets(args[0])
			if err != nil {
				return err
			}

			failed := 0
			for _, t := range targets {
				ok, err := udlg.IsUDLGPath(t)
				if err != nil || !ok {
					continue
				}
				if err := validateOne(t); err != nil {
					fmt.Printf("FAIL %s: %v\n", t, err)
					failed++
					continue
				}
				fmt.Printf("OK   %s\n", t)
			}
			if failed > 0 {
				return fmt.Errorf("%d file(s) failed round-trip validation", failed)
			}
			return nil
		},
	}
}
