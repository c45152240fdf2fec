// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dialogware/udlg"
	"github.com/spf13/cobra"
)

func prettyPrint(buf []byte) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf, "", "\t"); err != nil {
		udlg.Logger().Warnf("JSON parse error: %v", err)
		return string(buf)
	}
	return pretty.String()
}

func dumpOne(filename string) {
	f, err := udlg.Open(filename)
	if err != nil {
		udlg.Logger().Warnf("failed to open %s: %v", filename, err)
		return
	}
	defer f.Close()

	if err := f.Parse(); err != nil {
		udlg.Logger().Warnf("failed to parse %s: %v", filename, err)
		return
	}

	out := struct {
		Header     [8]byte
		Compressed bool
		Records    []udlg.Record
	}{f.Header, f.Compressed, f.Records}

	buf, err := json.Marshal(out)
	if err != nil {
		udlg.Logger().Warnf("failed to marshal %s: %v", filename, err)
		return
	}
	fmt.Println(prettyPrint(buf))
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file-or-dir>",
		Short: "Decode a UDLG file and print its records as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := walkTargets(args[0])
			if err != nil {
				return err
			}
			for _, t := range targets {
				ok, err := udlg.IsUDLGPath(t)
				if err != nil || !ok {
					continue
				}
				dumpOne(t)
			}
			return nil
		},
	}
}
