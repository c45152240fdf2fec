// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/dialogware/udlg"
	"github.com/dialogware/udlg/internal/translate"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var mode string
	var includeFilePath bool
	var csvPath string

	cmd := &cobra.Command{
		Use:   "extract <file-or-dir>",
		Short: "Extract translatable text from UDLG files into a CSV sidecar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := translate.Options{
				Mode:            translate.ModeFromString(mode),
				IncludeFilePath: includeFilePath,
			}

			targets, err := walkTargets(args[0])
			if err != nil {
				return err
			}

			var rows []translate.Row
			for _, t := range targets {
				ok, err := udlg.IsUDLGPath(t)
				if err != nil || !ok {
					udlg.Logger().Debugf("skipping non-UDLG file %s", t)
					continue
				}
				f, err := udlg.Open(t)
				if err != nil {
					udlg.Logger().Warnf("failed to open %s: %v", t, err)
					continue
				}
				if err := f.Parse(); err != nil {
					udlg.Logger().Warnf("failed to parse %s: %v", t, err)
					f.Close()
					continue
				}
				rows = append(rows, translate.Extract(f.Records, opts, filepath.Base(t))...)
				f.Close()
			}

			rows = translate.Dedup(opts.Mode, opts.IncludeFilePath, rows)
			udlg.Logger().Infof("extracted %d row(s) from %d target(s)", len(rows), len(targets))

			out, err := os.Create(csvPath)
			if err != nil {
				return err
			}
			defer out.Close()
			return translate.WriteCSV(out, opts.Mode, opts.IncludeFilePath, rows)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "english", "extraction heuristic: english or variables")
	cmd.Flags().BoolVar(&includeFilePath, "include-file-path", false, "add a File column and scope lookups per file")
	cmd.Flags().StringVar(&csvPath, "csv", "translations.csv", "path to write the extracted CSV")
	return cmd
}
