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

func newInjectCmd() *cobra.Command {
	var mode string
	var includeFilePath bool
	var csvPath string
	var outDir string

	cmd := &cobra.Command{
		Use:   "inject <file-or-dir>",
		Short: "Merge a translated CSV sidecar back into UDLG files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := translate.Options{
				Mode:            translate.ModeFromString(mode),
				IncludeFilePath: includeFilePath,
			}

			csvFile, err := os.Open(csvPath)
			if err != nil {
				return err
			}
			rows, err := translate.ReadCSV(csvFile, opts.Mode, opts.IncludeFilePath)
			csvFile.Close()
			if err != nil {
				return err
			}

			targets, err := walkTargets(args[0])
			if err != nil {
				return err
			}

			injected := 0
			for _, t := range targets {
				ok, err := udlg.IsUDLGPath(t)
				if err != nil || !ok {
					udlg.Logger().Debugf("skipping non-UDLG file %s", t)
					continue
				}
				basename := filepath.Base(t)
				translations := translate.NewTranslations(rows, opts.Mode, opts.IncludeFilePath, basename)

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
				f.Records = translate.Inject(f.Records, opts, translations, basename)

				encoded, err := f.Encode()
				f.Close()
				if err != nil {
					udlg.Logger().Warnf("failed to re-encode %s: %v", t, err)
					continue
				}

				dest := t
				if outDir != "" {
					if err := os.MkdirAll(outDir, 0o755); err != nil {
						return err
					}
					dest = filepath.Join(outDir, basename)
				}
				if err := os.WriteFile(dest, encoded, 0o644); err != nil {
					udlg.Logger().Warnf("failed to write %s: %v", dest, err)
					continue
				}
				injected++
			}
			udlg.Logger().Infof("injected translations into %d of %d target(s)", injected, len(targets))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "english", "extraction heuristic: english or variables")
	cmd.Flags().BoolVar(&includeFilePath, "include-file-path", false, "match CSV rows with a File column")
	cmd.Flags().StringVar(&csvPath, "csv", "translations.csv", "path to the translated CSV")
	cmd.Flags().StringVar(&outDir, "out", "", "write translated files here instead of overwriting in place")
	return cmd
}
