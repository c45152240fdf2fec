// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dialogware/udlg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	var rootCmd = &cobra.Command{
		Use:   "udlgtool",
		Short: "A UDLG dialog file codec and translation tool",
		Long:  "Decodes, re-encodes, and translates UDLG dialog files",
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.1.0")
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newInjectCmd())

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cobra.OnInitialize(func() {
		if verbose {
			logger := logrus.New()
			logger.SetLevel(logrus.DebugLevel)
			udlg.SetLogger(logger)
		}
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// walkTargets returns filePath itself if it names a file, or every file
// under it (recursively) if it names a directory.
func walkTargets(filePath string) ([]string, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{filePath}, nil
	}

	var files []string
	err = filepath.Walk(filePath, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !f.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
