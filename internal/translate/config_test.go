// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package translate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenNoFileFound(t *testing.T) {
	v, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "english", v.GetString("mode"))
	require.False(t, v.GetBool("include_file_path"))
	require.Equal(t, "translations.csv", v.GetString("csv_path"))
}

func TestOptionsFromConfigParsesVariablesMode(t *testing.T) {
	v, err := LoadConfig("")
	require.NoError(t, err)
	v.Set("mode", "variables")
	v.Set("include_file_path", true)

	opts := OptionsFromConfig(v)
	require.Equal(t, ModeVariables, opts.Mode)
	require.True(t, opts.IncludeFilePath)
}

func TestModeFromStringDefaultsToEnglish(t *testing.T) {
	require.Equal(t, ModeEnglish, ModeFromString(""))
	require.Equal(t, ModeEnglish, ModeFromString("bogus"))
	require.Equal(t, ModeVariables, ModeFromString("Variables"))
}
