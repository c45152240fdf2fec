// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package translate

import (
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig reads a workflow config file (named "udlgtool.yaml" by
// default) the way the reference shoveler tool loads its own config:
// search a short list of well-known paths, fall back to defaults when no
// file is found, and allow environment variables to override any key.
func LoadConfig(explicitPath string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName("udlgtool")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.udlgtool")
		v.AddConfigPath("/etc/udlgtool/")
	}

	v.SetEnvPrefix("UDLGTOOL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("mode", "english")
	v.SetDefault("include_file_path", false)
	v.SetDefault("csv_path", "translations.csv")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	return v, nil
}

// ModeFromString parses the "mode" config key, defaulting to ModeEnglish
// on an empty or unrecognized value.
func ModeFromString(s string) Mode {
	if strings.EqualFold(s, "variables") {
		return ModeVariables
	}
	return ModeEnglish
}

// OptionsFromConfig builds Options from a loaded config.
func OptionsFromConfig(v *viper.Viper) Options {
	return Options{
		Mode:            ModeFromString(v.GetString("mode")),
		IncludeFilePath: v.GetBool("include_file_path"),
	}
}
