// Copyright 2020 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package localdata

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"github.com/openGemini/vsanup/pkg/utils"
	"github.com/pkg/errors"
)

type configBase struct {
	file string
}

// VsanupConfig represent the config file of vsanup
type VsanupConfig struct {
	configBase
	Host     string `toml:"host"`
	Port     int    `toml:"port" default:"443"`
	User     string `toml:"user"`
	Cluster  string `toml:"cluster" default:"VSAN-Cluster"`
	Insecure bool   `toml:"insecure" default:"true"`
	LogLevel string `toml:"log_level" default:"info"`
}

// ProfileDir returns the profile directory, $VSANUP_HOME or ~/.vsanup
func ProfileDir() string {
	if home := os.Getenv(EnvNameHome); home != "" {
		return home
	}
	if DefaultVsanupHome != "" {
		return DefaultVsanupHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ProfileDirName
	}
	return filepath.Join(home, ProfileDirName)
}

// ClusterDir is the directory holding the run journal of every cluster
func ClusterDir() string {
	return filepath.Join(ProfileDir(), ClusterParentDir)
}

// LogDir is the directory for debug logs
func LogDir() string {
	if p := os.Getenv(EnvNameLogPath); p != "" {
		return p
	}
	return filepath.Join(ProfileDir(), LogParentDir)
}

// InitConfig loads the config file under root, falling back to defaults when absent
func InitConfig(root string) (*VsanupConfig, error) {
	config := VsanupConfig{configBase: configBase{filepath.Join(root, ConfigFileName)}}
	if err := defaults.Set(&config); err != nil {
		return nil, errors.WithStack(err)
	}
	if utils.IsNotExist(config.file) {
		return &config, nil
	}
	if _, err := toml.DecodeFile(config.file, &config); err != nil {
		return nil, errors.WithMessagef(err, "failed to parse %s", config.file)
	}
	return &config, nil
}

