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

// DefaultVsanupHome represents the default home directory for this build of vsanup
// If this is left empty, the default will be thee combination of the running
// user's home directory and ProfileDirName
var DefaultVsanupHome string

// ProfileDirName is the name of the profile directory to be used
var ProfileDirName = ".vsanup"

const (
	// ClusterParentDir represent the parent directory of all cluster run journals
	ClusterParentDir = "clusters"

	// LogParentDir represent the parent directory of the debug logs
	LogParentDir = "logs"

	// ConfigFileName is the name of the profile config file
	ConfigFileName = "vsanup.toml"

	// EnvNameHome represents the environment name of vsanup home directory
	EnvNameHome = "VSANUP_HOME"

	// EnvNameLogPath is the variable name by which user can write the log files into
	EnvNameLogPath = "VSANUP_LOG_PATH"

	// EnvNamePassword is the variable name by which user can pass the vCenter password
	// without prompting or putting it on the command line
	EnvNamePassword = "VSANUP_PASSWORD"
)
