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

package utils

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// IsNotExist check whether a path is not existed
func IsNotExist(path string) bool {
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}

// MkdirAll creates the directory and its parents with the profile permission.
func MkdirAll(path string) error {
	return errors.WithStack(os.MkdirAll(path, 0750))
}

// backupName returns meta-<timestamp>.yaml for meta.yaml
func backupName(base string, now time.Time) string {
	timestr := now.Format(time.RFC3339Nano)
	p := strings.Split(base, ".")
	if len(p) == 1 {
		return base + "-" + timestr
	}
	return strings.Join(p[0:len(p)-1], ".") + "-" + timestr + "." + p[len(p)-1]
}

// BackupFile copies path into backupDir, e.g. meta.yaml as
// meta-2006-01-02T15:04:05Z07:00.yaml, and returns the path of the copy.
// Nothing is copied when path does not exist yet.
func BackupFile(path, backupDir string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.WithStack(err)
	}

	if err := MkdirAll(backupDir); err != nil {
		return "", err
	}
	backupPath := filepath.Join(backupDir, backupName(filepath.Base(path), time.Now()))
	if err := os.WriteFile(backupPath, data, 0640); err != nil {
		return "", errors.WithStack(err)
	}
	return backupPath, nil
}

// WriteFile replaces the content of path. The data goes to a temporary file
// first so a crash leaves either the old or the new content behind.
func WriteFile(path string, data []byte) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return errors.Errorf("%s is directory", path)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0640); err != nil {
		return errors.WithStack(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.WithStack(err)
	}
	return nil
}
