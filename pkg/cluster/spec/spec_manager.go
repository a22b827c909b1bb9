// Copyright 2023 Huawei Cloud Computing Technologies Co., Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package spec

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joomcode/errorx"
	"github.com/openGemini/vsanup/pkg/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var (
	errNS = errorx.NewNamespace("spec")
	// ErrCreateDirFailed is ErrCreateDirFailed
	ErrCreateDirFailed = errNS.NewType("create_dir_failed")
	// ErrSaveMetaFailed is ErrSaveMetaFailed
	ErrSaveMetaFailed = errNS.NewType("save_meta_failed")
	// ErrLoadMetaFailed is ErrLoadMetaFailed
	ErrLoadMetaFailed = errNS.NewType("load_meta_failed")
)

const (
	// metaFileName is the file name of the meta file.
	metaFileName = "meta.yaml"
	// BackupDirName is the directory to save backup files.
	BackupDirName = "backup"
)

// SpecManager control management of the run journal of every cluster.
type SpecManager struct {
	base string
}

// NewSpec create a spec instance.
func NewSpec(base string) *SpecManager {
	return &SpecManager{
		base: base,
	}
}

// Path returns the full path to a sub path (file or directory) of a
// cluster, it is a sub dir in the profile dir of the user, with the cluster name
// as its name.
func (s *SpecManager) Path(cluster string, subpath ...string) string {
	if cluster == "" {
		cluster = "default-cluster"
	}
	cluster = strings.NewReplacer("/", "_", `\`, "_").Replace(cluster)
	return filepath.Join(append([]string{s.base, cluster}, subpath...)...)
}

// SaveMeta save the meta with specified cluster name.
func (s *SpecManager) SaveMeta(clusterName string, meta *ClusterMeta) error {
	wrapError := func(err error) *errorx.Error {
		return ErrSaveMetaFailed.Wrap(err, "Failed to save cluster metadata")
	}

	if err := s.ensureDir(clusterName); err != nil {
		return wrapError(err)
	}

	data, err := yaml.Marshal(meta)
	if err != nil {
		return wrapError(err)
	}

	if err := utils.WriteFile(s.Path(clusterName, metaFileName), data); err != nil {
		return wrapError(err)
	}
	return nil
}

// BackupMeta copies the saved meta of the cluster into its backup directory
// and returns the copy, or "" when nothing was saved yet.
func (s *SpecManager) BackupMeta(clusterName string) (string, error) {
	backup, err := utils.BackupFile(s.Path(clusterName, metaFileName), s.Path(clusterName, BackupDirName))
	if err != nil {
		return "", ErrSaveMetaFailed.Wrap(err, "Failed to back up cluster metadata")
	}
	return backup, nil
}

// Metadata loads the last saved meta of the cluster into meta.
func (s *SpecManager) Metadata(clusterName string, meta *ClusterMeta) error {
	fname := s.Path(clusterName, metaFileName)

	data, err := os.ReadFile(fname)
	if err != nil {
		return ErrLoadMetaFailed.Wrap(err, "Failed to read cluster metadata %s", fname)
	}

	if err := yaml.Unmarshal(data, meta); err != nil {
		return ErrLoadMetaFailed.Wrap(err, "Failed to parse cluster metadata %s", fname)
	}
	return nil
}

// Exist checks if the cluster exist by checking the meta file.
func (s *SpecManager) Exist(clusterName string) (exist bool, err error) {
	fname := s.Path(clusterName, metaFileName)

	_, err = os.Stat(fname)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.WithStack(err)
	}

	return true, nil
}

// ensureDir ensures that the cluster directory exists.
func (s *SpecManager) ensureDir(clusterName string) error {
	if err := os.MkdirAll(s.Path(clusterName), 0750); err != nil {
		return ErrCreateDirFailed.
			Wrap(err, "Failed to create cluster metadata directory '%s'", s.Path(clusterName))
	}
	return nil
}
