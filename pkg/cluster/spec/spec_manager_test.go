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
	"testing"
	"time"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecManagerPath(t *testing.T) {
	m := NewSpec("/tmp/vsanup/clusters")
	assert.Equal(t, "/tmp/vsanup/clusters/VSAN-Cluster/meta.yaml", m.Path("VSAN-Cluster", "meta.yaml"))
	assert.Equal(t, "/tmp/vsanup/clusters/dc_cluster", m.Path("dc/cluster"))
	assert.Equal(t, "/tmp/vsanup/clusters/default-cluster", m.Path(""))
}

func TestSpecManagerSaveAndLoad(t *testing.T) {
	m := NewSpec(t.TempDir())

	exist, err := m.Exist("c1")
	require.NoError(t, err)
	assert.False(t, exist)

	started := time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)
	meta := &ClusterMeta{
		RunID:             "run-1",
		Cluster:           "c1",
		Status:            StatusUpgrading,
		SupportedVersion:  15,
		OutdatedDisks:     2,
		OriginalAutoClaim: true,
		AutoClaimChanged:  true,
		StartedAt:         started,
		UpdatedAt:         started,
	}
	require.NoError(t, m.SaveMeta("c1", meta))

	exist, err = m.Exist("c1")
	require.NoError(t, err)
	assert.True(t, exist)

	meta.Status = StatusCompleted
	require.NoError(t, m.SaveMeta("c1", meta))

	var loaded ClusterMeta
	require.NoError(t, m.Metadata("c1", &loaded))
	assert.Equal(t, StatusCompleted, loaded.Status)
	assert.Equal(t, int32(15), loaded.SupportedVersion)
	assert.True(t, loaded.OriginalAutoClaim)
	assert.True(t, loaded.StartedAt.Equal(started))

	// saving alone never fills the backup directory
	_, err = os.Stat(m.Path("c1", BackupDirName))
	assert.True(t, os.IsNotExist(err))
}

func TestSpecManagerBackupMeta(t *testing.T) {
	m := NewSpec(t.TempDir())

	backup, err := m.BackupMeta("c1")
	require.NoError(t, err)
	assert.Empty(t, backup)

	require.NoError(t, m.SaveMeta("c1", &ClusterMeta{RunID: "run-1", Cluster: "c1", Status: StatusCompleted}))
	backup, err = m.BackupMeta("c1")
	require.NoError(t, err)
	assert.Equal(t, m.Path("c1", BackupDirName), filepath.Dir(backup))

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Contains(t, string(data), "run-1")
}

func TestSpecManagerMetadataMissing(t *testing.T) {
	m := NewSpec(t.TempDir())
	var meta ClusterMeta
	err := m.Metadata("absent", &meta)
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, ErrLoadMetaFailed))
}

func TestSpecManagerMetadataCorrupted(t *testing.T) {
	m := NewSpec(t.TempDir())
	require.NoError(t, os.MkdirAll(m.Path("c1"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(m.Path("c1"), "meta.yaml"), []byte("status: [\n"), 0640))

	var meta ClusterMeta
	err := m.Metadata("c1", &meta)
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, ErrLoadMetaFailed))
}
