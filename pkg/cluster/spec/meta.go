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

import "time"

// RunStatus is the state an upgrade run reached.
type RunStatus string

// statuses recorded in meta.yaml
const (
	StatusChecking        RunStatus = "checking"
	StatusUpToDate        RunStatus = "up-to-date"
	StatusUpgrading       RunStatus = "upgrading"
	StatusCompleted       RunStatus = "completed"
	StatusPreflightFailed RunStatus = "preflight-failed"
	StatusFailed          RunStatus = "failed"
	// StatusRestoreFailed means auto-claim was disabled by the run and could
	// not be turned back on. OriginalAutoClaim tells the operator what to restore.
	StatusRestoreFailed RunStatus = "restore-failed"
)

// ClusterMeta is the run journal of the last upgrade attempt on a cluster.
type ClusterMeta struct {
	RunID     string    `yaml:"run_id"`
	Cluster   string    `yaml:"cluster"`
	ClusterID string    `yaml:"cluster_id,omitempty"`
	Endpoint  string    `yaml:"endpoint,omitempty"`
	Status    RunStatus `yaml:"status"`
	LastError string    `yaml:"last_error,omitempty"`

	SupportedVersion int32    `yaml:"supported_version,omitempty"`
	OutdatedDisks    int      `yaml:"outdated_disks"`
	PreflightIssues  []string `yaml:"preflight_issues,omitempty"`

	OriginalAutoClaim bool `yaml:"original_auto_claim"`
	AutoClaimChanged  bool `yaml:"auto_claim_changed"`
	OriginalDedup     bool `yaml:"original_dedup"`

	PerformObjectUpgrade   bool `yaml:"perform_object_upgrade"`
	AllowReducedRedundancy bool `yaml:"allow_reduced_redundancy"`
	EnableDedupCompression bool `yaml:"enable_dedup_compression"`

	StartedAt time.Time `yaml:"started_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}
