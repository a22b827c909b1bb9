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

package manager

import (
	"time"

	"github.com/joomcode/errorx"
	"github.com/openGemini/vsanup/pkg/cluster/spec"
	logprinter "github.com/openGemini/vsanup/pkg/logger/printer"
	"go.uber.org/multierr"
)

// journal records the progress of one run in meta.yaml. Failing to write it
// never stops the run.
type journal struct {
	specManager *spec.SpecManager
	logger      *logprinter.Logger
	meta        *spec.ClusterMeta
	// blocked is set when preflight issues kept the upgrade from starting
	blocked bool
}

// begin keeps the meta.yaml of the previous run in the backup directory,
// then records the start of this one.
func (j *journal) begin() {
	if j.specManager != nil {
		if _, err := j.specManager.BackupMeta(j.meta.Cluster); err != nil {
			j.logger.Warnf("Failed to back up the last run of cluster %s: %v", j.meta.Cluster, err)
		}
	}
	j.save(spec.StatusChecking, nil)
}

func (j *journal) save(status spec.RunStatus, err error) {
	j.meta.Status = status
	if err != nil {
		j.meta.LastError = err.Error()
	}
	j.meta.UpdatedAt = time.Now()
	if j.specManager == nil {
		return
	}
	if serr := j.specManager.SaveMeta(j.meta.Cluster, j.meta); serr != nil {
		j.logger.Warnf("Failed to record the run of cluster %s: %v", j.meta.Cluster, serr)
	}
}

func (j *journal) finish(err error) {
	j.save(j.status(err), err)
}

func (j *journal) status(err error) spec.RunStatus {
	if err == nil && j.blocked {
		return spec.StatusPreflightFailed
	}
	return runStatus(err)
}

func runStatus(err error) spec.RunStatus {
	if err == nil {
		return spec.StatusCompleted
	}
	for _, e := range multierr.Errors(err) {
		if errorx.IsOfType(e, ErrRestoreFailed) {
			return spec.StatusRestoreFailed
		}
	}
	return spec.StatusFailed
}
