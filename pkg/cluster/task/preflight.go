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

package task

import (
	"context"
	"fmt"

	"github.com/joomcode/errorx"
	"github.com/openGemini/vsanup/pkg/cluster/spec"
	"github.com/pkg/errors"
)

var (
	errNS = errorx.NewNamespace("task")
	// ErrPreflightIssues means the preflight check reported blocking issues
	ErrPreflightIssues = errNS.NewType("preflight_issues")
)

// Preflight runs the upgrade preflight check of a cluster.
type Preflight struct {
	api     spec.UpgradeSystem
	cluster spec.ClusterRef
	spec    spec.UpgradeSpec

	issues []spec.PreflightIssue
}

// NewPreflight returns the preflight check task.
func NewPreflight(api spec.UpgradeSystem, cluster spec.ClusterRef, us spec.UpgradeSpec) *Preflight {
	return &Preflight{api: api, cluster: cluster, spec: us}
}

// Issues returns the issues found by the last Execute.
func (p *Preflight) Issues() []spec.PreflightIssue {
	return p.issues
}

// Execute implements the Task interface
func (p *Preflight) Execute(ctx context.Context) error {
	issues, err := p.api.PreflightCheck(ctx, p.cluster, p.spec)
	if err != nil {
		return errors.WithMessagef(err, "preflight check of cluster %s", p.cluster.Name)
	}
	p.issues = issues
	if len(issues) > 0 {
		return ErrPreflightIssues.New("%d issue(s) found by the preflight check of cluster %s", len(issues), p.cluster.Name)
	}
	return nil
}

// Rollback implements the Task interface
func (p *Preflight) Rollback(ctx context.Context) error {
	return nil
}

// String implements the fmt.Stringer interface
func (p *Preflight) String() string {
	return fmt.Sprintf("PreflightCheck: cluster=%s, dedup=%t, compression=%t",
		p.cluster.Name, p.spec.DataEfficiency.DedupEnabled, p.spec.DataEfficiency.CompressionEnabled)
}
