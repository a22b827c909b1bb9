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
	"context"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/openGemini/vsanup/pkg/cluster/ctxt"
	"github.com/openGemini/vsanup/pkg/cluster/spec"
	"github.com/openGemini/vsanup/pkg/cluster/task"
	"github.com/openGemini/vsanup/pkg/utils"
	"go.uber.org/multierr"
)

// UpgradeOptions are the user choices of an upgrade run.
type UpgradeOptions struct {
	ClusterName string
	// Endpoint is recorded in the run journal only
	Endpoint string

	PerformObjectUpgrade   bool
	AllowReducedRedundancy bool
	EnableDedupCompression bool
}

// Upgrade brings every vSAN disk of the cluster to the highest format version
// the cluster supports. When autoClaimStorage is on it is turned off for the
// upgrade and turned back on before Upgrade returns, whatever happened.
func (m *Manager) Upgrade(ctx context.Context, opt UpgradeOptions) (err error) {
	cluster, err := m.api.FindCluster(ctx, opt.ClusterName)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	if inner := ctxt.GetInner(ctx); inner != nil && inner.RunID != "" {
		runID = inner.RunID
	}
	now := time.Now()
	j := &journal{
		specManager: m.specManager,
		logger:      m.logger,
		meta: &spec.ClusterMeta{
			RunID:                  runID,
			Cluster:                cluster.Name,
			ClusterID:              cluster.Ref.Value,
			Endpoint:               opt.Endpoint,
			PerformObjectUpgrade:   opt.PerformObjectUpgrade,
			AllowReducedRedundancy: opt.AllowReducedRedundancy,
			EnableDedupCompression: opt.EnableDedupCompression,
			StartedAt:              now,
		},
	}
	j.begin()

	supported, err := m.api.SupportedFormatVersion(ctx, cluster)
	if err != nil {
		j.finish(err)
		return err
	}
	m.logger.Infof("The highest vSAN disk format version that cluster %s supports is %d", cluster.Name, supported)
	j.meta.SupportedVersion = supported

	hosts, err := m.api.DiskMappings(ctx, cluster)
	if err != nil {
		j.finish(err)
		return err
	}
	if !spec.NeedsUpgrade(hosts, supported) {
		m.logger.Infof("All disk versions are %d, no upgrade needed", supported)
		j.save(spec.StatusUpToDate, nil)
		return nil
	}
	j.meta.OutdatedDisks = len(spec.OutdatedDisks(hosts, supported))
	m.logger.Debugf("%d disk(s) of cluster %s are older than version %d", j.meta.OutdatedDisks, cluster.Name, supported)

	cfg, err := m.api.GetConfig(ctx, cluster)
	if err != nil {
		j.finish(err)
		return err
	}
	j.meta.OriginalAutoClaim = cfg.AutoClaimStorage
	j.meta.OriginalDedup = cfg.DataEfficiency.DedupEnabled
	j.save(spec.StatusUpgrading, nil)
	defer func() { j.finish(err) }()

	if cfg.AutoClaimStorage {
		m.logger.Infof("autoClaimStorage should be set to false before upgrading vSAN disks")
		j.meta.AutoClaimChanged = true
		disable := task.NewBuilder(m.logger).
			AutoClaim(m.api, cluster, false).
			BuildAsStep("  - Disable autoClaimStorage")

		// the restore must run even when ctx is cancelled by a signal
		defer func() {
			if rerr := disable.Rollback(context.WithoutCancel(ctx)); rerr != nil {
				m.logger.Errorf("Failed to restore autoClaimStorage of cluster %s", cluster.Name)
				err = multierr.Append(err, ErrRestoreFailed.
					Wrap(rerr, "Failed to restore autoClaimStorage of cluster %s", cluster.Name).
					WithProperty(utils.ErrPropSuggestion, "Enable autoClaimStorage of the cluster manually"))
			}
		}()

		if err := disable.Execute(ctx); err != nil {
			return err
		}
	}

	issues, err := m.upgrade(ctx, cluster, cfg, opt)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		j.blocked = true
		for _, issue := range issues {
			j.meta.PreflightIssues = append(j.meta.PreflightIssues, issue.Msg)
		}
		m.logger.Warnf("vSAN disks of cluster %s are not upgraded", cluster.Name)
		return nil
	}

	m.logger.Infof("vSAN disks of cluster %s are upgraded to version %s",
		cluster.Name, color.New(color.FgGreen).Sprint(supported))
	return nil
}

// upgrade runs the preflight check, then either changes the data efficiency
// settings (the server upgrades the disks as part of it) or starts the disk
// format conversion directly. Preflight issues are printed and returned,
// nothing is upgraded then.
func (m *Manager) upgrade(ctx context.Context, cluster spec.ClusterRef, cfg spec.ClusterConfig, opt UpgradeOptions) ([]spec.PreflightIssue, error) {
	us := spec.NewUpgradeSpec(opt.EnableDedupCompression, opt.PerformObjectUpgrade, opt.AllowReducedRedundancy)

	m.logger.Infof("Perform vSAN upgrade preflight check")
	pf := task.NewPreflight(m.api, cluster, us)
	if err := task.NewBuilder(m.logger).Serial(pf).BuildAsStep("  - Preflight check").Execute(ctx); err != nil {
		issues := pf.Issues()
		if len(issues) == 0 {
			return nil, err
		}
		m.logger.Infof("Please fix the issues before upgrading vSAN")
		for _, issue := range issues {
			m.logger.Infof("%s", issue.Msg)
		}
		return issues, nil
	}

	b := task.NewBuilder(m.logger)
	prefix := "  - Upgrade disk format"
	if us.DataEfficiency.DedupEnabled != cfg.DataEfficiency.DedupEnabled {
		m.logger.Infof("Call VsanClusterReconfig, which will upgrade disk version")
		b.DataEfficiency(m.api, cluster, us.DataEfficiency)
		prefix = "  - Reconfigure data efficiency"
	} else {
		m.logger.Infof("Call PerformVsanUpgradeEx to upgrade disk versions")
		b.FormatUpgrade(m.api, cluster, us)
	}

	m.logger.Infof("Wait for vSAN upgrade finished")
	return nil, b.BuildAsStep(prefix).Execute(ctx)
}
