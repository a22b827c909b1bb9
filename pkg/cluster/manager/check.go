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
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/openGemini/vsanup/pkg/cluster/spec"
	"github.com/openGemini/vsanup/pkg/gui"
)

// Check prints the supported format version, the version of every vSAN disk
// and the settings touched by an upgrade. It changes nothing on the cluster.
func (m *Manager) Check(ctx context.Context, clusterName string) error {
	cluster, err := m.api.FindCluster(ctx, clusterName)
	if err != nil {
		return err
	}
	supported, err := m.api.SupportedFormatVersion(ctx, cluster)
	if err != nil {
		return err
	}
	hosts, err := m.api.DiskMappings(ctx, cluster)
	if err != nil {
		return err
	}
	cfg, err := m.api.GetConfig(ctx, cluster)
	if err != nil {
		return err
	}

	out := m.logger.Stdout()
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintf(out, "Cluster name:               %s\n", cyan.Sprint(cluster.Name))
	fmt.Fprintf(out, "Supported disk format:      %s\n", cyan.Sprint(supported))
	fmt.Fprintf(out, "autoClaimStorage:           %s\n", cyan.Sprint(cfg.AutoClaimStorage))
	fmt.Fprintf(out, "Deduplication/compression:  %s\n", cyan.Sprintf("%t/%t",
		cfg.DataEfficiency.DedupEnabled, cfg.DataEfficiency.CompressionEnabled))

	gui.FprintTable(out, diskTable(hosts, supported), true)

	total, outdated := 0, len(spec.OutdatedDisks(hosts, supported))
	for _, h := range hosts {
		for _, dm := range h.Mappings {
			total += len(dm.Disks())
		}
	}
	if outdated == 0 {
		fmt.Fprintf(out, "All disk versions are %d, no upgrade needed\n", supported)
	} else {
		fmt.Fprintf(out, "%s of %d disk(s) need upgrade\n", color.YellowString("%d", outdated), total)
	}

	m.printLastRun(cluster.Name)
	return nil
}

func diskTable(hosts []spec.HostDiskMappings, supported int32) [][]string {
	rows := [][]string{{"Host", "Disk", "Role", "Version", "Status"}}
	row := func(host string, d spec.Disk, role string) []string {
		version, status := "-", "unknown"
		if d.VersionKnown {
			version = strconv.Itoa(int(d.FormatVersion))
			status = "ok"
			if d.FormatVersion < supported {
				status = "outdated"
			}
		}
		return []string{host, d.Name, role, version, status}
	}
	for _, h := range hosts {
		for _, dm := range h.Mappings {
			rows = append(rows, row(h.Host, dm.Cache, "cache"))
			for _, d := range dm.Capacity {
				rows = append(rows, row(h.Host, d, "capacity"))
			}
		}
	}
	return rows
}

func (m *Manager) printLastRun(clusterName string) {
	if m.specManager == nil {
		return
	}
	exist, err := m.specManager.Exist(clusterName)
	if err != nil || !exist {
		return
	}
	var meta spec.ClusterMeta
	if err := m.specManager.Metadata(clusterName, &meta); err != nil {
		m.logger.Warnf("%v", err)
		return
	}
	fmt.Fprintf(m.logger.Stdout(), "Last upgrade run %s at %s: %s\n",
		meta.RunID, meta.UpdatedAt.Format(time.RFC3339), meta.Status)
	for _, issue := range meta.PreflightIssues {
		fmt.Fprintf(m.logger.Stdout(), "  preflight issue: %s\n", issue)
	}
	if meta.Status == spec.StatusRestoreFailed {
		m.logger.Warnf("autoClaimStorage was %t before that run and may still be disabled", meta.OriginalAutoClaim)
	}
}
