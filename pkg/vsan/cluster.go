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

package vsan

import (
	"context"
	"sort"

	"github.com/openGemini/vsanup/pkg/cluster/spec"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"
	vsanmethods "github.com/vmware/govmomi/vsan/methods"
	vsantypes "github.com/vmware/govmomi/vsan/types"
	"go.uber.org/zap"
)

var _ spec.ClusterAPI = (*Session)(nil)

// SupportedFormatVersion implements spec.UpgradeSystem
func (s *Session) SupportedFormatVersion(ctx context.Context, cluster spec.ClusterRef) (int32, error) {
	res, err := vsanmethods.RetrieveSupportedVsanFormatVersion(ctx, s.vsan, &vsantypes.RetrieveSupportedVsanFormatVersion{
		This:    UpgradeSystemExInstance,
		Cluster: cluster.Ref,
	})
	if err != nil {
		return 0, ErrCallFailed.Wrap(err, "RetrieveSupportedVsanFormatVersion on cluster %s", cluster.Name)
	}
	return res.Returnval, nil
}

// PreflightCheck implements spec.UpgradeSystem
func (s *Session) PreflightCheck(ctx context.Context, cluster spec.ClusterRef, us spec.UpgradeSpec) ([]spec.PreflightIssue, error) {
	res, err := vsanmethods.PerformVsanUpgradePreflightCheckEx(ctx, s.vsan, &vsantypes.PerformVsanUpgradePreflightCheckEx{
		This:    UpgradeSystemExInstance,
		Cluster: cluster.Ref,
		Spec: &vsantypes.VsanDiskFormatConversionSpec{
			DataEfficiencyConfig: dataEfficiencyConfig(us.DataEfficiency),
		},
	})
	if err != nil {
		return nil, ErrCallFailed.Wrap(err, "PerformVsanUpgradePreflightCheckEx on cluster %s", cluster.Name)
	}

	issues := make([]spec.PreflightIssue, 0, len(res.Returnval.Issues))
	for _, issue := range res.Returnval.Issues {
		issues = append(issues, spec.PreflightIssue{Msg: issue.GetVsanUpgradeSystemPreflightCheckIssue().Msg})
	}
	return issues, nil
}

// PerformUpgrade implements spec.UpgradeSystem
func (s *Session) PerformUpgrade(ctx context.Context, cluster spec.ClusterRef, us spec.UpgradeSpec) (spec.RemoteTask, error) {
	res, err := vsanmethods.PerformVsanUpgradeEx(ctx, s.vsan, &vsantypes.PerformVsanUpgradeEx{
		This:                   UpgradeSystemExInstance,
		Cluster:                cluster.Ref,
		PerformObjectUpgrade:   types.NewBool(us.PerformObjectUpgrade),
		AllowReducedRedundancy: types.NewBool(us.AllowReducedRedundancy),
	})
	if err != nil {
		return nil, ErrCallFailed.Wrap(err, "PerformVsanUpgradeEx on cluster %s", cluster.Name)
	}
	return s.remoteTask("PerformVsanUpgradeEx", res.Returnval), nil
}

// GetConfig implements spec.ConfigSystem
func (s *Session) GetConfig(ctx context.Context, cluster spec.ClusterRef) (spec.ClusterConfig, error) {
	info, err := s.vsan.VsanClusterGetConfig(ctx, cluster.Ref)
	if err != nil {
		return spec.ClusterConfig{}, ErrCallFailed.Wrap(err, "VsanClusterGetConfig on cluster %s", cluster.Name)
	}
	return clusterConfig(info), nil
}

// Reconfigure implements spec.ConfigSystem
func (s *Session) Reconfigure(ctx context.Context, cluster spec.ClusterRef, rs spec.ReconfigSpec) (spec.RemoteTask, error) {
	task, err := s.vsan.VsanClusterReconfig(ctx, cluster.Ref, reconfigSpec(rs))
	if err != nil {
		return nil, ErrCallFailed.Wrap(err, "VsanClusterReconfig on cluster %s", cluster.Name)
	}
	return s.remoteTask("VsanClusterReconfig", task.Reference()), nil
}

// DiskMappings implements spec.DiskInspector
func (s *Session) DiskMappings(ctx context.Context, cluster spec.ClusterRef) ([]spec.HostDiskMappings, error) {
	hosts, err := object.NewClusterComputeResource(s.vim, cluster.Ref).Hosts(ctx)
	if err != nil {
		return nil, ErrCallFailed.Wrap(err, "Failed to list hosts of cluster %s", cluster.Name)
	}
	refs := make([]types.ManagedObjectReference, 0, len(hosts))
	for _, h := range hosts {
		refs = append(refs, h.Reference())
	}

	var hostMos []mo.HostSystem
	if err := collectMultiple(ctx, s.retrieve, refs, []string{"name", "configManager.vsanSystem"}, &hostMos); err != nil {
		return nil, ErrCallFailed.Wrap(err, "Failed to collect vSAN systems of cluster %s", cluster.Name)
	}

	hostNames := make(map[types.ManagedObjectReference]string, len(hostMos))
	vsanRefs := make([]types.ManagedObjectReference, 0, len(hostMos))
	for _, h := range hostMos {
		if h.ConfigManager.VsanSystem == nil {
			zap.L().Debug("host has no vSAN system", zap.String("host", h.Name))
			continue
		}
		hostNames[*h.ConfigManager.VsanSystem] = h.Name
		vsanRefs = append(vsanRefs, *h.ConfigManager.VsanSystem)
	}

	var vsanMos []mo.HostVsanSystem
	if err := collectMultiple(ctx, s.retrieve, vsanRefs, []string{"config.storageInfo.diskMapping"}, &vsanMos); err != nil {
		return nil, ErrCallFailed.Wrap(err, "Failed to collect disk mappings of cluster %s", cluster.Name)
	}

	out := make([]spec.HostDiskMappings, 0, len(vsanMos))
	for _, vs := range vsanMos {
		out = append(out, spec.HostDiskMappings{
			Host:     hostNames[vs.Self],
			Mappings: diskMappings(vs.Config.StorageInfo),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Host < out[j].Host })
	return out, nil
}

func diskMappings(info *types.VsanHostConfigInfoStorageInfo) []spec.DiskMapping {
	if info == nil {
		return nil
	}
	out := make([]spec.DiskMapping, 0, len(info.DiskMapping))
	for _, m := range info.DiskMapping {
		dm := spec.DiskMapping{Cache: disk(m.Ssd)}
		for _, d := range m.NonSsd {
			dm.Capacity = append(dm.Capacity, disk(d))
		}
		out = append(out, dm)
	}
	return out
}

func disk(d types.HostScsiDisk) spec.Disk {
	out := spec.Disk{Name: d.CanonicalName}
	if d.VsanDiskInfo != nil {
		out.VsanUUID = d.VsanDiskInfo.VsanUuid
		out.FormatVersion = d.VsanDiskInfo.FormatVersion
		out.VersionKnown = true
	}
	return out
}

func dataEfficiencyConfig(de spec.DataEfficiency) *vsantypes.VsanDataEfficiencyConfig {
	return &vsantypes.VsanDataEfficiencyConfig{
		DedupEnabled:       de.DedupEnabled,
		CompressionEnabled: types.NewBool(de.CompressionEnabled),
	}
}

func clusterConfig(info *vsantypes.VsanConfigInfoEx) spec.ClusterConfig {
	var cfg spec.ClusterConfig
	if info == nil {
		return cfg
	}
	if info.Enabled != nil {
		cfg.Enabled = *info.Enabled
	}
	if info.DefaultConfig != nil && info.DefaultConfig.AutoClaimStorage != nil {
		cfg.AutoClaimStorage = *info.DefaultConfig.AutoClaimStorage
	}
	if de := info.DataEfficiencyConfig; de != nil {
		cfg.DataEfficiency.DedupEnabled = de.DedupEnabled
		if de.CompressionEnabled != nil {
			cfg.DataEfficiency.CompressionEnabled = *de.CompressionEnabled
		}
	}
	return cfg
}

func reconfigSpec(rs spec.ReconfigSpec) vsantypes.VimVsanReconfigSpec {
	out := vsantypes.VimVsanReconfigSpec{Modify: true}
	if rs.AutoClaimStorage != nil {
		out.VsanClusterConfig = &vsantypes.VsanClusterConfigInfo{
			DefaultConfig: &types.VsanClusterConfigInfoHostDefaultInfo{
				AutoClaimStorage: types.NewBool(*rs.AutoClaimStorage),
			},
		}
	}
	if rs.DataEfficiency != nil {
		out.DataEfficiencyConfig = dataEfficiencyConfig(*rs.DataEfficiency)
	}
	return out
}
