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
	"fmt"

	"github.com/vmware/govmomi/vim25/types"
)

// ClusterRef identifies a vSAN cluster resolved from the inventory.
type ClusterRef struct {
	Name string
	Ref  types.ManagedObjectReference
}

func (c ClusterRef) String() string {
	if c.Ref.Value == "" {
		return c.Name
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.Ref.Value)
}

// Disk is a device claimed by vSAN.
type Disk struct {
	Name     string // canonical name, e.g. naa.5000c500a1b2c3d4
	VsanUUID string
	// FormatVersion is meaningful only when VersionKnown is true,
	// hosts report no vSAN disk info for devices that are not claimed yet.
	FormatVersion int32
	VersionKnown  bool
}

// DiskMapping is one disk group: a cache device and its capacity devices.
type DiskMapping struct {
	Cache    Disk
	Capacity []Disk
}

// Disks returns the cache device followed by the capacity devices.
func (m DiskMapping) Disks() []Disk {
	disks := make([]Disk, 0, len(m.Capacity)+1)
	disks = append(disks, m.Cache)
	return append(disks, m.Capacity...)
}

// HostDiskMappings are the disk groups of one host.
type HostDiskMappings struct {
	Host     string
	Mappings []DiskMapping
}

// DataEfficiency is the cluster wide deduplication and compression setting.
type DataEfficiency struct {
	DedupEnabled       bool
	CompressionEnabled bool
}

// ClusterConfig is a snapshot of the vSAN configuration of a cluster.
type ClusterConfig struct {
	Enabled          bool
	AutoClaimStorage bool
	DataEfficiency   DataEfficiency
}

// ReconfigSpec describes a partial cluster reconfiguration, nil fields are left untouched.
type ReconfigSpec struct {
	AutoClaimStorage *bool
	DataEfficiency   *DataEfficiency
}

func (s ReconfigSpec) String() string {
	var parts []string
	if s.AutoClaimStorage != nil {
		parts = append(parts, fmt.Sprintf("autoClaimStorage=%t", *s.AutoClaimStorage))
	}
	if s.DataEfficiency != nil {
		parts = append(parts, fmt.Sprintf("dedup=%t compression=%t",
			s.DataEfficiency.DedupEnabled, s.DataEfficiency.CompressionEnabled))
	}
	if len(parts) == 0 {
		return "no-op"
	}
	return fmt.Sprint(parts)
}

// UpgradeSpec is the one-shot request of an on-disk format upgrade.
type UpgradeSpec struct {
	DataEfficiency         DataEfficiency
	PerformObjectUpgrade   bool
	AllowReducedRedundancy bool
}

// NewUpgradeSpec builds the request, enabling dedup/compression turns on both features.
func NewUpgradeSpec(enableDedupCompression, performObjectUpgrade, allowReducedRedundancy bool) UpgradeSpec {
	return UpgradeSpec{
		DataEfficiency: DataEfficiency{
			DedupEnabled:       enableDedupCompression,
			CompressionEnabled: enableDedupCompression,
		},
		PerformObjectUpgrade:   performObjectUpgrade,
		AllowReducedRedundancy: allowReducedRedundancy,
	}
}

// PreflightIssue is a blocking problem reported by the upgrade preflight check.
type PreflightIssue struct {
	Msg string
}

// NeedsUpgrade reports whether any disk with a known format version is
// older than the supported version.
func NeedsUpgrade(hosts []HostDiskMappings, supported int32) bool {
	return len(OutdatedDisks(hosts, supported)) > 0
}

// OutdatedDisks lists the disks whose format version is older than supported.
func OutdatedDisks(hosts []HostDiskMappings, supported int32) []Disk {
	var out []Disk
	for _, h := range hosts {
		for _, m := range h.Mappings {
			for _, d := range m.Disks() {
				if d.VersionKnown && d.FormatVersion < supported {
					out = append(out, d)
				}
			}
		}
	}
	return out
}
