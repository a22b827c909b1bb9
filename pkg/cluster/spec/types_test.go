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
	"testing"

	"github.com/stretchr/testify/assert"
)

func disk(name string, version int32) Disk {
	return Disk{Name: name, FormatVersion: version, VersionKnown: true}
}

func hostsWith(disks ...Disk) []HostDiskMappings {
	return []HostDiskMappings{{
		Host: "esxi-01",
		Mappings: []DiskMapping{{
			Cache:    disks[0],
			Capacity: disks[1:],
		}},
	}}
}

func TestNeedsUpgrade(t *testing.T) {
	tests := []struct {
		name      string
		hosts     []HostDiskMappings
		supported int32
		want      bool
	}{
		{
			name:      "all disks at supported version",
			hosts:     hostsWith(disk("cache", 5), disk("cap0", 5), disk("cap1", 5)),
			supported: 5,
			want:      false,
		},
		{
			name:      "disks newer than supported",
			hosts:     hostsWith(disk("cache", 7), disk("cap0", 6)),
			supported: 5,
			want:      false,
		},
		{
			name:      "one capacity disk outdated",
			hosts:     hostsWith(disk("cache", 5), disk("cap0", 3), disk("cap1", 5)),
			supported: 5,
			want:      true,
		},
		{
			name:      "cache disk outdated",
			hosts:     hostsWith(disk("cache", 4), disk("cap0", 5)),
			supported: 5,
			want:      true,
		},
		{
			name:      "unknown version is ignored",
			hosts:     hostsWith(Disk{Name: "cache"}, disk("cap0", 5)),
			supported: 5,
			want:      false,
		},
		{
			name:      "no hosts",
			supported: 5,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsUpgrade(tt.hosts, tt.supported))
		})
	}
}

func TestOutdatedDisksAcrossHosts(t *testing.T) {
	hosts := []HostDiskMappings{
		{
			Host: "esxi-01",
			Mappings: []DiskMapping{
				{Cache: disk("a-cache", 5), Capacity: []Disk{disk("a-cap0", 3)}},
				{Cache: disk("a-cache1", 2), Capacity: []Disk{disk("a-cap1", 5)}},
			},
		},
		{
			Host:     "esxi-02",
			Mappings: []DiskMapping{{Cache: disk("b-cache", 5), Capacity: []Disk{disk("b-cap0", 4)}}},
		},
	}

	var names []string
	for _, d := range OutdatedDisks(hosts, 5) {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"a-cap0", "a-cache1", "b-cap0"}, names)
}

func TestNewUpgradeSpec(t *testing.T) {
	s := NewUpgradeSpec(true, false, true)
	assert.True(t, s.DataEfficiency.DedupEnabled)
	assert.True(t, s.DataEfficiency.CompressionEnabled)
	assert.False(t, s.PerformObjectUpgrade)
	assert.True(t, s.AllowReducedRedundancy)
}

func TestReconfigSpecString(t *testing.T) {
	off := false
	assert.Equal(t, "no-op", ReconfigSpec{}.String())
	assert.Equal(t, "[autoClaimStorage=false]", ReconfigSpec{AutoClaimStorage: &off}.String())
	assert.Equal(t, "[dedup=true compression=true]",
		ReconfigSpec{DataEfficiency: &DataEfficiency{DedupEnabled: true, CompressionEnabled: true}}.String())
}
