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
	"context"
	"fmt"
)

// RemoteTask is an asynchronous operation running on the management server.
// The only thing to do with it is to wait until it reaches a terminal state.
type RemoteTask interface {
	fmt.Stringer
	Wait(ctx context.Context) error
}

// Inventory resolves clusters by name.
type Inventory interface {
	FindCluster(ctx context.Context, name string) (ClusterRef, error)
}

// DiskInspector fetches the disk groups of every host in a cluster.
type DiskInspector interface {
	DiskMappings(ctx context.Context, cluster ClusterRef) ([]HostDiskMappings, error)
}

// UpgradeSystem is the vSAN upgrade management service.
type UpgradeSystem interface {
	SupportedFormatVersion(ctx context.Context, cluster ClusterRef) (int32, error)
	PreflightCheck(ctx context.Context, cluster ClusterRef, spec UpgradeSpec) ([]PreflightIssue, error)
	PerformUpgrade(ctx context.Context, cluster ClusterRef, spec UpgradeSpec) (RemoteTask, error)
}

// ConfigSystem is the vSAN cluster configuration service.
type ConfigSystem interface {
	GetConfig(ctx context.Context, cluster ClusterRef) (ClusterConfig, error)
	Reconfigure(ctx context.Context, cluster ClusterRef, spec ReconfigSpec) (RemoteTask, error)
}

// ClusterAPI is everything the upgrade needs from the management server.
type ClusterAPI interface {
	Inventory
	DiskInspector
	UpgradeSystem
	ConfigSystem
}
