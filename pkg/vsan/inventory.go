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

	"github.com/openGemini/vsanup/pkg/cluster/spec"
	"github.com/openGemini/vsanup/pkg/utils"
	"github.com/vmware/govmomi/object"
	"go.uber.org/zap"
)

const clusterType = "ClusterComputeResource"

// FindCluster looks for a cluster named name directly under the host folder
// of every datacenter and returns the first match.
func (s *Session) FindCluster(ctx context.Context, name string) (spec.ClusterRef, error) {
	children, err := object.NewRootFolder(s.vim).Children(ctx)
	if err != nil {
		return spec.ClusterRef{}, ErrCallFailed.Wrap(err, "Failed to list datacenters")
	}

	si := object.NewSearchIndex(s.vim)
	var searched []string
	for _, child := range children {
		dc, ok := child.(*object.Datacenter)
		if !ok {
			continue
		}
		folders, err := dc.Folders(ctx)
		if err != nil {
			return spec.ClusterRef{}, ErrCallFailed.Wrap(err, "Failed to get folders of datacenter %s", dc.Reference().Value)
		}
		searched = append(searched, folders.HostFolder.InventoryPath)

		found, err := si.FindChild(ctx, folders.HostFolder, name)
		if err != nil {
			return spec.ClusterRef{}, ErrCallFailed.Wrap(err, "Failed to search cluster %s", name)
		}
		if found == nil || found.Reference().Type != clusterType {
			continue
		}
		zap.L().Debug("cluster found", zap.String("cluster", name), zap.String("ref", found.Reference().Value))
		return spec.ClusterRef{Name: name, Ref: found.Reference()}, nil
	}

	return spec.ClusterRef{}, ErrClusterNotFound.New("Cluster %s is not found in %d datacenter(s)", name, len(searched)).
		WithProperty(utils.ErrPropSuggestion, "Check the cluster name given by --cluster")
}
