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

	"github.com/openGemini/vsanup/pkg/cluster/spec"
	"github.com/pkg/errors"
)

// FormatUpgrade starts the on-disk format conversion of a cluster and waits for it.
type FormatUpgrade struct {
	api     spec.UpgradeSystem
	cluster spec.ClusterRef
	spec    spec.UpgradeSpec
}

// Execute implements the Task interface
func (u *FormatUpgrade) Execute(ctx context.Context) error {
	rt, err := u.api.PerformUpgrade(ctx, u.cluster, u.spec)
	if err != nil {
		return errors.WithMessagef(err, "failed to start upgrade of cluster %s", u.cluster.Name)
	}
	return waitRemote(ctx, u, rt)
}

// Rollback implements the Task interface. A submitted conversion cannot be undone.
func (u *FormatUpgrade) Rollback(ctx context.Context) error {
	return nil
}

// String implements the fmt.Stringer interface
func (u *FormatUpgrade) String() string {
	return fmt.Sprintf("PerformVsanUpgradeEx: cluster=%s, performObjectUpgrade=%t, allowReducedRedundancy=%t",
		u.cluster.Name, u.spec.PerformObjectUpgrade, u.spec.AllowReducedRedundancy)
}
