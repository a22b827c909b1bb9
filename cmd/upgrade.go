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

package cmd

import (
	"net"
	"strconv"

	"github.com/openGemini/vsanup/pkg/cluster/manager"
	"github.com/spf13/cobra"
)

// upgradeOpt holds the upgrade flags given to the root command
var upgradeOpt manager.UpgradeOptions

func addUpgradeFlags(cmd *cobra.Command, opt *manager.UpgradeOptions) {
	cmd.Flags().BoolVar(&opt.PerformObjectUpgrade, "objupgrade", false,
		"After all disk groups have been updated, also upgrade all objects")
	cmd.Flags().BoolVar(&opt.AllowReducedRedundancy, "reduceredundancy", false,
		"Removes the need for one disk group worth of free space, by allowing reduced redundancy during disk upgrade")
	cmd.Flags().BoolVar(&opt.EnableDedupCompression, "enabledc", false,
		"Enable deduplication and compression on the vSAN cluster")
}

func newUpgradeCmd() *cobra.Command {
	var opt manager.UpgradeOptions
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the vSAN disk format of a cluster",
		Long: `Upgrade every vSAN disk of the cluster to the highest on-disk format version the cluster
supports. Nothing is changed when all disks are up to date. The upgrade is not started when the
preflight check reports issues.`,
		Example: `
$ vsanup upgrade -s vc.example.com -u administrator@vsphere.local
$ vsanup upgrade -s vc.example.com -u administrator@vsphere.local --reduceredundancy
$ vsanup upgrade -s vc.example.com -u administrator@vsphere.local --enabledc --objupgrade
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpgrade(cmd, opt)
		},
	}
	addUpgradeFlags(cmd, &opt)
	return cmd
}

func runUpgrade(cmd *cobra.Command, opt manager.UpgradeOptions) error {
	ctx, session, err := connect(cmd)
	if err != nil {
		return err
	}
	defer disconnect(ctx, session)

	opt.ClusterName = gOpt.Cluster
	opt.Endpoint = net.JoinHostPort(gOpt.Host, strconv.Itoa(gOpt.Port))
	return newManager(session).Upgrade(ctx, opt)
}
