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
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Show the vSAN disk format versions of a cluster",
		Long: `Show the highest on-disk format version the cluster supports, the version of every
vSAN disk and the cluster settings an upgrade touches. Nothing is changed on the cluster.`,
		Example: `
$ vsanup check -s vc.example.com -u administrator@vsphere.local --cluster VSAN-Cluster
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, session, err := connect(cmd)
			if err != nil {
				return err
			}
			defer disconnect(ctx, session)

			return newManager(session).Check(ctx, gOpt.Cluster)
		},
	}
}
