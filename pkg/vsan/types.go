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
	"github.com/vmware/govmomi/vim25/types"
)

// UpgradeSystemExInstance is the upgrade service of the vSAN management
// endpoint, the govmomi vsan package only defines the cluster config system.
var UpgradeSystemExInstance = types.ManagedObjectReference{
	Type:  "VsanUpgradeSystemEx",
	Value: "vsan-upgrade-systemex",
}
