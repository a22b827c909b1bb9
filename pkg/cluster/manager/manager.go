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
	"github.com/joomcode/errorx"
	"github.com/openGemini/vsanup/pkg/cluster/spec"
	logprinter "github.com/openGemini/vsanup/pkg/logger/printer"
)

var (
	errNS = errorx.NewNamespace("manager")
	// ErrRestoreFailed means autoClaimStorage was disabled by vsanup and could not be enabled again
	ErrRestoreFailed = errNS.NewType("restore_failed")
)

// Manager to upgrade the vSAN disk format of a cluster.
type Manager struct {
	api         spec.ClusterAPI
	specManager *spec.SpecManager
	logger      *logprinter.Logger
}

// NewManager create a Manager. specManager may be nil, no run journal is kept then.
func NewManager(api spec.ClusterAPI, specManager *spec.SpecManager, logger *logprinter.Logger) *Manager {
	if logger == nil {
		logger = logprinter.NewLogger(nil)
	}
	return &Manager{
		api:         api,
		specManager: specManager,
		logger:      logger,
	}
}
