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

	"github.com/openGemini/vsanup/pkg/cluster/ctxt"
	"github.com/openGemini/vsanup/pkg/cluster/spec"
	logprinter "github.com/openGemini/vsanup/pkg/logger/printer"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// waitRemote blocks until rt reaches a terminal state, forwarding the
// completion percentage of the remote task as EventTaskProgress of t.
func waitRemote(ctx context.Context, t Task, rt spec.RemoteTask) error {
	logger := logprinter.FromContext(ctx)
	logger.Zap().Debug("wait for remote task", zap.String("task", t.String()), zap.Stringer("remote", rt))

	waitCtx := ctxt.WithProgress(ctx, func(percent int) {
		ctxt.Publish(ctx, ctxt.EventTaskProgress, t, percent)
	})
	if err := rt.Wait(waitCtx); err != nil {
		return errors.WithMessagef(err, "%s", t.String())
	}
	return nil
}
