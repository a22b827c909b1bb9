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
	"fmt"

	"github.com/openGemini/vsanup/pkg/cluster/ctxt"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/vim25/progress"
	"github.com/vmware/govmomi/vim25/types"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// vsan service returns tasks by id, they are vim tasks on vCenter
func vcTaskRef(ref types.ManagedObjectReference) types.ManagedObjectReference {
	return types.ManagedObjectReference{Type: "Task", Value: ref.Value}
}

type remoteTask struct {
	method string
	task   *object.Task
}

func (s *Session) remoteTask(method string, ref types.ManagedObjectReference) *remoteTask {
	return &remoteTask{
		method: method,
		task:   object.NewTask(s.vim, vcTaskRef(ref)),
	}
}

func (t *remoteTask) String() string {
	return fmt.Sprintf("%s (%s)", t.method, t.task.Reference().Value)
}

// Wait blocks until the task succeeds or fails, reporting its progress
// through ctxt.ReportProgress.
func (t *remoteTask) Wait(ctx context.Context) error {
	sinker := newProgressSinker(ctx)
	_, err := t.task.WaitForResult(ctx, sinker)
	sinker.wait()
	if err != nil {
		return ErrTaskFailed.Wrap(err, "Task %s failed", t)
	}
	zap.L().Debug("task finished", zap.Stringer("task", t))
	return nil
}

// progressSinker forwards the percentage of task updates, dropping repeats.
type progressSinker struct {
	ctx     context.Context
	percent *atomic.Int32
	done    chan struct{}
}

func newProgressSinker(ctx context.Context) *progressSinker {
	return &progressSinker{
		ctx:     ctx,
		percent: atomic.NewInt32(-1),
	}
}

// Sink implements progress.Sinker
func (s *progressSinker) Sink() chan<- progress.Report {
	ch := make(chan progress.Report)
	done := make(chan struct{})
	s.done = done
	go func() {
		defer close(done)
		for r := range ch {
			if r.Error() != nil {
				continue
			}
			p := int32(r.Percentage())
			if s.percent.Swap(p) != p {
				ctxt.ReportProgress(s.ctx, int(p))
			}
		}
	}()
	return ch
}

func (s *progressSinker) wait() {
	if s.done != nil {
		<-s.done
	}
}
