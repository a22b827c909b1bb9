// Copyright 2020 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package ctxt

import (
	"context"

	"github.com/asaskevich/EventBus"
	logprinter "github.com/openGemini/vsanup/pkg/logger/printer"
)

type contextKey string

const (
	ctxKey      = contextKey("VSANUP_CONTEXT")
	progressKey = contextKey("VSANUP_PROGRESS")
)

const (
	// EventTaskBegin is emitted when a task is going to be executed.
	EventTaskBegin = "task_begin"
	// EventTaskFinish is emitted when a task finishes executing.
	EventTaskFinish = "task_finish"
	// EventTaskProgress is emitted when a remote task reports its completion percentage.
	EventTaskProgress = "task_progress"
)

type (
	// Context is used to share state while multiple tasks execution.
	Context struct {
		// RunID identifies one invocation in the logs and the run journal
		RunID string
		Ev    EventBus.Bus
	}
)

// New create a context instance.
func New(ctx context.Context, runID string, logger *logprinter.Logger) context.Context {
	return context.WithValue(
		context.WithValue(
			ctx,
			logprinter.ContextKeyLogger,
			logger,
		),
		ctxKey,
		&Context{
			RunID: runID,
			Ev:    EventBus.New(),
		},
	)
}

// GetInner return *Context from context.Context's value
func GetInner(ctx context.Context) *Context {
	if c, ok := ctx.Value(ctxKey).(*Context); ok {
		return c
	}
	return nil
}

// Publish emits the event on the bus carried by ctx, if any
func Publish(ctx context.Context, topic string, args ...any) {
	if inner := GetInner(ctx); inner != nil {
		inner.Ev.Publish(topic, args...)
	}
}

// WithProgress returns a context whose remote waits report their completion
// percentage to fn.
func WithProgress(ctx context.Context, fn func(percent int)) context.Context {
	return context.WithValue(ctx, progressKey, fn)
}

// ReportProgress forwards percent to the callback installed by WithProgress.
func ReportProgress(ctx context.Context, percent int) {
	if fn, ok := ctx.Value(progressKey).(func(int)); ok && fn != nil {
		fn(percent)
	}
}
