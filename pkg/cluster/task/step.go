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

package task

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/openGemini/vsanup/pkg/cluster/ctxt"
	"github.com/openGemini/vsanup/pkg/gui"
	"github.com/openGemini/vsanup/pkg/gui/progress"
	logprinter "github.com/openGemini/vsanup/pkg/logger/printer"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// StepDisplay is a task that will display a progress bar for inner task.
type StepDisplay struct {
	inner    Task
	prefix   string
	children map[Task]struct{}
	Logger   *logprinter.Logger

	out     io.Writer
	percent *atomic.Int32
	// teaProgram is nil when the output is not a terminal, lines are printed instead
	teaProgram *tea.Program
}

func addChildren(m map[Task]struct{}, task Task) {
	if _, exists := m[task]; exists {
		return
	}
	m[task] = struct{}{}
	if t, ok := task.(*Serial); ok {
		t.hideDetailDisplay = true
		for _, tx := range t.inner {
			if _, exists := m[tx]; !exists {
				addChildren(m, tx)
			}
		}
	}
}

func newStepDisplay(prefix string, inner Task, logger *logprinter.Logger) *StepDisplay {
	children := make(map[Task]struct{})
	addChildren(children, inner)
	if logger == nil {
		logger = logprinter.NewLogger(nil)
	}
	s := &StepDisplay{
		inner:    inner,
		prefix:   prefix,
		children: children,
		Logger:   logger,
		out:      logger.Stdout(),
		percent:  atomic.NewInt32(-1),
	}
	if gui.IsTerminalWriter(s.out) {
		s.teaProgram = progress.NewSpinnerProgram(prefix, s.out)
	}
	return s
}

// Execute implements the Task interface
func (s *StepDisplay) Execute(ctx context.Context) error {
	done := make(chan struct{})
	if s.teaProgram != nil {
		go func() {
			if _, err := s.teaProgram.Run(); err != nil {
				s.Logger.Debugf("spinner of step %q stopped: %v", s.prefix, err)
			}
			close(done)
		}()
	} else {
		fmt.Fprintf(s.out, "%s ...\n", s.prefix)
		close(done)
	}

	if inner := ctxt.GetInner(ctx); inner != nil {
		_ = inner.Ev.Subscribe(ctxt.EventTaskBegin, s.handleTaskBegin)
		_ = inner.Ev.Subscribe(ctxt.EventTaskProgress, s.handleTaskProgress)
		defer func() {
			_ = inner.Ev.Unsubscribe(ctxt.EventTaskProgress, s.handleTaskProgress)
			_ = inner.Ev.Unsubscribe(ctxt.EventTaskBegin, s.handleTaskBegin)
		}()
	}

	err := s.inner.Execute(ctx)

	switch {
	case s.teaProgram != nil && err != nil:
		s.teaProgram.Send(progress.ErrMsg{Err: err})
	case s.teaProgram != nil:
		s.teaProgram.Send(progress.FinishedMsg{Finished: true})
	case err != nil:
		fmt.Fprintf(s.out, "%s ... Error\n", s.prefix)
	default:
		fmt.Fprintf(s.out, "%s ... Done\n", s.prefix)
	}
	<-done

	s.Logger.Zap().Debug("step finished", zap.String("step", s.prefix), zap.Error(err))
	return err
}

// Rollback implements the Task interface
func (s *StepDisplay) Rollback(ctx context.Context) error {
	return s.inner.Rollback(ctx)
}

// String implements the fmt.Stringer interface
func (s *StepDisplay) String() string {
	return s.inner.String()
}

func (s *StepDisplay) handleTaskBegin(task Task) {
	if _, ok := s.children[task]; !ok {
		return
	}
	s.percent.Store(-1)
	s.Logger.Debugf("begin %s", task.String())
}

func (s *StepDisplay) handleTaskProgress(task Task, percent int) {
	if _, ok := s.children[task]; !ok {
		return
	}
	if s.percent.Swap(int32(percent)) == int32(percent) {
		return
	}
	if s.teaProgram != nil {
		s.teaProgram.Send(progress.PercentMsg(percent))
		return
	}
	s.Logger.Debugf("%s: %d%%", task.String(), percent)
}
