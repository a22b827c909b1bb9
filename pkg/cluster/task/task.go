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
	"strings"

	"github.com/openGemini/vsanup/pkg/cluster/ctxt"
	"github.com/pkg/errors"
)

type (
	// Task represents a operation while vsanup execution
	Task interface {
		fmt.Stringer
		Execute(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// Serial will execute a bundle of task in serialized way
	Serial struct {
		hideDetailDisplay bool
		inner             []Task
	}
)

func isDisplayTask(t Task) bool {
	if _, ok := t.(*Serial); ok {
		return true
	}
	if _, ok := t.(*StepDisplay); ok {
		return true
	}
	return false
}

// Execute implements the Task interface
func (s *Serial) Execute(ctx context.Context) error {
	for _, t := range s.inner {
		if !isDisplayTask(t) {
			if !s.hideDetailDisplay {
				fmt.Printf("+ [ Serial ] - %s\n", t.String())
			}
			ctxt.Publish(ctx, ctxt.EventTaskBegin, t)
		}
		err := t.Execute(ctx)
		if !isDisplayTask(t) {
			ctxt.Publish(ctx, ctxt.EventTaskFinish, t)
		}
		if err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// Rollback implements the Task interface
func (s *Serial) Rollback(ctx context.Context) error {
	// Rollback in reverse order
	for i := len(s.inner) - 1; i >= 0; i-- {
		err := s.inner[i].Rollback(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// String implements the fmt.Stringer interface
func (s *Serial) String() string {
	var ss []string
	for _, t := range s.inner {
		ss = append(ss, t.String())
	}
	return strings.Join(ss, "\n")
}
