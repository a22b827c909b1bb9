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
	"github.com/openGemini/vsanup/pkg/cluster/spec"
	logprinter "github.com/openGemini/vsanup/pkg/logger/printer"
)

// Builder is used to build vsanup task
type Builder struct {
	tasks  []Task
	Logger *logprinter.Logger
}

// NewBuilder returns a *Builder instance
func NewBuilder(logger *logprinter.Logger) *Builder {
	return &Builder{Logger: logger}
}

// AutoClaim appends a ClusterReconfig task setting autoClaimStorage to enable.
// Its rollback sets autoClaimStorage back to the opposite value.
func (b *Builder) AutoClaim(api spec.ConfigSystem, cluster spec.ClusterRef, enable bool) *Builder {
	target, restore := enable, !enable
	title := "disable autoClaimStorage"
	if enable {
		title = "enable autoClaimStorage"
	}
	b.tasks = append(b.tasks,
		NewClusterReconfig(api, cluster, title, spec.ReconfigSpec{AutoClaimStorage: &target}).
			WithRestore("Restore autoClaimStorage settings", spec.ReconfigSpec{AutoClaimStorage: &restore}),
	)
	return b
}

// DataEfficiency appends a ClusterReconfig task changing the dedup and
// compression settings, the server upgrades the disk format as part of it.
func (b *Builder) DataEfficiency(api spec.ConfigSystem, cluster spec.ClusterRef, de spec.DataEfficiency) *Builder {
	b.tasks = append(b.tasks,
		NewClusterReconfig(api, cluster, "VsanClusterReconfig", spec.ReconfigSpec{DataEfficiency: &de}),
	)
	return b
}

// FormatUpgrade appends a FormatUpgrade task to the current task collection
func (b *Builder) FormatUpgrade(api spec.UpgradeSystem, cluster spec.ClusterRef, us spec.UpgradeSpec) *Builder {
	b.tasks = append(b.tasks, &FormatUpgrade{
		api:     api,
		cluster: cluster,
		spec:    us,
	})
	return b
}

// Serial appends the tasks to the tail of queue
func (b *Builder) Serial(tasks ...Task) *Builder {
	if len(tasks) > 0 {
		b.tasks = append(b.tasks, tasks...)
	}
	return b
}

// Build returns a task that contains all tasks appended by previous operation
func (b *Builder) Build() Task {
	return &Serial{inner: b.tasks}
}

// BuildAsStep returns a task that is wrapped by a StepDisplay. The task will print single line progress.
func (b *Builder) BuildAsStep(prefix string) *StepDisplay {
	inner := b.Build()
	return newStepDisplay(prefix, inner, b.Logger)
}
