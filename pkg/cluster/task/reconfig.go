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
	"fmt"

	"github.com/openGemini/vsanup/pkg/cluster/spec"
	logprinter "github.com/openGemini/vsanup/pkg/logger/printer"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ClusterReconfig submits a vSAN cluster reconfiguration and waits for it.
// When a restore spec is set, Rollback submits it, but only if Execute got
// as far as submitting the change.
type ClusterReconfig struct {
	api     spec.ConfigSystem
	cluster spec.ClusterRef
	spec    spec.ReconfigSpec
	title   string

	restore      *spec.ReconfigSpec
	restoreTitle string

	submitted bool
}

// NewClusterReconfig returns a reconfiguration task without rollback.
func NewClusterReconfig(api spec.ConfigSystem, cluster spec.ClusterRef, title string, rs spec.ReconfigSpec) *ClusterReconfig {
	return &ClusterReconfig{
		api:     api,
		cluster: cluster,
		spec:    rs,
		title:   cases.Title(language.English, cases.NoLower).String(title),
	}
}

// WithRestore makes Rollback apply rs.
func (c *ClusterReconfig) WithRestore(title string, rs spec.ReconfigSpec) *ClusterReconfig {
	c.restore = &rs
	c.restoreTitle = title
	return c
}

// Submitted reports whether the reconfiguration reached the server.
func (c *ClusterReconfig) Submitted() bool {
	return c.submitted
}

// Execute implements the Task interface
func (c *ClusterReconfig) Execute(ctx context.Context) error {
	rt, err := c.api.Reconfigure(ctx, c.cluster, c.spec)
	if err != nil {
		return errors.WithMessagef(err, "failed to reconfigure cluster %s", c.cluster.Name)
	}
	c.submitted = true
	return waitRemote(ctx, c, rt)
}

// Rollback implements the Task interface
func (c *ClusterReconfig) Rollback(ctx context.Context) error {
	if c.restore == nil || !c.submitted {
		return nil
	}
	logprinter.FromContext(ctx).Infof("%s", c.restoreTitle)

	rt, err := c.api.Reconfigure(ctx, c.cluster, *c.restore)
	if err != nil {
		return errors.WithMessagef(err, "failed to restore cluster %s", c.cluster.Name)
	}
	if err := rt.Wait(ctx); err != nil {
		return errors.WithMessagef(err, "%s", c.restoreTitle)
	}
	c.submitted = false
	return nil
}

// String implements the fmt.Stringer interface
func (c *ClusterReconfig) String() string {
	return fmt.Sprintf("%s: cluster=%s, %s", c.title, c.cluster.Name, c.spec)
}
