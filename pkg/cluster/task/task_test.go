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
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/openGemini/vsanup/pkg/cluster/ctxt"
	"github.com/openGemini/vsanup/pkg/cluster/spec"
	logprinter "github.com/openGemini/vsanup/pkg/logger/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemoteTask struct {
	name     string
	progress []int
	err      error
}

func (f *fakeRemoteTask) String() string { return f.name }

func (f *fakeRemoteTask) Wait(ctx context.Context) error {
	for _, p := range f.progress {
		ctxt.ReportProgress(ctx, p)
	}
	return f.err
}

type fakeAPI struct {
	reconfigs   []spec.ReconfigSpec
	reconfigErr []error
	waitErr     []error
	upgrades    []spec.UpgradeSpec
	issues      []spec.PreflightIssue
	progress    []int
}

func (f *fakeAPI) GetConfig(ctx context.Context, cluster spec.ClusterRef) (spec.ClusterConfig, error) {
	return spec.ClusterConfig{}, nil
}

func (f *fakeAPI) Reconfigure(ctx context.Context, cluster spec.ClusterRef, rs spec.ReconfigSpec) (spec.RemoteTask, error) {
	n := len(f.reconfigs)
	f.reconfigs = append(f.reconfigs, rs)
	if n < len(f.reconfigErr) && f.reconfigErr[n] != nil {
		return nil, f.reconfigErr[n]
	}
	var werr error
	if n < len(f.waitErr) {
		werr = f.waitErr[n]
	}
	return &fakeRemoteTask{name: fmt.Sprintf("task-%d", n), progress: f.progress, err: werr}, nil
}

func (f *fakeAPI) SupportedFormatVersion(ctx context.Context, cluster spec.ClusterRef) (int32, error) {
	return 5, nil
}

func (f *fakeAPI) PreflightCheck(ctx context.Context, cluster spec.ClusterRef, us spec.UpgradeSpec) ([]spec.PreflightIssue, error) {
	return f.issues, nil
}

func (f *fakeAPI) PerformUpgrade(ctx context.Context, cluster spec.ClusterRef, us spec.UpgradeSpec) (spec.RemoteTask, error) {
	f.upgrades = append(f.upgrades, us)
	return &fakeRemoteTask{name: "upgrade", progress: f.progress}, nil
}

type recordTask struct {
	name string
	log  *[]string
	err  error
}

func (r *recordTask) Execute(ctx context.Context) error {
	*r.log = append(*r.log, "exec "+r.name)
	return r.err
}

func (r *recordTask) Rollback(ctx context.Context) error {
	*r.log = append(*r.log, "rollback "+r.name)
	return nil
}

func (r *recordTask) String() string { return r.name }

var testCluster = spec.ClusterRef{Name: "VSAN-Cluster"}

func quietLogger() (*logprinter.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := logprinter.NewLogger(nil)
	l.SetStdout(buf)
	l.SetStderr(buf)
	return l, buf
}

func TestSerialStopsAtFirstErrorAndRollsBackInReverse(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	s := NewBuilder(nil).Serial(
		&recordTask{name: "a", log: &log},
		&recordTask{name: "b", log: &log, err: boom},
		&recordTask{name: "c", log: &log},
	).Build()
	s.(*Serial).hideDetailDisplay = true

	err := s.Execute(context.Background())
	require.ErrorIs(t, err, boom)
	require.NoError(t, s.Rollback(context.Background()))
	assert.Equal(t, []string{"exec a", "exec b", "rollback c", "rollback b", "rollback a"}, log)
}

func TestSerialPublishesTaskEvents(t *testing.T) {
	logger, _ := quietLogger()
	ctx := ctxt.New(context.Background(), "run", logger)

	var begun, finished []string
	inner := ctxt.GetInner(ctx)
	require.NoError(t, inner.Ev.Subscribe(ctxt.EventTaskBegin, func(t Task) { begun = append(begun, t.String()) }))
	require.NoError(t, inner.Ev.Subscribe(ctxt.EventTaskFinish, func(t Task) { finished = append(finished, t.String()) }))

	var log []string
	s := &Serial{hideDetailDisplay: true, inner: []Task{
		&recordTask{name: "a", log: &log},
		&recordTask{name: "b", log: &log},
	}}
	require.NoError(t, s.Execute(ctx))
	assert.Equal(t, []string{"a", "b"}, begun)
	assert.Equal(t, []string{"a", "b"}, finished)
}

func TestAutoClaimRollbackRestores(t *testing.T) {
	api := &fakeAPI{}
	logger, buf := quietLogger()
	ctx := ctxt.New(context.Background(), "run", logger)

	step := NewBuilder(logger).AutoClaim(api, testCluster, false).BuildAsStep("  - Disable autoClaimStorage")
	require.NoError(t, step.Execute(ctx))
	require.NoError(t, step.Rollback(ctx))

	require.Len(t, api.reconfigs, 2)
	assert.False(t, *api.reconfigs[0].AutoClaimStorage)
	assert.True(t, *api.reconfigs[1].AutoClaimStorage)
	assert.Nil(t, api.reconfigs[1].DataEfficiency)
	assert.Contains(t, buf.String(), "Restore autoClaimStorage settings")

	// a second rollback has nothing left to restore
	require.NoError(t, step.Rollback(ctx))
	assert.Len(t, api.reconfigs, 2)
}

func TestAutoClaimRollbackSkippedWhenNeverSubmitted(t *testing.T) {
	api := &fakeAPI{reconfigErr: []error{errors.New("connection reset")}}
	logger, _ := quietLogger()
	ctx := ctxt.New(context.Background(), "run", logger)

	rc := NewClusterReconfig(api, testCluster, "disable autoClaimStorage", spec.ReconfigSpec{}).
		WithRestore("Restore autoClaimStorage settings", spec.ReconfigSpec{})
	require.Error(t, rc.Execute(ctx))
	assert.False(t, rc.Submitted())
	require.NoError(t, rc.Rollback(ctx))
	assert.Len(t, api.reconfigs, 1)
}

func TestAutoClaimRollbackAfterFailedWait(t *testing.T) {
	waitErr := errors.New("task failed")
	api := &fakeAPI{waitErr: []error{waitErr}}
	logger, _ := quietLogger()
	ctx := ctxt.New(context.Background(), "run", logger)

	rc := NewClusterReconfig(api, testCluster, "disable autoClaimStorage", spec.ReconfigSpec{}).
		WithRestore("Restore autoClaimStorage settings", spec.ReconfigSpec{})
	err := rc.Execute(ctx)
	require.ErrorIs(t, err, waitErr)
	assert.True(t, rc.Submitted())
	require.NoError(t, rc.Rollback(ctx))
	assert.Len(t, api.reconfigs, 2)
}

func TestReconfigWithoutRestoreHasNoRollback(t *testing.T) {
	api := &fakeAPI{}
	ctx := context.Background()
	de := spec.DataEfficiency{DedupEnabled: true, CompressionEnabled: true}

	s := NewBuilder(nil).DataEfficiency(api, testCluster, de).Build()
	s.(*Serial).hideDetailDisplay = true
	require.NoError(t, s.Execute(ctx))
	require.NoError(t, s.Rollback(ctx))
	require.Len(t, api.reconfigs, 1)
	assert.Equal(t, &de, api.reconfigs[0].DataEfficiency)
	assert.Nil(t, api.reconfigs[0].AutoClaimStorage)
}

func TestPreflightIssues(t *testing.T) {
	api := &fakeAPI{issues: []spec.PreflightIssue{{Msg: "Not enough free capacity"}}}
	pf := NewPreflight(api, testCluster, spec.NewUpgradeSpec(false, false, false))

	err := pf.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, ErrPreflightIssues))
	assert.Equal(t, []spec.PreflightIssue{{Msg: "Not enough free capacity"}}, pf.Issues())

	api.issues = nil
	require.NoError(t, pf.Execute(context.Background()))
	assert.Empty(t, pf.Issues())
}

func TestFormatUpgradePassesFlags(t *testing.T) {
	api := &fakeAPI{}
	us := spec.NewUpgradeSpec(false, true, true)
	s := NewBuilder(nil).FormatUpgrade(api, testCluster, us).Build()
	s.(*Serial).hideDetailDisplay = true

	require.NoError(t, s.Execute(context.Background()))
	require.Equal(t, []spec.UpgradeSpec{us}, api.upgrades)
	assert.Contains(t, s.String(), "performObjectUpgrade=true")
}

func TestStepDisplayPlainOutputAndProgress(t *testing.T) {
	api := &fakeAPI{progress: []int{10, 10, 60, 100}}
	logger, buf := quietLogger()
	ctx := ctxt.New(context.Background(), "run", logger)

	var seen []int
	require.NoError(t, ctxt.GetInner(ctx).Ev.Subscribe(ctxt.EventTaskProgress, func(t Task, p int) {
		seen = append(seen, p)
	}))

	step := NewBuilder(logger).FormatUpgrade(api, testCluster, spec.UpgradeSpec{}).
		BuildAsStep("  - Call PerformVsanUpgradeEx")
	require.NoError(t, step.Execute(ctx))

	assert.Equal(t, []int{10, 10, 60, 100}, seen)
	assert.Equal(t, int32(100), step.percent.Load())
	assert.Equal(t, "  - Call PerformVsanUpgradeEx ...\n  - Call PerformVsanUpgradeEx ... Done\n", buf.String())
}

func TestStepDisplayReportsError(t *testing.T) {
	api := &fakeAPI{waitErr: []error{errors.New("disk busy")}}
	logger, buf := quietLogger()
	ctx := ctxt.New(context.Background(), "run", logger)

	step := NewBuilder(logger).DataEfficiency(api, testCluster, spec.DataEfficiency{}).BuildAsStep("  - Reconfigure")
	err := step.Execute(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk busy")
	assert.Contains(t, buf.String(), "  - Reconfigure ... Error")
}
