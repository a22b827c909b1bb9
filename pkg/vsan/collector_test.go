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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vim25/types"
)

func hostRef(v string) types.ManagedObjectReference {
	return types.ManagedObjectReference{Type: "HostSystem", Value: v}
}

func TestVanishedObject(t *testing.T) {
	ref := hostRef("host-21")

	obj, ok := vanishedObject(soap.WrapVimFault(&types.ManagedObjectNotFound{Obj: ref}))
	require.True(t, ok)
	assert.Equal(t, ref, obj)

	_, ok = vanishedObject(soap.WrapVimFault(&types.NotAuthenticated{}))
	assert.False(t, ok)

	_, ok = vanishedObject(errors.New("connection refused"))
	assert.False(t, ok)
}

func TestCollectMultipleDropsVanishedObjects(t *testing.T) {
	refs := []types.ManagedObjectReference{hostRef("host-1"), hostRef("host-2"), hostRef("host-3")}
	var calls [][]types.ManagedObjectReference

	retrieve := func(ctx context.Context, objs []types.ManagedObjectReference, ps []string, dst any) error {
		calls = append(calls, append([]types.ManagedObjectReference(nil), objs...))
		for _, o := range objs {
			if o.Value == "host-2" {
				return soap.WrapVimFault(&types.ManagedObjectNotFound{Obj: o})
			}
		}
		*(dst.(*[]string)) = []string{"ok"}
		return nil
	}

	var dst []string
	require.NoError(t, collectMultiple(context.Background(), retrieve, refs, []string{"name"}, &dst))
	require.Len(t, calls, 2)
	assert.Len(t, calls[0], 3)
	assert.Equal(t, []types.ManagedObjectReference{hostRef("host-1"), hostRef("host-3")}, calls[1])
	assert.Equal(t, []string{"ok"}, dst)
	// the caller's slice is left alone
	assert.Len(t, refs, 3)
}

func TestCollectMultipleAllVanished(t *testing.T) {
	refs := []types.ManagedObjectReference{hostRef("host-1")}
	retrieve := func(ctx context.Context, objs []types.ManagedObjectReference, ps []string, dst any) error {
		return soap.WrapVimFault(&types.ManagedObjectNotFound{Obj: objs[0]})
	}
	assert.NoError(t, collectMultiple(context.Background(), retrieve, refs, []string{"name"}, nil))
}

func TestCollectMultipleOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	refs := []types.ManagedObjectReference{hostRef("host-1")}
	calls := 0
	retrieve := func(ctx context.Context, objs []types.ManagedObjectReference, ps []string, dst any) error {
		calls++
		return boom
	}
	assert.ErrorIs(t, collectMultiple(context.Background(), retrieve, refs, []string{"name"}, nil), boom)
	assert.Equal(t, 1, calls)

	// a fault naming an object outside the request must not loop forever
	stranger := func(ctx context.Context, objs []types.ManagedObjectReference, ps []string, dst any) error {
		calls++
		return soap.WrapVimFault(&types.ManagedObjectNotFound{Obj: hostRef("host-99")})
	}
	assert.Error(t, collectMultiple(context.Background(), stranger, refs, []string{"name"}, nil))
	assert.Equal(t, 2, calls)
}
