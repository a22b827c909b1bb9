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

	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vim25/types"
	"go.uber.org/zap"
)

// collectMultiple retrieves ps of refs into dst. An object removed from the
// inventory while the request is in flight is dropped and the request retried
// with the rest.
func collectMultiple(ctx context.Context, retrieve retrieveFunc, refs []types.ManagedObjectReference, ps []string, dst any) error {
	refs = append([]types.ManagedObjectReference(nil), refs...)
	for len(refs) > 0 {
		err := retrieve(ctx, refs, ps, dst)
		if err == nil {
			return nil
		}

		obj, ok := vanishedObject(err)
		if !ok {
			return err
		}
		rest := removeRef(refs, obj)
		if len(rest) == len(refs) {
			return err
		}
		zap.L().Debug("object vanished while collecting properties, retrying",
			zap.String("object", obj.String()), zap.Int("remaining", len(rest)))
		refs = rest
	}
	return nil
}

// vanishedObject returns the object of a ManagedObjectNotFound fault.
func vanishedObject(err error) (types.ManagedObjectReference, bool) {
	var fault any
	switch {
	case soap.IsSoapFault(err):
		fault = soap.ToSoapFault(err).VimFault()
	case soap.IsVimFault(err):
		fault = soap.ToVimFault(err)
	default:
		return types.ManagedObjectReference{}, false
	}

	switch f := fault.(type) {
	case types.ManagedObjectNotFound:
		return f.Obj, true
	case *types.ManagedObjectNotFound:
		return f.Obj, true
	}
	return types.ManagedObjectReference{}, false
}

func removeRef(refs []types.ManagedObjectReference, obj types.ManagedObjectReference) []types.ManagedObjectReference {
	out := refs[:0:0]
	for _, r := range refs {
		if r != obj {
			out = append(out, r)
		}
	}
	return out
}
