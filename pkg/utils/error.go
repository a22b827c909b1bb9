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

package utils

import (
	"github.com/joomcode/errorx"
	"go.uber.org/multierr"
)

var (
	// ErrPropSuggestion is a property of an Error that will be printed as the suggestion.
	ErrPropSuggestion = errorx.RegisterProperty("suggestion")

	// ErrTraitPreCheck means that the Error is a pre-check error so that no error logs will be outputted directly.
	ErrTraitPreCheck = errorx.RegisterTrait("pre_check")
)

// Suggestion returns the suggestion attached to err, if any. For an error
// combined by multierr the first suggestion found is returned.
func Suggestion(err error) (string, bool) {
	for _, e := range multierr.Errors(err) {
		if s, ok := suggestion(e); ok {
			return s, true
		}
	}
	return "", false
}

func suggestion(err error) (string, bool) {
	ex := errorx.Cast(err)
	if ex == nil {
		return "", false
	}
	v, ok := ex.Property(ErrPropSuggestion)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
