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
	"errors"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestSuggestion(t *testing.T) {
	errType := errorx.NewNamespace("utils_suggestion_test").NewType("restore_failed")
	withHint := errType.New("Failed to restore autoClaimStorage").
		WithProperty(ErrPropSuggestion, "Enable autoClaimStorage of the cluster manually")

	s, ok := Suggestion(withHint)
	assert.True(t, ok)
	assert.Equal(t, "Enable autoClaimStorage of the cluster manually", s)

	_, ok = Suggestion(errType.New("no hint"))
	assert.False(t, ok)
	_, ok = Suggestion(errors.New("plain"))
	assert.False(t, ok)
	_, ok = Suggestion(nil)
	assert.False(t, ok)
}

func TestSuggestionOfCombinedErrors(t *testing.T) {
	errType := errorx.NewNamespace("utils_test_combined").NewType("restore_failed")
	upgradeErr := errors.New("task PerformVsanUpgradeEx failed")
	restoreErr := errType.New("Failed to restore autoClaimStorage").
		WithProperty(ErrPropSuggestion, "Enable autoClaimStorage of the cluster manually")

	s, ok := Suggestion(multierr.Append(upgradeErr, restoreErr))
	assert.True(t, ok)
	assert.Equal(t, "Enable autoClaimStorage of the cluster manually", s)

	_, ok = Suggestion(multierr.Append(upgradeErr, errors.New("timeout")))
	assert.False(t, ok)
}
