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

package gui

import (
	"bytes"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/openGemini/vsanup/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFprintTable(t *testing.T) {
	var buf bytes.Buffer
	FprintTable(&buf, [][]string{
		{"Host", "Disk", "Version"},
		{"esx-01", "naa.01", "3"},
		{"esx-02", "naa.02", "5"},
	}, true)

	out := buf.String()
	assert.Contains(t, out, "Host")
	assert.Contains(t, out, "esx-01")
	assert.Contains(t, out, "naa.02")

	buf.Reset()
	FprintTable(&buf, nil, true)
	assert.Empty(t, buf.String())
}

func TestCheckRequiredFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "upgrade"}
	assert.NoError(t, CheckRequiredFlags(cmd, map[string]string{"host": "vc", "user": "root"}))

	err := CheckRequiredFlags(cmd, map[string]string{"user": "", "host": ""})
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, ErrMissingFlag))
	assert.True(t, errorx.HasTrait(err, utils.ErrTraitPreCheck))
	assert.Contains(t, err.Error(), "--host")
}

func TestSuggestionFromFormat(t *testing.T) {
	prop, s := SuggestionFromFormat("  check %s  ", "credentials")
	assert.Equal(t, utils.ErrPropSuggestion, prop)
	assert.Equal(t, "check credentials", s)
}

func TestIsTerminalWriter(t *testing.T) {
	assert.False(t, IsTerminalWriter(&bytes.Buffer{}))
	assert.False(t, IsTerminalWriter(nil))
}
