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

package gui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/joomcode/errorx"
	"github.com/openGemini/vsanup/pkg/utils"
	"github.com/spf13/cobra"
)

var (
	errNS = errorx.NewNamespace("gui")
	// ErrMissingFlag means a required flag was neither given nor found in the profile config.
	ErrMissingFlag = errNS.NewType("missing_flag", utils.ErrTraitPreCheck)
)

// SuggestionFromString creates a suggestion from string.
// Usage: SomeErrorX.WithProperty(SuggestionFromString(..))
func SuggestionFromString(str string) (errorx.Property, string) {
	return utils.ErrPropSuggestion, strings.TrimSpace(str)
}

// SuggestionFromFormat creates a suggestion from a format.
// Usage: SomeErrorX.WithProperty(SuggestionFromFormat(..))
func SuggestionFromFormat(format string, a ...any) (errorx.Property, string) {
	s := fmt.Sprintf(format, a...)
	return SuggestionFromString(s)
}

// CheckRequiredFlags returns an error naming the first flag whose value is empty.
func CheckRequiredFlags(cmd *cobra.Command, values map[string]string) error {
	for _, name := range sortedKeys(values) {
		if values[name] != "" {
			continue
		}
		return ErrMissingFlag.
			New("Flag --%s is required", name).
			WithProperty(SuggestionFromString(cmd.UsageString()))
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ColorErrorMsg prints err and its suggestion, if any, the way the root command reports failures.
func ColorErrorMsg(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err.Error()))
	if s, ok := utils.Suggestion(err); ok {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, s)
	}
}

// BeautifyCobraUsageAndHelp beautifies cobra usages and help.
func BeautifyCobraUsageAndHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("ColorCommand", func() string {
		return "\033[1;36m"
	})
	cobra.AddTemplateFunc("ColorReset", func() string {
		return "\033[0m"
	})

	s := `Usage:{{if .Runnable}}
  {{ColorCommand}}{{.UseLine}}{{ColorReset}}{{end}}{{if .HasAvailableSubCommands}}
  {{ColorCommand}}{{.CommandPath}} [command]{{ColorReset}}{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{ColorCommand}}{{.NameAndAliases}}{{ColorReset}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{ColorCommand}}{{.CommandPath}} help [command]{{ColorReset}}" for more information about a command.{{end}}
`
	rootCmd.SetUsageTemplate(s)
}
