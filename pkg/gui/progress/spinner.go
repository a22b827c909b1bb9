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

// ref: https://github.com/charmbracelet/bubbletea/blob/master/examples/spinners/main.go

package progress

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Render
	greenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render
)

// FinishedMsg stops the spinner and marks the step Done
type FinishedMsg struct{ Finished bool }

// ErrMsg stops the spinner and marks the step failed
type ErrMsg struct{ Err error }

// PercentMsg updates the completion percentage reported by the remote task
type PercentMsg int

// NewSpinnerProgram returns a program rendering "<prefix> <spinner> Doing..." to out.
// Keyboard input is not read, the step can only end by FinishedMsg or ErrMsg.
func NewSpinnerProgram(prefix string, out io.Writer) *tea.Program {
	m := spinnerModel{
		prefix:  prefix,
		percent: -1,
	}
	m.resetSpinner()
	return tea.NewProgram(&m, tea.WithInput(nil), tea.WithOutput(out))
}

type spinnerModel struct {
	spinner spinner.Model

	finished bool
	prefix   string
	percent  int
	err      error
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrMsg:
		m.err = msg.Err
		return m, tea.Quit
	case FinishedMsg:
		m.finished = msg.Finished
		return m, tea.Quit
	case PercentMsg:
		m.percent = int(msg)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.err != nil {
			return m, tea.Quit
		}
		return m, cmd
	default:
		return m, nil
	}
}

func (m *spinnerModel) resetSpinner() {
	m.spinner = spinner.New()
	m.spinner.Style = spinnerStyle
	m.spinner.Spinner = spinner.Dot
}

func (m *spinnerModel) View() (s string) {
	switch {
	case m.err != nil:
		s += fmt.Sprintf("%s %s %s\n", m.prefix, "...", errorStyle(m.err.Error()))
	case m.finished:
		s += fmt.Sprintf("%s %s %s\n", m.prefix, "...", greenStyle("Done"))
	case m.percent >= 0:
		s += fmt.Sprintf("%s %s %s %d%%\n", m.prefix, m.spinner.View(), textStyle("Doing..."), m.percent)
	default:
		s += fmt.Sprintf("%s %s %s\n", m.prefix, m.spinner.View(), textStyle("Doing..."))
	}
	return
}
