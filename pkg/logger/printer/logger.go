// Copyright 2021 PingCAP, Inc.
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

package logprinter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

// ContextKeyLogger is the key used for logger stored in context
const ContextKeyLogger contextKey = "logger"

// Logger is a set of fuctions writing output to custom writters, but still
// using the global zap logger as our default config does not writes everything
// to a memory buffer.
type Logger struct {
	zap    *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewLogger creates a Logger with default settings
func NewLogger(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &Logger{
		zap:    l,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetStdout redirect stdout to a custom writer
func (l *Logger) SetStdout(w io.Writer) {
	l.stdout = w
}

// SetStderr redirect stderr to a custom writer
func (l *Logger) SetStderr(w io.Writer) {
	l.stderr = w
}

// Stdout returns the writer user facing output goes to
func (l *Logger) Stdout() io.Writer {
	return l.stdout
}

// Zap returns the underlying structured logger
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

// Debugf output the debug message to the log file only
func (l *Logger) Debugf(format string, args ...any) {
	l.zap.Debug(fmt.Sprintf(format, args...))
}

// Infof output the log message to console
func (l *Logger) Infof(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.zap.Info(msg)
	fmt.Fprintln(l.stdout, msg)
}

// Warnf output the warning message to console
func (l *Logger) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.zap.Warn(msg)
	fmt.Fprintln(l.stderr, color.YellowString(msg))
}

// Errorf output the error message to console
func (l *Logger) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.zap.Error(msg)
	fmt.Fprintln(l.stderr, color.RedString(msg))
}

// FromContext returns the logger stored in ctx, or a logger that only prints
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ContextKeyLogger).(*Logger); ok && l != nil {
		return l
	}
	return NewLogger(zap.L())
}

// NewFileLogger builds the zap logger writing to path at the given level
func NewFileLogger(level, path string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid log level %q", level)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.Sampling = nil
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	l, err := cfg.Build()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return l, nil
}
