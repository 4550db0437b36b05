// Copyright 2025 walteh LLC
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

// Package log prints transfer results for people while mirroring every line
// to a zerolog logger.
package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	kindWidth   = 10 // Width for operation kind
	statusWidth = 15 // Width for status text
)

// 🎯 FileOperation represents a file operation for logging
type FileOperation struct {
	Path       string // Path relative to the transfer roots
	Kind       string // Operation kind (copy/plan)
	Status     string // Operation status
	IsNew      bool   // Destination did not exist
	IsReplaced bool   // Destination existed and was overwritten
	IsConflict bool   // Destination exists and blocks the transfer
}

// 📦 JobOperation represents a transfer job for logging
type JobOperation struct {
	Name        string // Job name
	Source      string // Source root
	Destination string // Destination root
	DryRun      bool   // Whether files are only planned
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentJob *JobOperation
	operations []FileOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

type contextKey struct{}

// 🎯 FromContext returns the console logger stored in ctx. Without one, the
// returned logger discards everything.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return l
	}
	return New(io.Discard, zerolog.Nop())
}

// NewContext returns a copy of ctx carrying l.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsConflict:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsReplaced:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case op.IsNew:
		symbol = '✓'
		symbolColor = color.FgGreen
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	var kindColor color.Attribute
	switch op.Kind {
	case "plan":
		kindColor = color.FgYellow
	default:
		kindColor = color.FgBlue
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("kind", op.Kind).
		Str("status", op.Status).
		Bool("is_new", op.IsNew).
		Bool("is_replaced", op.IsReplaced).
		Bool("is_conflict", op.IsConflict).
		Msg("file operation")
}

// 📝 StartJob starts a new transfer job
func (l *Logger) StartJob(ctx context.Context, op JobOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentJob = &op
	l.operations = nil

	verb := "transferring"
	if op.DryRun {
		verb = "planning"
	}
	fmt.Fprintf(l.console, "[%s %s]\n", verb,
		color.New(color.FgCyan).Sprint(op.Destination))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Source))

	l.zlog.Info().
		Str("job", op.Name).
		Str("source", op.Source).
		Str("destination", op.Destination).
		Bool("dry_run", op.DryRun).
		Msg("starting transfer")
}

// 📝 EndJob ends the current transfer job
func (l *Logger) EndJob(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentJob == nil {
		return
	}

	l.zlog.Info().
		Str("job", l.currentJob.Name).
		Int("files", len(l.operations)).
		Msg("transfer complete")

	l.currentJob = nil
	l.operations = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("filetransfer")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// notice is a one-line status message printed after an icon.
type notice struct {
	icon  string
	color color.Attribute
	level zerolog.Level
}

var (
	infoNotice    = notice{icon: "ℹ️ ", color: color.FgCyan, level: zerolog.InfoLevel}
	warningNotice = notice{icon: "⚠️ ", color: color.FgYellow, level: zerolog.WarnLevel}
	errorNotice   = notice{icon: "❌", color: color.FgRed, level: zerolog.ErrorLevel}
	successNotice = notice{icon: "✅", color: color.FgGreen, level: zerolog.InfoLevel}
)

func (l *Logger) notify(n notice, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n", n.icon, color.New(n.color).Sprint(msg))
	l.zlog.WithLevel(n.level).Msg(msg)
}

func (l *Logger) Info(msg string)    { l.notify(infoNotice, msg) }
func (l *Logger) Warning(msg string) { l.notify(warningNotice, msg) }
func (l *Logger) Error(msg string)   { l.notify(errorNotice, msg) }
func (l *Logger) Success(msg string) { l.notify(successNotice, msg) }

func (l *Logger) Infof(format string, args ...any) {
	l.notify(infoNotice, fmt.Sprintf(format, args...))
}

func (l *Logger) Warningf(format string, args ...any) {
	l.notify(warningNotice, fmt.Sprintf(format, args...))
}

// 📝 Errorf reports a failed job; the error itself is still returned to the caller.
func (l *Logger) Errorf(format string, args ...any) {
	l.notify(errorNotice, fmt.Sprintf(format, args...))
}

func (l *Logger) Successf(format string, args ...any) {
	l.notify(successNotice, fmt.Sprintf(format, args...))
}
