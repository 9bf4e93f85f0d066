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

package log

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Column layout of a file line
const (
	fileIndent  = 4
	nameWidth   = 35
	kindWidth   = 6
	statusWidth = 15
)

// 🎯 FileOperation is the outcome of running the rules over one file
type FileOperation struct {
	Path         string // File path
	Kind         string // File kind (tree/text)
	Status       string // Operation status
	Rules        int    // Number of rules that applied to the file
	Replacements int    // Number of replacements made
	IsModified   bool   // Whether the rules changed the content
	IsWritten    bool   // Whether the change was written back
	IsSkipped    bool   // Whether the file was skipped
	IsFailed     bool   // Whether the file failed
}

// mark picks the leading symbol of a file line
func (op FileOperation) mark() (string, *color.Color) {
	switch {
	case op.IsFailed:
		return "✗", color.New(color.FgRed)
	case op.IsSkipped:
		return "-", color.New(color.FgYellow)
	case op.IsModified && op.IsWritten:
		return "✓", color.New(color.FgGreen)
	case op.IsModified:
		return "⟳", color.New(color.FgBlue)
	default:
		return "•", color.New(color.FgCyan)
	}
}

// 📦 RunOperation describes one run over a set of files
type RunOperation struct {
	Config string // Config file path
	Files  int    // Number of files selected
	Write  bool   // Whether changes are written back
}

func (op RunOperation) mode() string {
	if op.Write {
		return "write"
	}
	return "dry run"
}

// summary totals the file lines of one run
type summary struct {
	files, modified, failed, replacements int
}

func summarize(ops []FileOperation) summary {
	s := summary{files: len(ops)}
	for _, op := range ops {
		if op.IsModified {
			s.modified++
		}
		if op.IsFailed {
			s.failed++
		}
		s.replacements += op.Replacements
	}
	return s
}

func (s summary) String() string {
	return fmt.Sprintf("%d files, %d modified, %d failed, %d replacements", s.files, s.modified, s.failed, s.replacements)
}

// 🎯 Logger writes human readable lines to the console and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer

	mu  sync.Mutex
	run *RunOperation
	ops []FileOperation
}

// 🏭 New creates a logger printing to console; structured output goes to stderr
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)

	return &Logger{zlog: zlog, console: console}
}

type contextKey struct{}

// 🎯 FromContext returns the logger stored by NewContext and panics without one
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(contextKey{}).(*Logger); ok {
		return l
	}
	panic("mdreplace: no logger in context")
}

// NewContext stores l in ctx
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}

// 📝 formatFileOperation renders one aligned file line
func (l *Logger) formatFileOperation(op FileOperation) string {
	symbol, symbolColor := op.mark()

	kindColor := color.New(color.FgBlue)
	if op.Kind == "tree" {
		kindColor = color.New(color.FgMagenta)
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", fileIndent))
	sb.WriteString(symbolColor.Sprint(symbol))
	sb.WriteByte(' ')
	sb.WriteString(pad(op.Path, nameWidth))
	sb.WriteByte(' ')
	sb.WriteString(kindColor.Sprint(pad(op.Kind, kindWidth)))
	sb.WriteByte(' ')
	sb.WriteString(pad(op.Status, statusWidth))

	if op.Replacements > 0 {
		sb.WriteString(color.New(color.Faint).Sprintf("%d replaced", op.Replacements))
	}
	return sb.String()
}

// 📝 LogFileOperation prints a file line and records it for the run summary
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ops = append(l.ops, op)
	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("kind", op.Kind).
		Str("status", op.Status).
		Int("rules", op.Rules).
		Int("replacements", op.Replacements).
		Bool("modified", op.IsModified).
		Bool("written", op.IsWritten).
		Bool("skipped", op.IsSkipped).
		Bool("failed", op.IsFailed).
		Msg("file processed")
}

// 📝 StartRun prints the run banner and resets the recorded file lines
func (l *Logger) StartRun(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.run = &op
	l.ops = nil

	fmt.Fprintln(l.console, strings.Join([]string{
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Config),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d files (%s)", op.Files, op.mode()),
	}, " "))

	l.zlog.Info().Str("config", op.Config).Int("files", op.Files).Bool("write", op.Write).Msg("run started")
}

// 📝 EndRun prints the summary of the current run; it does nothing outside a run
func (l *Logger) EndRun(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.run == nil {
		return
	}

	s := summarize(l.ops)
	fmt.Fprintf(l.console, "\n%s\n", color.New(color.Faint).Sprint(s.String()))

	l.zlog.Info().
		Str("config", l.run.Config).
		Int("files", s.files).
		Int("modified", s.modified).
		Int("failed", s.failed).
		Int("replacements", s.replacements).
		Msg("run finished")

	l.run = nil
	l.ops = nil
}

// diffStyles colors unified diff lines by prefix; the first match wins
var diffStyles = []struct {
	prefix string
	style  *color.Color
}{
	{"+++", color.New(color.Bold)},
	{"---", color.New(color.Bold)},
	{"@@", color.New(color.FgCyan)},
	{"+", color.New(color.FgGreen)},
	{"-", color.New(color.FgRed)},
}

// 📝 Diff prints a unified diff with added and removed lines colored
func (l *Logger) Diff(diff string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	scanner := bufio.NewScanner(strings.NewReader(diff))
	for scanner.Scan() {
		fmt.Fprintln(l.console, styleDiffLine(scanner.Text()))
	}
}

func styleDiffLine(line string) string {
	for _, s := range diffStyles {
		if strings.HasPrefix(line, s.prefix) {
			return s.style.Sprint(line)
		}
	}
	return line
}

// LogNewline prints an empty line
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header prints the tool name followed by msg
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	name := color.New(color.Bold, color.FgCyan).Sprint("mdreplace")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// notice is a one line console message with an icon and a zerolog level
type notice struct {
	icon  string
	style *color.Color
	level zerolog.Level
}

var (
	noticeInfo    = notice{"ℹ️ ", color.New(color.FgCyan), zerolog.InfoLevel}
	noticeWarning = notice{"⚠️ ", color.New(color.FgYellow), zerolog.WarnLevel}
	noticeError   = notice{"❌", color.New(color.FgRed), zerolog.ErrorLevel}
	noticeSuccess = notice{"✅", color.New(color.FgGreen), zerolog.InfoLevel}
)

func (l *Logger) notify(n notice, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s %s\n", n.icon, n.style.Sprint(msg))
	l.zlog.WithLevel(n.level).Msg(msg)
}

// Info prints an informational line
func (l *Logger) Info(msg string) { l.notify(noticeInfo, msg) }

// Warning prints a warning line
func (l *Logger) Warning(msg string) { l.notify(noticeWarning, msg) }

// Error prints an error line
func (l *Logger) Error(msg string) { l.notify(noticeError, msg) }

// ✅ Success prints a success line
func (l *Logger) Success(msg string) { l.notify(noticeSuccess, msg) }

// Infof is Info with formatting
func (l *Logger) Infof(format string, args ...any) {
	l.notify(noticeInfo, fmt.Sprintf(format, args...))
}

// Warningf is Warning with formatting
func (l *Logger) Warningf(format string, args ...any) {
	l.notify(noticeWarning, fmt.Sprintf(format, args...))
}

// Errorf is Error with formatting
func (l *Logger) Errorf(format string, args ...any) {
	l.notify(noticeError, fmt.Sprintf(format, args...))
}

// Successf is Success with formatting
func (l *Logger) Successf(format string, args ...any) {
	l.notify(noticeSuccess, fmt.Sprintf(format, args...))
}
