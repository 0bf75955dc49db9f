// Package notify delivers user-facing success and error messages.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"
)

// Logger reports notifications as structured log lines.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Logger notifier.
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Logger{logger: logger}
}

func (l *Logger) Success(ctx context.Context, msg string) {
	l.logger.InfoContext(ctx, msg, "notification", "success")
}

func (l *Logger) Error(ctx context.Context, msg string) {
	l.logger.ErrorContext(ctx, msg, "notification", "error")
}

// Console prints colored notifications, one per line.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	success func(a ...any) string
	failure func(a ...any) string
}

// NewConsole creates a Console writing to out. Color is disabled when
// noColor is set or out is not a terminal (see color.NoColor).
func NewConsole(out io.Writer, noColor bool) *Console {
	ok := color.New(color.FgHiGreen)
	bad := color.New(color.FgHiRed)
	if noColor {
		ok.DisableColor()
		bad.DisableColor()
	}
	return &Console{
		out:     out,
		success: ok.SprintFunc(),
		failure: bad.SprintFunc(),
	}
}

func (c *Console) Success(_ context.Context, msg string) {
	c.print(c.success("✔"), msg)
}

func (c *Console) Error(_ context.Context, msg string) {
	c.print(c.failure("✘"), msg)
}

func (c *Console) print(mark, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s %s\n", mark, msg)
}

// Message is a captured notification.
type Message struct {
	Success bool
	Text    string
}

// Recorder keeps notifications in memory, for callers that report them
// later, such as tool results.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Success(_ context.Context, msg string) {
	r.add(Message{Success: true, Text: msg})
}

func (r *Recorder) Error(_ context.Context, msg string) {
	r.add(Message{Success: false, Text: msg})
}

func (r *Recorder) add(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
}

// Drain returns and forgets the captured notifications.
func (r *Recorder) Drain() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.messages
	r.messages = nil
	return out
}

// Multi fans a notification out to several notifiers.
type Multi []interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

func (m Multi) Success(ctx context.Context, msg string) {
	for _, n := range m {
		n.Success(ctx, msg)
	}
}

func (m Multi) Error(ctx context.Context, msg string) {
	for _, n := range m {
		n.Error(ctx, msg)
	}
}
