package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"wapi.app/internal/ports"
)

const (
	colorGreen  = "\033[92m"
	colorYellow = "\033[93m"
	colorRed    = "\033[91m"
	colorBlue   = "\033[94m"
	colorReset  = "\033[0m"

	consoleTimestampFormat = "2006-01-02 15:04:05.000000"
)

type consoleLevel struct {
	color  string
	prefix string
	level  slog.Level
}

var (
	consoleDebug = consoleLevel{color: colorBlue, prefix: "Debug: ", level: slog.LevelDebug}
	consoleOK    = consoleLevel{color: colorGreen, prefix: "", level: slog.LevelInfo}
	consoleWarn  = consoleLevel{color: colorYellow, prefix: "Warning: ", level: slog.LevelWarn}
	consoleError = consoleLevel{color: colorRed, prefix: "Error: ", level: slog.LevelError}
)

// ConsoleLoggerAdapter writes one colored, timestamped line per entry:
// green for OK, yellow with "Warning: " and red with "Error: ".
// Fields follow the message as key=value pairs.
type ConsoleLoggerAdapter struct {
	out      io.Writer
	minLevel slog.Level
	now      func() time.Time
	mutex    sync.Mutex
}

// ConsoleLoggerOption configures a ConsoleLoggerAdapter
type ConsoleLoggerOption func(*ConsoleLoggerAdapter)

// WithConsoleOutput redirects output, stdout by default
func WithConsoleOutput(out io.Writer) ConsoleLoggerOption {
	return func(c *ConsoleLoggerAdapter) {
		c.out = out
	}
}

// WithConsoleLevel drops entries below the given level
func WithConsoleLevel(level slog.Level) ConsoleLoggerOption {
	return func(c *ConsoleLoggerAdapter) {
		c.minLevel = level
	}
}

// WithConsoleClock overrides the timestamp source
func WithConsoleClock(now func() time.Time) ConsoleLoggerOption {
	return func(c *ConsoleLoggerAdapter) {
		c.now = now
	}
}

func NewConsoleLoggerAdapter(opts ...ConsoleLoggerOption) *ConsoleLoggerAdapter {
	c := &ConsoleLoggerAdapter{
		out:      os.Stdout,
		minLevel: slog.LevelInfo,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ConsoleLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	c.write(consoleDebug, msg, fields)
}

func (c *ConsoleLoggerAdapter) Info(msg string, fields ...ports.Field) {
	c.write(consoleOK, msg, fields)
}

func (c *ConsoleLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	c.write(consoleWarn, msg, fields)
}

func (c *ConsoleLoggerAdapter) Error(msg string, fields ...ports.Field) {
	c.write(consoleError, msg, fields)
}

func (c *ConsoleLoggerAdapter) write(lvl consoleLevel, msg string, fields []ports.Field) {
	if lvl.level < c.minLevel {
		return
	}

	var b strings.Builder
	b.WriteString(lvl.color)
	b.WriteString(c.now().Format(consoleTimestampFormat))
	b.WriteByte(' ')
	b.WriteString(lvl.prefix)
	b.WriteString(msg)
	for _, field := range fields {
		fmt.Fprintf(&b, " %s=%v", field.Key, field.Value)
	}
	b.WriteString(colorReset)
	b.WriteByte('\n')

	c.mutex.Lock()
	defer c.mutex.Unlock()
	_, _ = io.WriteString(c.out, b.String())
}
