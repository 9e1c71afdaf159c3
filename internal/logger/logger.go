package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DefaultPath is the log file written by a run, relative to the working directory.
const DefaultPath = "Result.txt"

// Mode selects how the log file is kept in sync with the in-memory lines.
type Mode int

const (
	// Rewrite replaces the whole file with every stored line on each entry.
	Rewrite Mode = iota
	// Append writes only the new entry to the end of the file.
	Append
)

// ParseMode maps "rewrite" and "append" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rewrite":
		return Rewrite, nil
	case "append":
		return Append, nil
	}
	return 0, fmt.Errorf("unknown log mode %q", s)
}

func (m Mode) String() string {
	if m == Append {
		return "append"
	}
	return "rewrite"
}

var (
	stepStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	bodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

// Options configures a Logger. A zero Options keeps lines in memory only.
type Options struct {
	// Path is the log file. Empty disables file output.
	Path string
	Mode Mode
	// Timestamps prefixes each entry with [2006-01-02 15:04:05].
	Timestamps bool
	// Console, if set, receives a styled copy of every entry.
	Console io.Writer
}

// Logger stores report blocks and error messages in memory and mirrors them to a file.
// It is safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	opts  Options
	lines []string
	err   error
}

// New returns a Logger for opts. An existing file is truncated in both modes,
// so a run never picks up output from an earlier one and both modes leave the
// same file behind.
func New(opts Options) (*Logger, error) {
	l := &Logger{opts: opts, lines: make([]string, 0)}
	if opts.Path == "" {
		return l, nil
	}
	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
	}
	if err := os.WriteFile(opts.Path, nil, 0644); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// Log stores message and writes it out. File errors are kept and reported by Err;
// the message is still stored.
func (l *Logger) Log(message string) {
	entry := message
	if l.opts.Timestamps {
		entry = "[" + time.Now().Format("2006-01-02 15:04:05") + "] " + message
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, entry)

	if l.opts.Console != nil {
		fmt.Fprintln(l.opts.Console, styled(message, entry))
	}
	if l.opts.Path == "" {
		return
	}
	var err error
	switch l.opts.Mode {
	case Append:
		err = appendFile(l.opts.Path, entry+"\n")
	default:
		err = os.WriteFile(l.opts.Path, []byte(joinLines(l.lines)), 0644)
	}
	if err != nil && l.err == nil {
		l.err = fmt.Errorf("logger: %w", err)
	}
}

func styled(message, entry string) string {
	switch {
	case strings.HasPrefix(message, "=== Step"):
		return stepStyle.Render(entry)
	case strings.HasPrefix(message, "tick "):
		return errorStyle.Render(entry)
	}
	return bodyStyle.Render(entry)
}

func appendFile(path, s string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func joinLines(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Lines returns a copy of all stored entries.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Err returns the first file error seen by Log, if any.
func (l *Logger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
