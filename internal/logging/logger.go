package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// Dir is the per-project directory holding metadspy state.
	Dir = ".metadspy"
	// FileName is the append-only log file under Dir/logs.
	FileName = "metadspy.log"

	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options controls logger construction.
type Options struct {
	Level  string
	Format string
	// ProjectDir enables the log file under ProjectDir/.metadspy/logs when set.
	ProjectDir string
	Out        io.Writer
}

// Logger wraps a zerolog.Logger together with the log file it may own.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New builds a logger writing to opts.Out (stderr by default) and, when a
// project directory is given, to the project log file.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	var w io.Writer
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatConsole:
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: !isTerminal(out)}
	case FormatJSON:
		w = out
	default:
		return nil, fmt.Errorf("logging: unknown format %q", opts.Format)
	}

	l := &Logger{}
	if opts.ProjectDir != "" {
		f, err := openFile(opts.ProjectDir)
		if err != nil {
			return nil, err
		}
		l.file = f
		w = zerolog.MultiLevelWriter(w, f)
	}
	l.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return l, nil
}

// Path returns the log file location for a project directory.
func Path(projectDir string) string {
	return filepath.Join(projectDir, Dir, "logs", FileName)
}

// File returns the project log file, nil when logging to Out only.
func (l *Logger) File() *os.File {
	if l == nil {
		return nil
	}
	return l.file
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// ParseLevel maps a level name to a zerolog level. Empty means info.
func ParseLevel(name string) (zerolog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(trimmed)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}

func openFile(projectDir string) (*os.File, error) {
	path := Path(projectDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return f, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
