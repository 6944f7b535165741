// Package config loads metadspy CLI settings.
//
// Settings are layered: built-in defaults, then .metadspy.yaml in the project
// directory, then .env, then METADSPY_* environment variables. Command-line
// flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/metadspy/internal/logging"
)

const (
	// FileName is the settings file looked up in the project directory.
	FileName = ".metadspy.yaml"
	// EnvFileName is the dotenv file looked up in the project directory.
	EnvFileName = ".env"

	EnvLogLevel       = "METADSPY_LOG_LEVEL"
	EnvLogFormat      = "METADSPY_LOG_FORMAT"
	EnvLogFile        = "METADSPY_LOG_FILE"
	EnvAllowDirs      = "METADSPY_ALLOW_DIRS"
	EnvFileReferences = "METADSPY_FILE_REFS"
	EnvCache          = "METADSPY_CACHE"
)

// LogSettings configures the CLI logger.
type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File appends log lines to .metadspy/logs/metadspy.log as well.
	File bool `yaml:"file"`
}

// SymbolSettings configures reference resolution.
type SymbolSettings struct {
	FileReferences bool     `yaml:"file_references"`
	AllowDirs      []string `yaml:"allow_dirs,omitempty"`
	Cache          bool     `yaml:"cache"`
}

// Settings models .metadspy.yaml.
type Settings struct {
	Log     LogSettings    `yaml:"log"`
	Symbols SymbolSettings `yaml:"symbols"`

	// ProjectDir is the directory settings were loaded from.
	ProjectDir string `yaml:"-"`
	// Source is the settings file that was read, empty when none existed.
	Source string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Log: LogSettings{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Symbols: SymbolSettings{
			FileReferences: true,
			Cache:          true,
		},
	}
}

// Load reads settings for projectDir. An explicit path replaces the default
// projectDir/.metadspy.yaml and must exist.
func Load(projectDir, path string) (Settings, error) {
	s := Default()
	s.ProjectDir = projectDir

	explicit := path != ""
	if !explicit {
		path = filepath.Join(projectDir, FileName)
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, &s); err != nil {
			return Settings{}, fmt.Errorf("config: %s: %w", path, err)
		}
		s.Source = path
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Settings{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	dotenv, err := readDotenv(filepath.Join(projectDir, EnvFileName))
	if err != nil {
		return Settings{}, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := s.applyEnv(lookup); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks settings values.
func (s Settings) Validate() error {
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(s.Log.Format)) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("config: log.format: must be %q or %q, got %q", logging.FormatConsole, logging.FormatJSON, s.Log.Format)
	}
	for i, dir := range s.Symbols.AllowDirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("config: symbols.allow_dirs[%d]: empty directory", i)
		}
	}
	return nil
}

// AllowDirs returns the allow-listed directories resolved against the
// project directory.
func (s Settings) AllowDirs() []string {
	dirs := make([]string, 0, len(s.Symbols.AllowDirs))
	for _, dir := range s.Symbols.AllowDirs {
		dirs = append(dirs, resolvePath(s.ProjectDir, dir))
	}
	return dirs
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok {
		s.Log.Level = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogFormat); ok {
		s.Log.Format = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvAllowDirs); ok {
		s.Symbols.AllowDirs = splitList(v)
	}
	for key, dst := range map[string]*bool{
		EnvLogFile:        &s.Log.File,
		EnvFileReferences: &s.Symbols.FileReferences,
		EnvCache:          &s.Symbols.Cache,
	} {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		*dst = b
	}
	return nil
}

func decode(data []byte, s *Settings) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	return dec.Decode(s)
}

func readDotenv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return values, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range filepath.SplitList(value) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func resolvePath(base, candidate string) string {
	if candidate == "" || filepath.IsAbs(candidate) || strings.HasPrefix(candidate, "~") {
		return candidate
	}
	if base == "" {
		return filepath.Clean(candidate)
	}
	return filepath.Join(base, candidate)
}
