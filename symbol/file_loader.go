package symbol

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// FileLoader resolves file references by evaluating the referenced Go source
// file in a fresh yaegi interpreter and extracting the named top-level
// identifier. Each resolution gets its own interpreter, so loaded files never
// see each other.
type FileLoader struct {
	roots []string
}

// FileLoaderOption configures a FileLoader.
type FileLoaderOption func(*FileLoader)

// WithAllowedRoots restricts file references to files under the given
// directories. Symlinks are resolved on both sides before the check. Without
// roots every readable path is accepted.
func WithAllowedRoots(dirs ...string) FileLoaderOption {
	return func(l *FileLoader) {
		for _, dir := range dirs {
			if strings.TrimSpace(dir) == "" {
				continue
			}
			expanded, err := ExpandPath(dir)
			if err != nil {
				continue
			}
			if target, err := filepath.EvalSymlinks(expanded); err == nil {
				expanded = target
			}
			l.roots = append(l.roots, expanded)
		}
	}
}

// NewFileLoader returns a FileLoader.
func NewFileLoader(opts ...FileLoaderOption) *FileLoader {
	l := &FileLoader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Roots returns the allow-listed directories.
func (l *FileLoader) Roots() []string {
	return append([]string{}, l.roots...)
}

// Resolve implements Resolver for file references.
func (l *FileLoader) Resolve(ref string) (any, error) {
	parsed, err := ParseReference(ref)
	if err != nil {
		return nil, err
	}
	if parsed.Mode != ModeFile {
		return nil, resolutionError(ref, "file loader only resolves file references", nil)
	}
	if !token.IsIdentifier(parsed.Attr) {
		return nil, resolutionError(ref, fmt.Sprintf("attribute %q is not a Go identifier", parsed.Attr), nil)
	}
	path, err := ExpandPath(parsed.Path)
	if err != nil {
		return nil, resolutionError(ref, "expand path", err)
	}
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, resolutionError(ref, fmt.Sprintf("file %s does not exist", path), err)
		}
		return nil, resolutionError(ref, fmt.Sprintf("resolve %s", path), err)
	}
	if !l.allowed(target) {
		return nil, resolutionError(ref, fmt.Sprintf("%s is outside the allowed directories", path), nil)
	}
	path = target
	info, err := os.Stat(path)
	if err != nil {
		return nil, resolutionError(ref, fmt.Sprintf("stat %s", path), err)
	}
	if info.IsDir() {
		return nil, resolutionError(ref, fmt.Sprintf("%s is a directory", path), nil)
	}
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, resolutionError(ref, fmt.Sprintf("read %s", path), err)
	}
	if len(strings.TrimSpace(string(code))) == 0 {
		return nil, resolutionError(ref, fmt.Sprintf("%s is empty", path), nil)
	}
	i := interp.New(interp.Options{})
	i.Use(stdlib.Symbols)
	if _, err := i.EvalPath(path); err != nil {
		return nil, resolutionError(ref, fmt.Sprintf("interpret %s", path), err)
	}
	value, err := i.Eval(parsed.Attr)
	if err != nil {
		if pkg := packageName(path, code); pkg != "" && pkg != "main" {
			value, err = i.Eval(pkg + "." + parsed.Attr)
		}
	}
	if err != nil {
		return nil, resolutionError(ref, fmt.Sprintf("%s does not define %s", path, parsed.Attr), err)
	}
	if !value.IsValid() || !value.CanInterface() {
		return nil, resolutionError(ref, fmt.Sprintf("%s does not define %s", path, parsed.Attr), nil)
	}
	return value.Interface(), nil
}

func (l *FileLoader) allowed(path string) bool {
	if len(l.roots) == 0 {
		return true
	}
	for _, root := range l.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}

// ExpandPath expands a leading "~" to the user's home directory and returns
// a cleaned absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") || strings.HasPrefix(trimmed, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		trimmed = filepath.Join(home, trimmed[1:])
	}
	return filepath.Abs(trimmed)
}

func packageName(path string, code []byte) string {
	file, err := parser.ParseFile(token.NewFileSet(), path, code, parser.PackageClauseOnly)
	if err != nil || file.Name == nil {
		return ""
	}
	return file.Name.Name
}
