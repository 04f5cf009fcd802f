// Package security validates filesystem paths before the engine touches
// them: scan roots must be real directories, and rename destinations must
// stay inside an allowed base without traversal or symlink tricks.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultProtectedPaths are locations the executor refuses to write into
// regardless of configuration.
var DefaultProtectedPaths = []string{
	"/", "/usr", "/etc", "/bin", "/sbin", "/boot",
	"/sys", "/proc", "/dev", "/run",
	"/lib", "/lib32", "/lib64",
	"/var", "/opt", "/srv", "/root",
	"C:\\Windows", "C:\\Program Files", "C:\\Program Files (x86)",
}

// ValidateScanPath checks that path is safe to scan: absolute after
// cleaning, free of traversal sequences and NUL bytes, not a symlink, and
// an existing directory. Returns the resolved path.
func ValidateScanPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("path contains traversal sequence: %s", path)
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("path contains null byte")
	}

	clean := filepath.Clean(path)

	info, err := os.Lstat(clean)
	if err != nil {
		return "", fmt.Errorf("path does not exist: %s: %w", clean, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return "", fmt.Errorf("path is a symlink: %s", clean)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", clean)
	}

	real, err := filepath.EvalSymlinks(clean)
	if err != nil {
		real = clean
	}

	return real, nil
}

// ValidateWithinBase resolves path and verifies it does not escape baseDir.
// The destination may not exist yet; in that case the nearest existing
// ancestor is resolved and the remaining components are checked one by one.
// Returns the canonical destination path.
func ValidateWithinBase(path, baseDir string) (string, error) {
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("path contains traversal sequence: %s", path)
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("path contains null byte")
	}

	if info, err := os.Lstat(baseDir); err != nil {
		return "", fmt.Errorf("base directory inaccessible: %w", err)
	} else if info.Mode()&os.ModeSymlink != 0 {
		return "", fmt.Errorf("base directory is a symlink: %s", baseDir)
	}

	realBase, err := filepath.EvalSymlinks(filepath.Clean(baseDir))
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	canonical, err := canonicalize(filepath.Clean(path))
	if err != nil {
		return "", err
	}

	if !isWithin(canonical, realBase) {
		return "", fmt.Errorf("path escapes base directory %s: %s", realBase, path)
	}

	return canonical, nil
}

// canonicalize resolves path by walking up to the nearest existing
// ancestor, resolving that, and re-appending the missing components.
// Symlinks anywhere on the existing portion are rejected.
func canonicalize(path string) (string, error) {
	var pending []string
	current := path

	for {
		info, err := os.Lstat(current)
		if err == nil {
			if info.Mode()&os.ModeSymlink != 0 {
				return "", fmt.Errorf("path ancestor is a symlink: %s", current)
			}
			break
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing ancestor for path: %s", path)
		}
		pending = append(pending, filepath.Base(current))
		current = parent
	}

	resolved, err := filepath.EvalSymlinks(current)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", current, err)
	}

	for i := len(pending) - 1; i >= 0; i-- {
		comp := pending[i]
		if comp == ".." || comp == "." || strings.ContainsAny(comp, `/\`) {
			return "", fmt.Errorf("invalid path component: %q", comp)
		}
		resolved = filepath.Join(resolved, comp)
	}

	return resolved, nil
}

func isWithin(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}

// Validator gates rename destinations. AllowedRoots restricts writes to
// configured library directories; an empty list only enforces the
// protected-path and traversal checks.
type Validator struct {
	AllowedRoots   []string
	ProtectedPaths []string
}

// NewValidator returns a validator for the given roots with the default
// protected-path list.
func NewValidator(allowedRoots []string) *Validator {
	return &Validator{
		AllowedRoots:   allowedRoots,
		ProtectedPaths: DefaultProtectedPaths,
	}
}

// CheckDestination reports whether dest is a safe rename target.
func (v *Validator) CheckDestination(dest string) error {
	if dest == "" {
		return fmt.Errorf("destination is empty")
	}
	if strings.Contains(dest, "..") {
		return fmt.Errorf("destination contains traversal sequence")
	}
	if strings.ContainsRune(dest, 0) {
		return fmt.Errorf("destination contains null byte")
	}

	clean := filepath.Clean(dest)
	if !filepath.IsAbs(clean) {
		return fmt.Errorf("destination must be absolute: %s", dest)
	}

	dir := filepath.Dir(clean)
	for _, p := range v.ProtectedPaths {
		if dir == p || clean == p {
			return fmt.Errorf("destination is a protected path: %s", clean)
		}
	}

	if len(v.AllowedRoots) == 0 {
		return nil
	}

	for _, root := range v.AllowedRoots {
		if _, err := ValidateWithinBase(clean, root); err == nil {
			return nil
		}
	}

	return fmt.Errorf("destination %s is not within any allowed root", dest)
}
