package workflow

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Errors for blacklist operations
var (
	ErrEmptyPattern   = errors.New("pattern cannot be empty")
	ErrInvalidPattern = errors.New("invalid pattern syntax")
	ErrPatternExists  = errors.New("pattern is already blacklisted")
	ErrPatternAbsent  = errors.New("pattern is not blacklisted")
)

const blacklistHeader = `# Workflows listed here are never modified.
# One glob pattern per line, matched against bundle IDs.
# Lines starting with # are comments.
`

// Blacklist is the user-editable list of bundle-identifier patterns
// excluded from modification
type Blacklist struct {
	// Path is the file the blacklist was loaded from
	Path string
	// Patterns are the active glob patterns, in file order
	Patterns []string
}

// LoadBlacklist reads the blacklist file at path. A missing file is an
// empty blacklist, not an error. Blank lines and # comments are ignored.
func LoadBlacklist(path string) (*Blacklist, error) {
	bl := &Blacklist{Path: path}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return bl, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		bl.Patterns = append(bl.Patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return bl, nil
}

// Match reports whether a bundle ID is blacklisted, and by which pattern
func (b *Blacklist) Match(bundleID string) (string, bool) {
	for _, pattern := range b.Patterns {
		matched, err := filepath.Match(pattern, bundleID)
		if err != nil {
			// Malformed patterns never match
			continue
		}
		if matched {
			return pattern, true
		}
	}
	return "", false
}

// ValidatePattern checks that a pattern is usable before it is written
// to the blacklist file
func ValidatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return ErrEmptyPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	return nil
}

// Add appends a pattern to the blacklist file, creating the file with a
// short header if needed
func (b *Blacklist) Add(pattern string) error {
	pattern = strings.TrimSpace(pattern)
	if err := ValidatePattern(pattern); err != nil {
		return err
	}

	for _, p := range b.Patterns {
		if p == pattern {
			return fmt.Errorf("%w: %q", ErrPatternExists, pattern)
		}
	}

	if err := os.MkdirAll(filepath.Dir(b.Path), 0755); err != nil {
		return err
	}

	existing, err := os.ReadFile(b.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	var sb strings.Builder
	if len(existing) == 0 {
		sb.WriteString(blacklistHeader)
	} else {
		sb.Write(existing)
		if !strings.HasSuffix(string(existing), "\n") {
			sb.WriteString("\n")
		}
	}
	sb.WriteString(pattern)
	sb.WriteString("\n")

	if err := os.WriteFile(b.Path, []byte(sb.String()), 0644); err != nil {
		return err
	}

	b.Patterns = append(b.Patterns, pattern)
	return nil
}

// Remove deletes a pattern from the blacklist file, preserving comments
// and unrelated lines
func (b *Blacklist) Remove(pattern string) error {
	pattern = strings.TrimSpace(pattern)

	found := false
	for _, p := range b.Patterns {
		if p == pattern {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrPatternAbsent, pattern)
	}

	data, err := os.ReadFile(b.Path)
	if err != nil {
		return err
	}

	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == pattern {
			continue
		}
		kept = append(kept, line)
	}

	if err := os.WriteFile(b.Path, []byte(strings.Join(kept, "\n")), 0644); err != nil {
		return err
	}

	patterns := b.Patterns[:0]
	for _, p := range b.Patterns {
		if p != pattern {
			patterns = append(patterns, p)
		}
	}
	b.Patterns = patterns
	return nil
}
