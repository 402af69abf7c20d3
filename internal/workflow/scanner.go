package workflow

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/awtools/fixum/internal/common/logger"
)

// Workflow represents one installed workflow bundle embedding the
// helper library
type Workflow struct {
	// Name is the workflow's display name from info.plist
	Name string
	// BundleID uniquely identifies the workflow
	BundleID string
	// Dir is the bundle directory
	Dir string
	// Library describes the embedded library copy
	Library *LibraryInfo
}

// ScanResult contains the results of scanning a workflow directory
type ScanResult struct {
	Root      string
	Workflows []Workflow
	Symlinks  []string
	Errors    []ScanError
}

// ScanError represents an error encountered during scanning
type ScanError struct {
	Path    string
	Message string
}

// Scan enumerates the workflow root and returns every bundle embedding
// the helper library. Symbolic links are never followed, non-directories
// are ignored, and bundles without a bundle ID or library copy are
// skipped. Per-bundle read errors are collected, not fatal.
func Scan(root, marker string) (*ScanResult, error) {
	result := &ScanResult{
		Root:      root,
		Workflows: []Workflow{},
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())

		// entry.Type() does not follow links, so symlinked bundles are
		// reported rather than traversed
		if entry.Type()&os.ModeSymlink != 0 {
			logger.Info("ignoring symlink: %s", entry.Name())
			result.Symlinks = append(result.Symlinks, path)
			continue
		}

		if !entry.IsDir() {
			logger.Debug("ignoring non-directory: %s", entry.Name())
			continue
		}

		wf, err := inspectBundle(path, marker)
		if err != nil {
			logger.Error("could not read workflow: %s: %v", entry.Name(), err)
			result.Errors = append(result.Errors, ScanError{
				Path:    path,
				Message: err.Error(),
			})
			continue
		}
		if wf == nil {
			logger.Debug("not a library workflow: %s", entry.Name())
			continue
		}

		result.Workflows = append(result.Workflows, *wf)
	}

	// Sort for consistent output
	sort.Slice(result.Workflows, func(i, j int) bool {
		return result.Workflows[i].Name < result.Workflows[j].Name
	})

	return result, nil
}

// inspectBundle reads one bundle directory. Returns nil when the bundle
// is not a workflow embedding the library.
func inspectBundle(dir, marker string) (*Workflow, error) {
	info, err := ReadInfoPlist(filepath.Join(dir, InfoPlistName))
	if err != nil {
		if err == ErrNoInfoPlist {
			return nil, nil
		}
		return nil, err
	}

	// Workflows without a bundle ID cannot embed the library, which
	// requires one
	if info.BundleID == "" {
		return nil, nil
	}

	lib, err := FindLibrary(dir, marker)
	if err != nil {
		return nil, err
	}
	if lib == nil {
		return nil, nil
	}

	return &Workflow{
		Name:     info.Name,
		BundleID: info.BundleID,
		Dir:      dir,
		Library:  lib,
	}, nil
}
