package workflow

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/awtools/fixum/internal/common/config"
	"github.com/awtools/fixum/internal/common/logger"
)

// ErrWorkflowDirNotFound is returned when no candidate location holds an
// installed workflow directory
var ErrWorkflowDirNotFound = errors.New("could not find your workflow directory")

// prefsBundleName is Alfred's preferences bundle, which contains the
// workflows directory
const prefsBundleName = "Alfred.alfredpreferences"

// alfred3PrefsPlist holds the syncfolder setting for Alfred 3
const alfred3PrefsPlist = "Library/Preferences/com.runningwithcrayons.Alfred-Preferences-3.plist"

// FindWorkflowDir locates the installed workflow directory. Candidates
// are tried in order:
//
//  1. the explicit override (flag or config), used as-is
//  2. $alfred_preferences, set by Alfred for processes it launches
//  3. the syncfolder from Alfred's preferences plist
//  4. the default Alfred support directories
//  5. the parent of the working directory, when $alfred_version marks an
//     Alfred-hosted run
//
// The syncfolder may be set but unused, so later candidates are still
// tried when it holds no workflows.
func FindWorkflowDir(override string) (string, error) {
	if override != "" {
		path, err := config.ExpandHome(override)
		if err != nil {
			return "", err
		}
		if isDir(path) {
			return path, nil
		}
		return "", ErrWorkflowDirNotFound
	}

	var candidates []string

	// Set by Alfred when the workflow runs inside it; points at the
	// preferences bundle
	if prefs := os.Getenv("alfred_preferences"); prefs != "" {
		candidates = append(candidates, filepath.Join(prefs, "workflows"))
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if syncdir := readSyncFolder(home); syncdir != "" {
		expanded, err := config.ExpandHome(syncdir)
		if err == nil {
			candidates = append(candidates, filepath.Join(expanded, prefsBundleName, "workflows"))
		}
	}

	// Default locations, newest Alfred first
	for _, support := range []string{
		"Library/Application Support/Alfred",
		"Library/Application Support/Alfred 3",
	} {
		candidates = append(candidates, filepath.Join(home, support, prefsBundleName, "workflows"))
	}

	// Workflows run with their own bundle directory as the working path,
	// so the parent is the workflows directory
	if os.Getenv("alfred_version") != "" {
		if cwd, err := os.Getwd(); err == nil {
			candidates = append(candidates, filepath.Dir(cwd))
		}
	} else {
		logger.Debug("not running from inside Alfred")
	}

	for _, path := range candidates {
		logger.Debug("looking for workflows in %s ...", path)
		if isDir(path) {
			return path, nil
		}
	}

	return "", ErrWorkflowDirNotFound
}

// readSyncFolder reads the syncfolder setting from Alfred's preferences
// plist, returning "" when unset or unreadable
func readSyncFolder(home string) string {
	path := filepath.Join(home, alfred3PrefsPlist)
	syncdir, err := ReadSyncFolder(path)
	if err != nil {
		logger.Debug("no sync folder setting (%v)", err)
		return ""
	}
	return syncdir
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
