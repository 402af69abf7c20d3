package workflow

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/awtools/fixum/internal/awversion"
	"github.com/awtools/fixum/internal/common/logger"
)

const (
	// libraryDirName is the directory the library is bundled under
	libraryDirName = "workflow"
	// libraryFileName is the library's main module
	libraryFileName = "workflow.py"
	// libraryVersionFile holds the bundled library's version
	libraryVersionFile = "version"
)

// fallbackVersion is assumed when a library copy has no version file.
// Copies that old predate the version file entirely.
var fallbackVersion = awversion.MustParse("0.0.1")

// LibraryInfo describes a bundled copy of the helper library
type LibraryInfo struct {
	// Dir is the directory holding the bundled copy
	Dir string
	// Version is the bundled copy's version
	Version awversion.Version
	// VersionMissing is true when no version file was found and the
	// fallback version was assumed
	VersionMissing bool
}

// FindLibrary searches a workflow bundle for an embedded copy of the
// helper library. Candidates are directories named "workflow" containing
// workflow.py; the file must carry the author marker, otherwise it is an
// unrelated module and is ignored. Returns nil when the bundle does not
// embed the library.
func FindLibrary(bundleDir, marker string) (*LibraryInfo, error) {
	var candidates []string

	err := filepath.WalkDir(bundleDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees don't disqualify the bundle
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() && d.Name() == libraryDirName {
			if _, err := os.Stat(filepath.Join(path, libraryFileName)); err == nil {
				candidates = append(candidates, path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, dir := range candidates {
		data, err := os.ReadFile(filepath.Join(dir, libraryFileName))
		if err != nil {
			continue
		}
		if !strings.Contains(string(data), marker) {
			logger.Debug("unrelated %s ignored in %s", libraryFileName, dir)
			continue
		}

		info := &LibraryInfo{Dir: dir}

		versionData, err := os.ReadFile(filepath.Join(dir, libraryVersionFile))
		if err != nil {
			logger.Warn("no version file in %s, assuming a very old version", dir)
			info.Version = fallbackVersion
			info.VersionMissing = true
			return info, nil
		}

		v, err := awversion.Parse(strings.TrimSpace(string(versionData)))
		if err != nil {
			logger.Warn("unreadable version in %s (%v), assuming a very old version", dir, err)
			info.Version = fallbackVersion
			info.VersionMissing = true
			return info, nil
		}

		info.Version = v
		return info, nil
	}

	return nil, nil
}
