// Package payload loads the known-good copy of the Alfred-Workflow library
// that outdated bundled copies are replaced with.
//
// The payload directory may carry a payload.toml manifest describing the
// library; without one, the version is read from the library's own
// "version" file, the way the library itself stores it.
package payload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/awtools/fixum/internal/awversion"
)

// ManifestName is the optional manifest file at the payload root
const ManifestName = "payload.toml"

// VersionFileName is the version marker file inside the library
const VersionFileName = "version"

// DefaultMarker is the author marker that identifies a genuine copy of the
// library. Files without it are unrelated code that happens to share the
// layout.
const DefaultMarker = "Dean Jackson <deanishe@deanishe.net>"

// Error variables for payload loading
var (
	// ErrPayloadNotFound is returned when the payload directory does not exist
	ErrPayloadNotFound = errors.New("payload directory not found")
	// ErrNoVersion is returned when neither payload.toml nor a version file
	// provides a version
	ErrNoVersion = errors.New("payload has no version: add payload.toml or a version file")
)

// Manifest is the parsed payload.toml
type Manifest struct {
	// Name is the library name, informational only
	Name string `toml:"name"`
	// Version is the library version shipped in this payload
	Version string `toml:"version"`
	// Marker overrides the author marker used to identify bundled copies
	Marker string `toml:"marker,omitempty"`
}

// Payload is a validated payload directory
type Payload struct {
	// Dir is the payload directory path
	Dir string
	// Name is the library name from the manifest, or a default
	Name string
	// Version is the parsed payload version
	Version awversion.Version
	// Marker identifies genuine copies of the library during scans
	Marker string
}

// Load reads and validates the payload at dir.
// payload.toml takes priority; the library's version file is the fallback.
func Load(dir string) (*Payload, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPayloadNotFound, dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrPayloadNotFound, dir)
	}

	p := &Payload{
		Dir:    dir,
		Name:   "Alfred-Workflow",
		Marker: DefaultMarker,
	}

	manifestPath := filepath.Join(dir, ManifestName)
	if data, err := os.ReadFile(manifestPath); err == nil {
		var m Manifest
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ManifestName, err)
		}
		if m.Name != "" {
			p.Name = m.Name
		}
		if m.Marker != "" {
			p.Marker = m.Marker
		}
		if m.Version != "" {
			v, err := awversion.Parse(m.Version)
			if err != nil {
				return nil, fmt.Errorf("invalid version in %s: %w", ManifestName, err)
			}
			p.Version = v
			return p, nil
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// Fall back to the library's own version file
	versionPath := filepath.Join(dir, VersionFileName)
	data, err := os.ReadFile(versionPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w (looked in %s)", ErrNoVersion, dir)
		}
		return nil, err
	}

	v, err := awversion.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid version file in payload: %w", err)
	}
	p.Version = v

	return p, nil
}
