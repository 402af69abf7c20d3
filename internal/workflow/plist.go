package workflow

import (
	"errors"
	"fmt"
	"os"

	"howett.net/plist"
)

var (
	ErrNoInfoPlist = errors.New("no info.plist in bundle")
	ErrNoBundleID  = errors.New("workflow has no bundle ID")
)

// InfoPlistName is the property list every workflow bundle carries
const InfoPlistName = "info.plist"

// BundleInfo is the identifying information read from info.plist
type BundleInfo struct {
	Name     string `plist:"name"`
	BundleID string `plist:"bundleid"`
}

// ReadInfoPlist reads a workflow's info.plist. Both XML and binary
// property lists are handled.
func ReadInfoPlist(path string) (*BundleInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoInfoPlist
		}
		return nil, err
	}

	var info BundleInfo
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &info, nil
}

// alfredPrefs is the subset of Alfred's preferences plist we care about
type alfredPrefs struct {
	SyncFolder string `plist:"syncfolder"`
}

// ReadSyncFolder reads the user-configured sync directory from Alfred's
// preferences plist. An empty string means no sync directory is set.
func ReadSyncFolder(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var prefs alfredPrefs
	if _, err := plist.Unmarshal(data, &prefs); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return prefs.SyncFolder, nil
}
