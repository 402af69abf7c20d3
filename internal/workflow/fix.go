package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/awtools/fixum/internal/common/config"
	"github.com/awtools/fixum/internal/common/logger"
	"github.com/awtools/fixum/internal/payload"
)

// versionCheckedMarker tells Alfred a replaced library copy has been
// vetted
const versionCheckedMarker = ".alfredversionchecked"

// Status classifies a scanned workflow in a fix report
type Status string

const (
	// StatusOutdated means the bundled library is older than the payload
	// and would be replaced
	StatusOutdated Status = "Outdated"
	// StatusUpdated means the bundled library was replaced
	StatusUpdated Status = "Updated"
	// StatusCurrent means the bundled library is already up to date
	StatusCurrent Status = "Current"
	// StatusBlacklisted means the workflow matched a blacklist pattern
	StatusBlacklisted Status = "Blacklisted"
	// StatusSkipped means the workflow is this tool's own bundle
	StatusSkipped Status = "Skipped"
	// StatusFailed means replacing the bundled library failed
	StatusFailed Status = "Failed"
)

// Options controls a fix run
type Options struct {
	// DryRun reports intended changes without performing them
	DryRun bool
	// WorkflowDir overrides workflow directory discovery
	WorkflowDir string
}

// Entry is the outcome for a single workflow
type Entry struct {
	Workflow Workflow
	Status   Status
	// Pattern is the blacklist pattern that matched, for StatusBlacklisted
	Pattern string
	// BackupDir is where the outdated copy was preserved, for StatusUpdated
	BackupDir string
	// Message carries the failure reason, for StatusFailed
	Message string
}

// Report is the outcome of a fix or scan run
type Report struct {
	// Root is the workflow directory that was scanned
	Root string
	// Payload describes the replacement library
	Payload *payload.Payload
	// Entries holds one entry per detected workflow
	Entries []Entry
	// Symlinks lists symlinked bundles that were left alone
	Symlinks []string
	// ScanErrors lists bundles that could not be read
	ScanErrors []ScanError
}

// Updated counts replaced (or, in a dry run, replaceable) workflows
func (r *Report) Updated() int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == StatusUpdated || e.Status == StatusOutdated {
			n++
		}
	}
	return n
}

// Failed counts workflows whose replacement failed
func (r *Report) Failed() int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == StatusFailed {
			n++
		}
	}
	return n
}

// Fix scans the workflow directory and replaces outdated bundled copies
// of the helper library with the payload. With opts.DryRun it only
// reports what would change. The payload is validated before anything is
// touched.
func Fix(cfg *config.Config, opts *Options) (*Report, error) {
	payloadDir, err := cfg.GetPayloadPath()
	if err != nil {
		return nil, err
	}
	pl, err := payload.Load(payloadDir)
	if err != nil {
		return nil, err
	}

	override := opts.WorkflowDir
	if override == "" {
		override = cfg.Workflows.Dir
	}
	root, err := FindWorkflowDir(override)
	if err != nil {
		return nil, err
	}
	logger.Info("workflow directory: %s", root)

	blacklistPath, err := cfg.GetBlacklistPath()
	if err != nil {
		return nil, err
	}
	bl, err := LoadBlacklist(blacklistPath)
	if err != nil {
		return nil, err
	}

	logger.Info("looking for workflows using an outdated version of %s...", pl.Name)
	scan, err := Scan(root, pl.Marker)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Root:       root,
		Payload:    pl,
		Symlinks:   scan.Symlinks,
		ScanErrors: scan.Errors,
	}

	for _, wf := range scan.Workflows {
		report.Entries = append(report.Entries, fixOne(wf, pl, bl, cfg.Workflows.SelfBundleID, opts.DryRun))
	}

	return report, nil
}

// fixOne classifies a single workflow and, outside dry runs, replaces its
// outdated library copy
func fixOne(wf Workflow, pl *payload.Payload, bl *Blacklist, selfBundleID string, dryRun bool) Entry {
	entry := Entry{Workflow: wf}

	if wf.BundleID == selfBundleID {
		logger.Debug("ignoring self: %s", wf.BundleID)
		entry.Status = StatusSkipped
		return entry
	}

	if pattern, matched := bl.Match(wf.BundleID); matched {
		logger.Info("skipping blacklisted workflow: %s (matched %q)", wf.Name, pattern)
		entry.Status = StatusBlacklisted
		entry.Pattern = pattern
		return entry
	}

	logger.Info("")
	logger.Info("found workflow: %s", wf.Name)
	logger.Info("     bundle ID: %s", wf.BundleID)
	logger.Info("       version: %s", wf.Library.Version)

	if wf.Library.Version.AtLeast(pl.Version) {
		logger.Info("[OK] workflow %q has a current copy of %s", wf.Name, pl.Name)
		entry.Status = StatusCurrent
		return entry
	}

	logger.Info("[!!] workflow %q is using an outdated copy (%s) of %s",
		wf.Name, wf.Library.Version, pl.Name)

	if dryRun {
		entry.Status = StatusOutdated
		return entry
	}

	backupDir, err := replaceLibrary(wf, pl)
	if err != nil {
		logger.Error("failed to update workflow %q (%s): %v", wf.Name, wf.Library.Dir, err)
		entry.Status = StatusFailed
		entry.Message = err.Error()
		return entry
	}

	entry.Status = StatusUpdated
	entry.BackupDir = backupDir
	return entry
}

// replaceLibrary backs up the outdated library copy and installs the
// payload in its place. Returns the backup directory.
func replaceLibrary(wf Workflow, pl *payload.Payload) (string, error) {
	logger.Info("    updating %q ...", wf.Name)

	backupDir := BackupName(wf.Library.Dir)
	logger.Debug("    moving %s to %s ...", wf.Library.Dir, backupDir)
	if err := os.Rename(wf.Library.Dir, backupDir); err != nil {
		return "", fmt.Errorf("backing up old copy: %w", err)
	}

	logger.Debug("    copying payload to %s ...", wf.Library.Dir)
	if err := CopyTree(pl.Dir, wf.Library.Dir, payload.ManifestName); err != nil {
		return "", fmt.Errorf("installing new copy: %w", err)
	}

	// Let Alfred know this copy has been checked
	if err := Touch(filepath.Join(wf.Library.Dir, versionCheckedMarker)); err != nil {
		return "", err
	}

	// Touch info.plist so Alfred reloads the workflow
	if err := Touch(filepath.Join(wf.Dir, InfoPlistName)); err != nil {
		return "", err
	}

	logger.Info("    installed new version of %s", pl.Name)
	return backupDir, nil
}

// FormatReport formats a fix report for display
func FormatReport(report *Report, dryRun bool) string {
	var sb strings.Builder

	for _, e := range report.Entries {
		switch e.Status {
		case StatusOutdated:
			sb.WriteString(fmt.Sprintf("  %s (%s): %s → %s\n",
				e.Workflow.Name, e.Workflow.BundleID, e.Workflow.Library.Version, report.Payload.Version))
		case StatusUpdated:
			sb.WriteString(fmt.Sprintf("  %s (%s): %s → %s (backup: %s)\n",
				e.Workflow.Name, e.Workflow.BundleID, e.Workflow.Library.Version,
				report.Payload.Version, filepath.Base(e.BackupDir)))
		case StatusFailed:
			sb.WriteString(fmt.Sprintf("  %s (%s): FAILED: %s\n",
				e.Workflow.Name, e.Workflow.BundleID, e.Message))
		}
	}

	updated := report.Updated()
	failed := report.Failed()

	switch {
	case dryRun:
		sb.WriteString(fmt.Sprintf("Would update %d workflow(s)\n", updated))
	case failed > 0:
		sb.WriteString(fmt.Sprintf("Failed to update %d/%d workflow(s)\n", failed, failed+updated))
	default:
		sb.WriteString(fmt.Sprintf("Updated %d workflow(s)\n", updated))
	}

	return sb.String()
}
