package debpatch

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// changelogPath is where dpkg tooling expects the change history,
// relative to the build root.
const changelogPath = "debian/changelog"

// applyPatch feeds the patch file's raw bytes into patch -p1 inside the
// build root. A conflict is fatal; no partial-patch recovery is
// attempted, the tooling's own rejects are left for the operator.
func applyPatch(r runner, buildRoot, patchFile string) error {
	data, err := os.ReadFile(patchFile)
	if err != nil {
		return fmt.Errorf("reading patch %s: %w", patchFile, err)
	}
	cmd := exec.Command("patch", "-p1")
	cmd.Dir = buildRoot
	cmd.Stdin = bytes.NewReader(data)
	if err := r.Run(cmd); err != nil {
		return fmt.Errorf("applying %s: %w", filepath.Base(patchFile), err)
	}
	return nil
}

// updateChangelog parses the top entry of the build root's changelog,
// derives the patched version, and rewrites the file with a new entry
// prepended. It returns the new version. The already-applied patch is
// NOT rolled back if this fails; the workspace is left for inspection.
func updateChangelog(cfg *Config, buildRoot, name, message string, now time.Time) (string, error) {
	clPath := filepath.Join(buildRoot, changelogPath)
	data, err := os.ReadFile(clPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", clPath, err)
	}

	oldVersion, _, err := parseChangelogHeader(string(data), name)
	if err != nil {
		return "", err
	}
	newVersion := deriveVersion(oldVersion)

	entry := renderChangelogEntry(name, newVersion, cfg.Suite, message, cfg.MaintName, cfg.MaintEmail, now)
	updated := prependChangelogEntry(string(data), entry)

	if err := os.WriteFile(clPath, []byte(updated), 0o644); err != nil {
		return "", fmt.Errorf("rewriting %s: %w", clPath, err)
	}
	return newVersion, nil
}
