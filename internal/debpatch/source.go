package debpatch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sys/unix"
)

// minFreeBytes is the free-space floor on the source workspace before a
// fetch is attempted. Running out of disk mid-extraction leaves a
// half-written tree that is confusing to diagnose.
const minFreeBytes = 1 << 30 // 1 GiB

// ensureFreeSpace fails early when the filesystem holding dir is nearly full.
func ensureFreeSpace(dir string) error {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return fmt.Errorf("statfs %s: %w", dir, err)
	}
	free := st.Bavail * uint64(st.Bsize)
	if free < minFreeBytes {
		return fmt.Errorf("insufficient free space on %s: %d MiB available", dir, free/(1<<20))
	}
	return nil
}

// fetchSource downloads and extracts the pinned source tree into the
// source workspace via apt-get source.
func fetchSource(r runner, id PackageID, srcRoot string) error {
	if err := ensureFreeSpace(srcRoot); err != nil {
		return err
	}
	cmd := exec.Command("apt-get", "source", id.Spec())
	cmd.Dir = srcRoot
	return r.Run(cmd)
}

// findBuildRoot locates the extracted build root: a directory named
// <package>-* inside the source workspace. Files are ignored. When more
// than one candidate exists the lexicographically smallest wins, so the
// choice does not depend on directory listing order.
func findBuildRoot(srcRoot, name string) (string, error) {
	entries, err := os.ReadDir(srcRoot)
	if err != nil {
		return "", fmt.Errorf("reading source workspace: %w", err)
	}

	var candidates []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), name+"-") {
			candidates = append(candidates, entry.Name())
		}
	}
	if len(candidates) == 0 {
		return "", &NoBuildRootError{Package: name, Dir: srcRoot}
	}
	sort.Strings(candidates)
	if len(candidates) > 1 {
		cPrintf(colWarn, "Multiple build root candidates in %s, using %s\n", srcRoot, candidates[0])
	}
	return filepath.Join(srcRoot, candidates[0]), nil
}
