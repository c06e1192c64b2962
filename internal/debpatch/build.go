package debpatch

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ulikunitz/xz"
	"lukechampine.com/blake3"
)

// buildLogName is the compressed build log kept next to the artifacts.
const buildLogName = "build-log.txt.xz"

// runBuild invokes dpkg-buildpackage in unsigned, binary-only mode
// against the build root. The builder's output is streamed to the
// console and teed into an xz-compressed log in the binary output root,
// kept on failure too so the operator can page through it later.
func runBuild(r runner, buildRoot, binRoot string) error {
	logFile, err := os.Create(filepath.Join(binRoot, buildLogName))
	if err != nil {
		return fmt.Errorf("creating build log: %w", err)
	}
	defer logFile.Close()
	xzWriter, err := xz.NewWriter(logFile)
	if err != nil {
		return fmt.Errorf("creating xz writer: %w", err)
	}

	cmd := exec.Command("dpkg-buildpackage", "-us", "-uc", "-b")
	cmd.Dir = buildRoot
	cmd.Stdout = io.MultiWriter(os.Stdout, xzWriter)
	cmd.Stderr = io.MultiWriter(os.Stderr, xzWriter)

	runErr := r.Run(cmd)
	if closeErr := xzWriter.Close(); closeErr != nil && runErr == nil {
		runErr = fmt.Errorf("closing build log: %w", closeErr)
	}
	return runErr
}

// blake3Sum returns the hex BLAKE3 checksum of a file.
func blake3Sum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := blake3.New(32, nil)
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// moveFile renames src into dstDir, falling back to copy-and-remove when
// the roots live on different filesystems.
func moveFile(src, dstDir string) (string, error) {
	dst := filepath.Join(dstDir, filepath.Base(src))
	if err := os.Rename(src, dst); err == nil {
		return dst, nil
	}
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return dst, os.Remove(src)
}

// copyFile copies src into dstDir keeping the base name.
func copyFile(src, dstDir string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(filepath.Join(dstDir, filepath.Base(src)))
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// collectArtifacts gathers the .deb files dpkg-buildpackage dropped into
// the source workspace (one level above the build root), moves them into
// the binary output root, and records provenance: a copy of the patch
// that produced them plus its BLAKE3 checksum.
func collectArtifacts(srcRoot, binRoot, patchFile string) ([]string, error) {
	debs, err := filepath.Glob(filepath.Join(srcRoot, "*.deb"))
	if err != nil {
		return nil, err
	}
	if len(debs) == 0 {
		return nil, fmt.Errorf("build produced no .deb artifacts in %s", srcRoot)
	}

	var moved []string
	for _, deb := range debs {
		dst, err := moveFile(deb, binRoot)
		if err != nil {
			return moved, fmt.Errorf("moving %s: %w", filepath.Base(deb), err)
		}
		moved = append(moved, dst)
	}

	if err := copyFile(patchFile, binRoot); err != nil {
		return moved, fmt.Errorf("saving patch copy: %w", err)
	}
	sum, err := blake3Sum(patchFile)
	if err != nil {
		return moved, fmt.Errorf("checksumming patch: %w", err)
	}
	sumLine := fmt.Sprintf("%s  %s\n", sum, filepath.Base(patchFile))
	sumPath := filepath.Join(binRoot, filepath.Base(patchFile)+".b3sum")
	if err := os.WriteFile(sumPath, []byte(sumLine), 0o644); err != nil {
		return moved, fmt.Errorf("writing provenance: %w", err)
	}

	return moved, nil
}
