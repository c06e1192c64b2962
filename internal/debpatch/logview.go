package debpatch

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ulikunitz/xz"
)

// handleLogCommand implements 'debpatch log <pkg>': decompress the saved
// build log and page through it.
func handleLogCommand(args []string, cfg *Config) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: debpatch log <package>")
	}
	pkgName := args[0]
	logPath := filepath.Join(cfg.BinDir, pkgName, buildLogName)

	f, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no build log found for package %s", pkgName)
		}
		return fmt.Errorf("opening log: %w", err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return fmt.Errorf("creating xz reader: %w", err)
	}

	// Pipe to a pager if possible, otherwise dump to stdout
	pager := os.Getenv("PAGER")
	var pagerArgs []string
	if pager == "" || pager == "less" {
		pager = "less"
		pagerArgs = []string{"-r"}
	}

	cmd := exec.Command(pager, pagerArgs...)
	cmd.Stdin = xr
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		// Fallback to plain stdout if the pager fails
		if _, err := f.Seek(0, 0); err != nil {
			return err
		}
		xr, err = xz.NewReader(f)
		if err != nil {
			return err
		}
		if _, err := io.Copy(os.Stdout, xr); err != nil {
			return err
		}
	}
	return nil
}
