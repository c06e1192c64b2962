package debpatch

import (
	"bufio"
	"os/exec"
	"path/filepath"
	"strings"
)

// installedPackages queries the dpkg database and returns the set of
// installed package names. Multi-arch qualifiers (pkg:amd64) are
// normalized away so artifact names compare cleanly.
func installedPackages(r runner) (map[string]bool, error) {
	cmd := exec.Command("dpkg-query", "-W", "-f", "${binary:Package} ${Version}\n")
	out, err := r.Output(cmd)
	if err != nil {
		return nil, err
	}

	installed := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 1 {
			continue
		}
		name := fields[0]
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[:i]
		}
		installed[name] = true
	}
	return installed, scanner.Err()
}

// matchArtifacts filters built artifact files down to those whose
// leading <package>_ name segment is currently installed. Artifacts for
// packages the operator never had installed are skipped on purpose: a
// rebuild of the kate source package also produces kate-data, kwrite and
// friends, and installing those unasked would grow the system.
func matchArtifacts(files []string, installed map[string]bool) []string {
	var matched []string
	for _, file := range files {
		base := filepath.Base(file)
		name, _, found := strings.Cut(base, "_")
		if !found {
			continue
		}
		if installed[name] {
			matched = append(matched, file)
		}
	}
	return matched
}

// installBuilt cross-references the artifacts built earlier for pkg
// against the installed package set and hands the matching subset to
// dpkg. An empty match is a reported no-op, not an installer invocation.
func installBuilt(cfg *Config, r runner, pkg string) error {
	binRoot := filepath.Join(cfg.BinDir, pkg)
	debs, err := filepath.Glob(filepath.Join(binRoot, "*.deb"))
	if err != nil {
		return err
	}

	installed, err := installedPackages(r)
	if err != nil {
		return err
	}

	matched := matchArtifacts(debs, installed)
	if len(matched) == 0 {
		cPrintf(colWarn, "No artifacts in %s match an installed package; nothing to do.\n", binRoot)
		return nil
	}

	// dpkg is mutating the package database from here on; block the
	// first Ctrl+C until it finishes.
	isCriticalAtomic.Store(1)
	defer isCriticalAtomic.Store(0)

	args := append([]string{"-i"}, matched...)
	if err := r.Run(exec.Command("dpkg", args...)); err != nil {
		return err
	}

	colArrow.Print("-> ")
	colSuccess.Printf("Installed %d package(s) for %s\n", len(matched), pkg)
	return nil
}
