package debpatch

import (
	"fmt"
	"os/exec"
	"strings"
)

// PackageID names a package, optionally pinned to an exact upstream
// source version.
type PackageID struct {
	Name    string
	Version string
}

// Spec renders the identity the way apt expects it on the command line.
func (p PackageID) Spec() string {
	if p.Version != "" {
		return p.Name + "=" + p.Version
	}
	return p.Name
}

type actionKind int

const (
	actInstall actionKind = iota
	actRemove
	actConfigure
	actOther
)

// simAction is one classified line of an apt simulation report.
type simAction struct {
	Kind    actionKind
	Package string // set for Inst/Remv/Conf
	Line    string // original text, kept for Other lines
}

// classifyLine maps one report line onto a tagged action. apt's
// simulation output marks intended actions with fixed prefixes:
//
//	Inst libfoo-dev (1.2-3 Debian:stable [amd64])
//	Remv libbar (0.9-1 [amd64])
//	Conf libfoo-dev (1.2-3 Debian:stable [amd64])
//
// Anything else is advisory text.
func classifyLine(line string) simAction {
	fields := strings.Fields(line)
	if len(fields) >= 2 {
		switch fields[0] {
		case "Inst":
			return simAction{Kind: actInstall, Package: fields[1], Line: line}
		case "Remv":
			return simAction{Kind: actRemove, Package: fields[1], Line: line}
		case "Conf":
			return simAction{Kind: actConfigure, Package: fields[1], Line: line}
		}
	}
	return simAction{Kind: actOther, Line: line}
}

// parseSimulation classifies every line of a simulation report.
func parseSimulation(report string) []simAction {
	var actions []simAction
	for _, line := range strings.Split(report, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		actions = append(actions, classifyLine(line))
	}
	return actions
}

// buildDepSet folds the classified actions into the ordered, deduplicated
// list of packages to install. A removal requirement aborts immediately:
// the pipeline must never uninstall unrelated packages to satisfy a
// build. Advisory lines are echoed unmodified.
func buildDepSet(actions []simAction) ([]string, error) {
	var deps []string
	seen := make(map[string]bool)
	for _, act := range actions {
		switch act.Kind {
		case actInstall:
			if !seen[act.Package] {
				seen[act.Package] = true
				deps = append(deps, act.Package)
			}
		case actRemove:
			return nil, &RemovalError{Package: act.Package}
		case actConfigure:
			// reconfiguration of an already-present package needs no action
		case actOther:
			fmt.Println(act.Line)
		}
	}
	return deps, nil
}

// simulateBuildDeps runs the dry-run build-dep query and returns the
// packages apt would install to build the given package.
func simulateBuildDeps(r runner, id PackageID) ([]string, error) {
	cmd := exec.Command("apt-get", "-s", "build-dep", id.Spec())
	report, err := r.Output(cmd)
	if err != nil {
		return nil, err
	}
	return buildDepSet(parseSimulation(report))
}

// installPackages installs the computed dependency set non-interactively.
func installPackages(r runner, pkgs []string) error {
	args := append([]string{"-y", "install"}, pkgs...)
	return r.Run(exec.Command("apt-get", args...))
}

// purgePackages removes exactly the set installPackages installed.
func purgePackages(r runner, pkgs []string) error {
	args := append([]string{"-y", "purge"}, pkgs...)
	return r.Run(exec.Command("apt-get", args...))
}
