package debpatch

import (
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line    string
		kind    actionKind
		pkgName string
	}{
		{"Inst libfoo-dev (1.2-3 Debian:stable [amd64])", actInstall, "libfoo-dev"},
		{"Remv libbar (0.9-1 [amd64])", actRemove, "libbar"},
		{"Conf libfoo-dev (1.2-3 Debian:stable [amd64])", actConfigure, "libfoo-dev"},
		{"Reading package lists...", actOther, ""},
		{"Inst", actOther, ""}, // prefix without a package name is advisory
	}
	for _, tt := range tests {
		act := classifyLine(tt.line)
		if act.Kind != tt.kind {
			t.Errorf("classifyLine(%q) kind = %v, want %v", tt.line, act.Kind, tt.kind)
		}
		if act.Package != tt.pkgName {
			t.Errorf("classifyLine(%q) package = %q, want %q", tt.line, act.Package, tt.pkgName)
		}
	}
}

func TestBuildDepSetInstallOnly(t *testing.T) {
	report := strings.Join([]string{
		"Reading package lists...",
		"Inst libfoo-dev (1.2-3 Debian:stable [amd64])",
		"Inst libbar-dev (2.0-1 Debian:stable [amd64])",
		"Inst libfoo-dev (1.2-3 Debian:stable [amd64])", // duplicate
		"Conf libfoo-dev (1.2-3 Debian:stable [amd64])",
		"Conf libbar-dev (2.0-1 Debian:stable [amd64])",
	}, "\n")

	deps, err := buildDepSet(parseSimulation(report))
	if err != nil {
		t.Fatalf("buildDepSet: %v", err)
	}
	want := []string{"libfoo-dev", "libbar-dev"}
	if !reflect.DeepEqual(deps, want) {
		t.Errorf("deps = %v, want %v (first-seen order, deduplicated)", deps, want)
	}
}

func TestBuildDepSetRejectsRemoval(t *testing.T) {
	report := strings.Join([]string{
		"Inst libfoo-dev (1.2-3 Debian:stable [amd64])",
		"Remv libprecious (0.9-1 [amd64])",
		"Inst libbar-dev (2.0-1 Debian:stable [amd64])",
	}, "\n")

	deps, err := buildDepSet(parseSimulation(report))
	if deps != nil {
		t.Errorf("deps = %v, want nil on removal", deps)
	}
	var remErr *RemovalError
	if !errors.As(err, &remErr) {
		t.Fatalf("err = %v, want *RemovalError", err)
	}
	if remErr.Package != "libprecious" {
		t.Errorf("removal package = %q, want libprecious", remErr.Package)
	}
}

func TestSimulateBuildDeps(t *testing.T) {
	fake := &fakeRunner{handle: func(cmd *exec.Cmd) (string, error) {
		return "Inst libfoo-dev (1.2-3 Debian:stable [amd64])\n", nil
	}}

	deps, err := simulateBuildDeps(fake, PackageID{Name: "kate", Version: "22.04.0-1"})
	if err != nil {
		t.Fatalf("simulateBuildDeps: %v", err)
	}
	if !reflect.DeepEqual(deps, []string{"libfoo-dev"}) {
		t.Errorf("deps = %v", deps)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("expected one command, got %v", fake.calls)
	}
	want := []string{"apt-get", "-s", "build-dep", "kate=22.04.0-1"}
	if !reflect.DeepEqual(fake.calls[0], want) {
		t.Errorf("command = %v, want %v", fake.calls[0], want)
	}
}

func TestPackageIDSpec(t *testing.T) {
	if got := (PackageID{Name: "kate"}).Spec(); got != "kate" {
		t.Errorf("Spec() = %q", got)
	}
	if got := (PackageID{Name: "kate", Version: "22.04.0-1"}).Spec(); got != "kate=22.04.0-1" {
		t.Errorf("Spec() = %q", got)
	}
}
