package debpatch

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDeriveVersion(t *testing.T) {
	if got := deriveVersion("1.2-3"); got != "1.2-3.0.1" {
		t.Errorf("deriveVersion(1.2-3) = %q, want 1.2-3.0.1", got)
	}
	// The derived version must stay distinguishable from and ordered
	// after the input: same base plus a strictly extending suffix.
	if !strings.HasPrefix(deriveVersion("22.04.0-1"), "22.04.0-1") {
		t.Error("derived version must extend the original")
	}
}

func TestParseChangelogHeader(t *testing.T) {
	text := "kate (22.04.0-1) unstable; urgency=medium\n\n  * New upstream release.\n"

	version, rest, err := parseChangelogHeader(text, "kate")
	if err != nil {
		t.Fatalf("parseChangelogHeader: %v", err)
	}
	if version != "22.04.0-1" {
		t.Errorf("version = %q, want 22.04.0-1", version)
	}
	if !strings.Contains(rest, "New upstream release") {
		t.Errorf("rest should carry the remaining text, got %q", rest)
	}
}

func TestParseChangelogHeaderSkipsLeadingBlanks(t *testing.T) {
	text := "\n\npkgname (1.2-3) unstable; urgency=medium\n"
	version, _, err := parseChangelogHeader(text, "pkgname")
	if err != nil {
		t.Fatalf("parseChangelogHeader: %v", err)
	}
	if version != "1.2-3" {
		t.Errorf("version = %q", version)
	}
}

func TestParseChangelogHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		pkg  string
	}{
		{"wrong package name", "kwrite (1.0-1) unstable; urgency=medium\n", "kate"},
		{"malformed header", "kate 1.0-1 unstable\n", "kate"},
		{"missing urgency", "kate (1.0-1) unstable\n", "kate"},
		{"empty file", "", "kate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseChangelogHeader(tt.text, tt.pkg)
			var clErr *ChangelogError
			if !errors.As(err, &clErr) {
				t.Errorf("err = %v, want *ChangelogError", err)
			}
		})
	}
}

func TestRenderEntryRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)
	newVersion := deriveVersion("22.04.0-1")
	entry := renderChangelogEntry("kate", newVersion, "unstable", "Apply local fix.", "Jane Doe", "jane@example.org", now)

	lines := strings.Split(strings.TrimRight(entry, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("entry has %d lines, want 5:\n%s", len(lines), entry)
	}
	if lines[1] != "" || lines[3] != "" {
		t.Errorf("lines 2 and 4 must be blank:\n%s", entry)
	}
	if !strings.Contains(lines[2], "* Apply local fix.") {
		t.Errorf("bullet line = %q", lines[2])
	}
	if !strings.Contains(lines[4], "Jane Doe <jane@example.org>") {
		t.Errorf("trailer line = %q", lines[4])
	}
	if !strings.Contains(lines[4], "Fri, 17 May 2024 10:30:00 +0000") {
		t.Errorf("trailer timestamp = %q", lines[4])
	}

	// Re-parsing the rendered entry must recover the same name/version.
	version, _, err := parseChangelogHeader(entry, "kate")
	if err != nil {
		t.Fatalf("round-trip parse: %v", err)
	}
	if version != "22.04.0-1.0.1" {
		t.Errorf("round-trip version = %q, want 22.04.0-1.0.1", version)
	}
}

func TestPrependChangelogEntry(t *testing.T) {
	history := "kate (22.04.0-1) unstable; urgency=medium\n"
	entry := "kate (22.04.0-1.0.1) unstable; urgency=medium\n"

	combined := prependChangelogEntry(history, entry)
	if !strings.HasPrefix(combined, entry+"\n") {
		t.Errorf("new entry must come first, separated by a blank line:\n%s", combined)
	}
	if !strings.HasSuffix(combined, history) {
		t.Errorf("existing history must be preserved untouched:\n%s", combined)
	}
}
