package debpatch

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// patchSuffix extends the recovered version so the rebuilt package sorts
// strictly after the original without colliding with a future upstream
// upload that uses a different Debian revision.
const patchSuffix = ".0.1"

const changelogUrgency = "medium"

// changelogHeaderRe matches the remainder of a changelog header line
// after the package name: "(<version>) <suite>; urgency=<level>".
var changelogHeaderRe = regexp.MustCompile(`^\(([^)\s]+)\)\s+(\S+);\s*urgency=(\S+)`)

// parseChangelogHeader recovers the current version from the most recent
// changelog entry. The first non-blank line must begin with the expected
// package name; the remainder must match the standard header structure.
// It returns the version and the text following the header line.
func parseChangelogHeader(text, name string) (version, rest string, err error) {
	remaining := text
	var line string
	for {
		var found bool
		line, remaining, found = strings.Cut(remaining, "\n")
		if strings.TrimSpace(line) != "" {
			break
		}
		if !found {
			return "", "", &ChangelogError{Reason: "empty changelog"}
		}
	}

	if !strings.HasPrefix(line, name+" ") {
		return "", "", &ChangelogError{Reason: fmt.Sprintf("header %q does not start with package %q", line, name)}
	}
	tail := strings.TrimSpace(line[len(name):])
	m := changelogHeaderRe.FindStringSubmatch(tail)
	if m == nil {
		return "", "", &ChangelogError{Reason: fmt.Sprintf("malformed header %q", line)}
	}
	return m[1], remaining, nil
}

// deriveVersion appends the local patch suffix to the current version.
func deriveVersion(old string) string {
	return old + patchSuffix
}

// renderChangelogEntry produces a new five-line changelog block:
// header, blank, one bullet with the message, blank, maintainer trailer
// with an RFC-2822 timestamp.
func renderChangelogEntry(name, version, suite, message, maintName, maintEmail string, now time.Time) string {
	return fmt.Sprintf("%s (%s) %s; urgency=%s\n\n  * %s\n\n -- %s <%s>  %s\n",
		name, version, suite, changelogUrgency,
		message,
		maintName, maintEmail, now.Format(time.RFC1123Z))
}

// prependChangelogEntry puts the new entry on top of the existing
// history, separated by a blank line. History is never rewritten, only
// grown.
func prependChangelogEntry(history, entry string) string {
	return entry + "\n" + history
}
