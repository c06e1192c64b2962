package debpatch

import "fmt"

// ProcessError reports an external command that exited non-zero.
// Every stage treats it as fatal; nothing is retried.
type ProcessError struct {
	Cmd      string
	ExitCode int
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.Cmd, e.ExitCode)
}

// RemovalError reports a build-dep simulation that wants to remove an
// installed package. The pipeline refuses to touch unrelated packages,
// so the run aborts before anything is installed.
type RemovalError struct {
	Package string
}

func (e *RemovalError) Error() string {
	return fmt.Sprintf("dependency simulation requires removing %s; refusing to alter unrelated packages", e.Package)
}

// ChangelogError reports a debian/changelog header that does not match
// the expected package name or structure.
type ChangelogError struct {
	Reason string
}

func (e *ChangelogError) Error() string {
	return "changelog: " + e.Reason
}

// NoBuildRootError reports a source workspace without a usable
// <package>-* directory after apt-get source ran.
type NoBuildRootError struct {
	Package string
	Dir     string
}

func (e *NoBuildRootError) Error() string {
	return fmt.Sprintf("no build root matching %s-* found in %s", e.Package, e.Dir)
}

// ConfigError reports a missing or malformed configuration key.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("configuration: %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("configuration: required key %s is not set", e.Key)
}
