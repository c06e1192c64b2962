package debpatch

import (
	"os/exec"
	"strings"
)

// fakeRunner records every spawned command and lets tests script the
// behavior of the external tools.
type fakeRunner struct {
	calls  [][]string
	handle func(cmd *exec.Cmd) (string, error)
}

func (f *fakeRunner) Run(cmd *exec.Cmd) error {
	f.calls = append(f.calls, append([]string(nil), cmd.Args...))
	if f.handle == nil {
		return nil
	}
	_, err := f.handle(cmd)
	return err
}

func (f *fakeRunner) Output(cmd *exec.Cmd) (string, error) {
	f.calls = append(f.calls, append([]string(nil), cmd.Args...))
	if f.handle == nil {
		return "", nil
	}
	return f.handle(cmd)
}

// callLines renders the recorded invocations one per line for matching.
func (f *fakeRunner) callLines() []string {
	var lines []string
	for _, call := range f.calls {
		lines = append(lines, strings.Join(call, " "))
	}
	return lines
}

// silentHook keeps pipeline narration out of test output.
func silentHook(string) func(error) {
	return func(error) {}
}
