package installer

import "os/exec"

// Runner abstracts external process execution so the install strategy
// chains can be exercised in tests without a package manager present.
type Runner interface {
	// Run executes command with args and returns its combined output.
	Run(command string, args ...string) ([]byte, error)

	// LookPath reports where command resolves on PATH, if anywhere. This
	// is the presence probe for installed CLI tools.
	LookPath(command string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(command string, args ...string) ([]byte, error) {
	return exec.Command(command, args...).CombinedOutput()
}

func (ExecRunner) LookPath(command string) (string, error) {
	return exec.LookPath(command)
}
