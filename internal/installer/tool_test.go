package installer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termsetup/internal/config"
)

// fakeRunner simulates package managers: LookPath resolves from the
// available map, Run delegates to onRun so tests can make installs
// "succeed" by mutating state.
type fakeRunner struct {
	available map[string]string
	onRun     func(command string, args ...string) ([]byte, error)
	ran       []string
}

func (f *fakeRunner) Run(command string, args ...string) ([]byte, error) {
	f.ran = append(f.ran, command)
	if f.onRun != nil {
		return f.onRun(command, args...)
	}
	return nil, nil
}

func (f *fakeRunner) LookPath(command string) (string, error) {
	if path, ok := f.available[command]; ok {
		return path, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func testTool() config.Tool {
	return config.Tool{
		Name:    "oh-my-posh",
		Command: "oh-my-posh",
		Strategies: []config.Strategy{
			{Name: "winget", Command: "winget", Args: []string{"install", "JanDeDobbeleer.OhMyPosh"}},
			{Name: "choco", Command: "choco", Args: []string{"install", "oh-my-posh", "-y"}},
		},
	}
}

func TestInstallToolAlreadyPresent(t *testing.T) {
	r := &fakeRunner{available: map[string]string{"oh-my-posh": "/usr/local/bin/oh-my-posh"}}

	path, strategy, err := InstallTool(testTool(), r)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/oh-my-posh", path)
	assert.Empty(t, strategy)
	assert.Empty(t, r.ran, "no package manager should run when the probe already succeeds")
}

func TestInstallToolPrimaryStrategy(t *testing.T) {
	r := &fakeRunner{available: map[string]string{"winget": "/bin/winget", "choco": "/bin/choco"}}
	r.onRun = func(command string, args ...string) ([]byte, error) {
		r.available["oh-my-posh"] = `C:\Program Files\oh-my-posh\oh-my-posh.exe`
		return []byte("installed"), nil
	}

	path, strategy, err := InstallTool(testTool(), r)
	require.NoError(t, err)
	assert.Equal(t, `C:\Program Files\oh-my-posh\oh-my-posh.exe`, path)
	assert.Equal(t, "winget", strategy)
	assert.Equal(t, []string{"winget"}, r.ran)
}

func TestInstallToolFallsBackToSecondary(t *testing.T) {
	// winget is absent; choco is present and succeeds.
	r := &fakeRunner{available: map[string]string{"choco": "/bin/choco"}}
	r.onRun = func(command string, args ...string) ([]byte, error) {
		r.available["oh-my-posh"] = "/bin/oh-my-posh"
		return nil, nil
	}

	_, strategy, err := InstallTool(testTool(), r)
	require.NoError(t, err)
	assert.Equal(t, "choco", strategy)
	assert.Equal(t, []string{"choco"}, r.ran)
}

func TestInstallToolProbeOverridesExitCode(t *testing.T) {
	// The package manager exits non-zero (e.g. "already installed") but
	// the probe finds the tool afterwards; that counts as success.
	r := &fakeRunner{available: map[string]string{"winget": "/bin/winget"}}
	r.onRun = func(command string, args ...string) ([]byte, error) {
		r.available["oh-my-posh"] = "/bin/oh-my-posh"
		return []byte("already installed"), errors.New("exit status 1")
	}

	_, strategy, err := InstallTool(testTool(), r)
	require.NoError(t, err)
	assert.Equal(t, "winget", strategy)
}

func TestInstallToolAllStrategiesExhausted(t *testing.T) {
	r := &fakeRunner{available: map[string]string{"winget": "/bin/winget", "choco": "/bin/choco"}}

	_, _, err := InstallTool(testTool(), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolInstall)
	assert.Equal(t, []string{"winget", "choco"}, r.ran, "every strategy should be attempted before giving up")
}
