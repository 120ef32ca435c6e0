package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugo-lorenzo-mato/waitfile/internal/config"
	"github.com/hugo-lorenzo-mato/waitfile/internal/core"
)

// isolate keeps tests away from the developer's own config files.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	return dir
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecute(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"waitfile", "--help"}
	assert.NoError(t, Execute())
}

func TestGetVersionFunction(t *testing.T) {
	SetVersion("test-version-func", "test-commit", "test-date")
	assert.Equal(t, "test-version-func", GetVersion())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitConfig, ExitCode(core.ErrValidation(core.CodeMissingResources, "m")))
	assert.Equal(t, ExitFailed, ExitCode(core.ErrTimeout([]string{"a"})))
	assert.Equal(t, ExitFailed, ExitCode(core.ErrCanceled(context.Canceled)))
	assert.Equal(t, ExitFailed, ExitCode(errors.New("boom")))
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "timed out waiting for: a", FormatError(core.ErrTimeout([]string{"a"})))
	assert.Equal(t, "wait canceled: context canceled", FormatError(core.ErrCanceled(context.Canceled)))
	assert.Equal(t, "plain", FormatError(errors.New("plain")))

	flagErr := errors.New("unknown flag: --nope")
	assert.Equal(t, "unknown flag: --nope",
		FormatError(core.ErrValidation(core.CodeInvalidOptions, flagErr.Error()).WithCause(flagErr)))
}

func TestWait_Succeeds(t *testing.T) {
	dir := isolate(t)
	a := writeFile(t, dir, "a.txt", "alpha")
	b := writeFile(t, dir, "b.txt", "beta")

	stdout, stderr, err := execute(t, "-i", "10ms", "-w", "30ms", a, b)

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr, "silent unless --log or --verbose")
}

func TestWait_MissingResources(t *testing.T) {
	isolate(t)

	_, _, err := execute(t)

	require.Error(t, err)
	assert.Equal(t, ExitConfig, ExitCode(err))
	assert.ErrorIs(t, err, core.ErrValidation(core.CodeMissingResources, ""))
}

func TestWait_InvalidDurationFlag(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "--interval", "often", "a.txt")

	require.Error(t, err)
	assert.Equal(t, ExitConfig, ExitCode(err))
	assert.Contains(t, FormatError(err), "wait.interval")
}

func TestWait_UnknownFlag(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "--nope", "a.txt")

	require.Error(t, err)
	assert.Equal(t, ExitConfig, ExitCode(err))
}

func TestWait_Timeout(t *testing.T) {
	dir := isolate(t)
	missing := filepath.Join(dir, "never.txt")

	_, stderr, err := execute(t, "-i", "10ms", "-w", "30ms", "-t", "100", "--log", "--log-format", "text", missing)

	require.Error(t, err)
	assert.Equal(t, ExitFailed, ExitCode(err))
	assert.True(t, core.IsTimeout(err))
	assert.Equal(t, []string{missing}, core.WaitingFor(err))
	assert.Contains(t, stderr, "waiting for resources")
	assert.Contains(t, stderr, "timed out")
}

func TestWait_ReverseFlag(t *testing.T) {
	dir := isolate(t)

	_, _, err := execute(t, "-r", "-i", "10ms", "-w", "30ms", filepath.Join(dir, "gone"))

	assert.NoError(t, err)
}

func TestWait_VerboseLogsTrace(t *testing.T) {
	dir := isolate(t)
	a := writeFile(t, dir, "a.txt", "alpha")

	_, stderr, err := execute(t, "-v", "-i", "10ms", "-w", "30ms", "--log-format", "json", a)

	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"snapshot"`)
	assert.Contains(t, stderr, `"level":"DEBUG"`)
	assert.Contains(t, stderr, `"run_id"`)
}

func TestWait_MetricsFile(t *testing.T) {
	dir := isolate(t)
	a := writeFile(t, dir, "a.txt", "alpha")
	promPath := filepath.Join(dir, "waitfile.prom")

	_, _, err := execute(t, "-i", "10ms", "-w", "30ms", "--metrics-file", promPath, a)
	require.NoError(t, err)

	data, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `waitfile_runs_total{outcome="succeeded"} 1`)
}

func TestWait_ConfigFile(t *testing.T) {
	dir := isolate(t)
	a := writeFile(t, dir, "a.txt", "alpha")
	cfgPath := writeFile(t, dir, "custom.yaml", "wait:\n  interval: 10ms\n  window: 30ms\n  resources: ["+a+"]\n")

	_, _, err := execute(t, "--config", cfgPath)

	assert.NoError(t, err)
}

func TestWait_EnvironmentTimeout(t *testing.T) {
	dir := isolate(t)
	t.Setenv("WAITFILE_WAIT_TIMEOUT", "50ms")

	_, _, err := execute(t, "-i", "10ms", "-w", "30ms", filepath.Join(dir, "never"))

	assert.True(t, core.IsTimeout(err))
}

func TestWait_CanceledContext(t *testing.T) {
	dir := isolate(t)
	root := NewRootCmd()
	root.SetArgs([]string{"-i", "10ms", filepath.Join(dir, "never")})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := root.ExecuteContext(ctx)

	require.Error(t, err)
	assert.True(t, core.IsCategory(err, core.ErrCatCanceled))
	assert.Equal(t, ExitFailed, ExitCode(err))
}

func TestVersionCommand(t *testing.T) {
	SetVersion("v1.2.3", "abc123def", "2024-01-15")

	stdout, _, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "waitfile v1.2.3")
	assert.Contains(t, stdout, "commit: abc123def")
	assert.Contains(t, stdout, "built:  2024-01-15")
}

func TestConfigCommand_Sample(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "config")

	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigYAML, stdout)
}

func TestConfigCommand_Effective(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, config.ProjectConfigName, "wait:\n  window: 2s\n")
	t.Setenv("WAITFILE_LOG_LEVEL", "warn")

	stdout, _, err := execute(t, "config", "--effective", "--log-format", "json")

	require.NoError(t, err)
	assert.Contains(t, stdout, "# loaded from")
	assert.Contains(t, stdout, "window: 2s")
	assert.Contains(t, stdout, "level: warn")
	assert.Contains(t, stdout, "format: json")
	assert.Contains(t, stdout, "timeout: infinite")
}

func TestConfigCommand_EffectiveInvalid(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, config.ProjectConfigName, "log:\n  level: loud\n")

	_, _, err := execute(t, "config", "--effective")

	require.Error(t, err)
	assert.Equal(t, ExitConfig, ExitCode(err))
}

func TestConfigInitCommand(t *testing.T) {
	dir := isolate(t)

	stdout, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created")

	data, err := os.ReadFile(filepath.Join(dir, config.ProjectConfigName))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfigYAML, string(data))

	_, _, err = execute(t, "config", "init")
	assert.Error(t, err, "existing file is not overwritten without --force")

	_, _, err = execute(t, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigInitCommand_User(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "config", "init", "--user")
	require.NoError(t, err)

	path, err := config.UserConfigPath()
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
