package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPrintsScriptOutput(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "run", `print "hello" "world"`)
	require.NoError(t, err)
	assert.Contains(t, stdout, "hello world")
}

func TestRunReadsCodeFromStdin(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLIWithInput(t, home, "let x = 2\nprint (add $x 3)\n", "run", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "5")
}

func TestRunReturnsScriptError(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "run", "nosuchword")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run script")
	assert.Contains(t, err.Error(), `unknown word "nosuchword"`)
}

func TestCommandLifecycle(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "command", "set", "greet", `print "hello" $1`)
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "command", "short", "greet", "says hello")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "command", "get", "greet")
	require.NoError(t, err)
	assert.Contains(t, stdout, `code: print "hello" $1`)
	assert.Contains(t, stdout, "help: (unset)")
	assert.Contains(t, stdout, "short: says hello")

	stdout, _, err = executeCLI(t, home, "command", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "greet\tsays hello")

	stdout, _, err = executeCLI(t, home, "call", "greet", "world")
	require.NoError(t, err)
	assert.Contains(t, stdout, "hello world")

	_, _, err = executeCLI(t, home, "command", "delete", "greet")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "command", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No stored commands.")
}

func TestCommandGetMissingFails(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "command", "get", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `command "ghost" not found`)
}

func TestCallMissingCommandFails(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "call", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call ghost")
}

func TestNoteSetAndGet(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "note", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "1", strings.TrimSpace(stdout))

	_, _, err = executeCLI(t, home, "note", "set", "1", "public", "hello", "there")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "note", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "public: hello there")
	assert.Contains(t, stdout, "protected: (unset)")
	assert.Contains(t, stdout, "private: (unset)")
}

func TestNoteSetRejectsUnknownField(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "note", "set", "1", "secret", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown note field "secret"`)

	_, _, err = executeCLI(t, home, "note", "get", "zero")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid identity "zero"`)
}

func TestMembersListsConfiguredMembers(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SB_CONSOLE_MEMBERS", "u1:Alice:ali u2:Bob")

	stdout, _, err := executeCLI(t, home, "members")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Alice")
	assert.Contains(t, stdout, "ali")
	assert.Contains(t, stdout, "Bob")
}

func TestMembersEmptyGuild(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "members", "elsewhere")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No known members.")
}

func TestScanSplitsSegments(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "scan", "brace", "print {x} 1} tail")
	require.NoError(t, err)
	assert.Contains(t, stdout, `source: "print {x} 1"`)
	assert.Contains(t, stdout, `rest: " tail"`)

	stdout, _, err = executeCLI(t, home, "scan", "paren", "greet big world) rest")
	require.NoError(t, err)
	assert.Contains(t, stdout, `name: "greet"`)
	assert.Contains(t, stdout, `args: "big world"`)
	assert.Contains(t, stdout, `rest: " rest"`)
}

func TestChatRunsCodeLines(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLIWithInput(t, home, "just talking\n¿print \"from chat\"\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, stdout, "from chat")
	assert.NotContains(t, stdout, "just talking")
}

func TestStoreDriverSelection(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SB_STORE_DRIVER", "sqlite")

	_, _, err := executeCLI(t, home, "command", "set", "x", "print 1")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, ".scriptbridge", "scriptbridge.db"))
	require.NoError(t, err)

	t.Setenv("SB_STORE_DRIVER", "redis")
	_, _, err = executeCLI(t, home, "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store.driver: redis")
}

func TestConfigFileIsRead(t *testing.T) {
	home := t.TempDir()
	configDir := filepath.Join(home, ".scriptbridge")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	config := "[console]\nmembers = [\"u9:Zed\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o600))

	stdout, _, err := executeCLI(t, home, "members")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Zed")
}

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev (none, unknown)", strings.TrimSpace(stdout))

	stdout, _, err = executeCLI(t, home, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev", strings.TrimSpace(stdout))
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(input))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
