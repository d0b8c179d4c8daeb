package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runoshun/task-cli/internal/domain"
	"github.com/runoshun/task-cli/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commandList = "Unknown command. Available commands:\n" +
	"  add \"<description>\"\n" +
	"  list [status]\n" +
	"  update <id> \"<new description>\"\n" +
	"  delete <id>\n" +
	"  mark-in-progress <id>\n" +
	"  mark-done <id>\n"

func TestNewRootCommand_NoArgs_PrintsCommandList(t *testing.T) {
	store := testutil.NewMockTaskStore()
	c := newTestContainer(store)

	out, _, err := execute(c)

	require.NoError(t, err)
	assert.Equal(t, commandList, out)
	assert.Zero(t, store.LoadCalls)
}

func TestNewRootCommand_UnknownCommand(t *testing.T) {
	store := testutil.NewMockTaskStore()
	c := newTestContainer(store)

	out, _, err := execute(c, "frobnicate", "1")

	require.NoError(t, err)
	assert.Equal(t, commandList, out)
	assert.Zero(t, store.LoadCalls)
}

func TestNewRootCommand_UnknownCommandStrict(t *testing.T) {
	c := newTestContainer(testutil.NewMockTaskStore())

	_, _, err := execute(c, "--strict", "frobnicate")

	var exitErr *ExitError
	assert.ErrorAs(t, err, &exitErr)
}

func TestNewRootCommand_WithHelp_ShowsHelp(t *testing.T) {
	out, _, err := execute(newTestContainer(testutil.NewMockTaskStore()), "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "task-cli keeps a list of tasks")
	assert.Contains(t, out, "Task Commands:")
	assert.Contains(t, out, "mark-in-progress")
	assert.Contains(t, out, "Store Commands:")
	assert.NotContains(t, out, "completion")
}

func TestNewRootCommand_Version(t *testing.T) {
	out, _, err := execute(newTestContainer(testutil.NewMockTaskStore()), "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "test")
}

func TestNewRootCommand_FileFlagRebindsStore(t *testing.T) {
	original := testutil.NewMockTaskStore()
	c := newTestContainer(original)
	path := filepath.Join(t.TempDir(), "elsewhere.yaml")

	out, _, err := execute(c, "--store", "yaml", "--file", path, "add", "Moved")

	require.NoError(t, err)
	assert.Equal(t, "Task added successfully (ID: 1)\n", out)
	assert.Zero(t, original.SaveCalls)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "- id: 1\n"), string(data))
	assert.Equal(t, path, c.Store.Path())
}

func TestNewRootCommand_GlobalFlagsBeforeOperandCommand(t *testing.T) {
	c := newTestContainer(testutil.NewMockTaskStore())
	path := filepath.Join(t.TempDir(), "tasks.json")

	out, _, err := execute(c, "--strict", "-f", path, "delete", "-1")

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, "Error: Task with ID -1 not found.\n", out)
	assert.Equal(t, path, c.Store.Path())
}

func TestNewRootCommand_FlagsAfterCommandWithOwnFlags(t *testing.T) {
	store := testutil.NewMockTaskStore(task(1, "a", domain.StatusTodo))
	c := newTestContainer(store)

	out, _, err := execute(c, "list", "done", "--strict")

	require.NoError(t, err)
	assert.Contains(t, out, `No tasks with status "done" found.`)
}

func TestNewRootCommand_UnknownStoreFlag(t *testing.T) {
	c := newTestContainer(testutil.NewMockTaskStore())

	_, _, err := execute(c, "--store", "postgres", "list")

	assert.ErrorIs(t, err, domain.ErrUnknownStore)
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	c := newTestContainer(testutil.NewMockTaskStore())
	c.AppConfig.Warnings = []string{"unknown section: colour"}

	_, errOut, err := execute(c, "list")

	require.NoError(t, err)
	assert.Equal(t, "Warning: unknown section: colour\n", errOut)
}

func TestNewRootCommand_NilContainer(t *testing.T) {
	out, _, err := execute(nil)

	require.NoError(t, err)
	assert.Equal(t, commandList, out)
}
