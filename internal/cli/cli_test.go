package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"niri-workspaces/internal/engine"
	"niri-workspaces/internal/niri"
	"niri-workspaces/internal/niri/niritest"
	"niri-workspaces/internal/waybar"
	"niri-workspaces/internal/workspaces"
	"niri-workspaces/pkg/logger"
)

func strPtr(s string) *string { return &s }
func idPtr(id uint64) *uint64 { return &id }

type testRun struct {
	root *cobra.Command
	out  *bytes.Buffer
}

func prepare(t *testing.T, args ...string) testRun {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(niri.SocketEnv, "")

	root := NewRootCommand(Options{LogOptions: []logger.Option{
		logger.WithoutFile(),
		logger.WithWriter(io.Discard),
	}})
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return testRun{root: root, out: out}
}

func (r testRun) execute() (string, error) {
	err := r.root.Execute()
	return r.out.String(), err
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return prepare(t, args...).execute()
}

func testServer(t *testing.T) *niritest.Server {
	srv := niritest.NewServer(t)
	srv.SetState(
		[]niri.Workspace{
			{ID: 20, Idx: 2, Name: strPtr("mail")},
			{ID: 10, Idx: 1, IsFocused: true, IsActive: true},
		},
		[]niri.Window{
			{ID: 1, AppID: strPtr("firefox"), WorkspaceID: idPtr(10)},
			{ID: 2, AppID: strPtr("thunderbird"), WorkspaceID: idPtr(20)},
		},
	)
	return srv
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCommand(Options{})
	found := make(map[string]bool)
	for _, c := range root.Commands() {
		found[c.Name()] = true
	}
	for _, name := range []string{"run", "snapshot", "focus", "icons"} {
		assert.True(t, found[name], "expected subcommand %q", name)
	}
	assert.Equal(t, Version, root.Version)

	for _, flag := range []string{"config", "debug", "socket"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "expected flag --%s", flag)
	}
}

func TestSnapshotJSON(t *testing.T) {
	srv := testServer(t)

	out, err := execute(t, "--socket", srv.Path, "snapshot", "--format", "json")
	require.NoError(t, err)

	var views []workspaces.View
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	assert.Equal(t, uint64(10), views[0].ID)
	assert.Equal(t, "\uf269", views[0].Icons)
	assert.True(t, views[0].IsFocused)
	assert.Equal(t, "mail", views[1].Name)
}

func TestSnapshotYAML(t *testing.T) {
	srv := testServer(t)

	out, err := execute(t, "--socket", srv.Path, "snapshot")
	require.NoError(t, err)

	var views []workspaces.View
	require.NoError(t, yaml.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	assert.Equal(t, uint8(2), views[1].Idx)
}

func TestSnapshotUsesNiriSocketEnv(t *testing.T) {
	srv := testServer(t)

	r := prepare(t, "snapshot", "--format", "json")
	t.Setenv(niri.SocketEnv, srv.Path)

	out, err := r.execute()
	require.NoError(t, err)
	assert.Contains(t, out, `"id": 20`)
}

func TestSnapshotBadFormat(t *testing.T) {
	_, err := execute(t, "snapshot", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFocus(t *testing.T) {
	srv := testServer(t)

	_, err := execute(t, "--socket", srv.Path, "focus", "20")
	require.NoError(t, err)
	assert.Equal(t, []uint64{20}, srv.Focused())

	srv.Override("FocusWorkspace", `{"Err":"no such workspace"}`)
	_, err = execute(t, "--socket", srv.Path, "focus", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to focus workspace 99")
}

func TestFocusInvalidID(t *testing.T) {
	_, err := execute(t, "focus", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid workspace id "abc"`)
}

func TestIconsWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window-icons:
  foot: "T"
window-icon-default: "?"
`), 0644))

	out, err := execute(t, "--config", path, "icons", "--format", "json")
	require.NoError(t, err)

	var table IconTable
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	assert.Equal(t, "?", table.Default)
	assert.Equal(t, "T", table.Icons["foot"])
	assert.Equal(t, "\uf269", table.Icons["firefox"])
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "icons")
	require.Error(t, err)
}

func TestRunBadOutput(t *testing.T) {
	_, err := execute(t, "run", "--output", "tray")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output")
}

func TestRunWithoutSession(t *testing.T) {
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")
	t.Setenv("SWAYSOCK", "")
	t.Setenv("XDG_CURRENT_DESKTOP", "")
	t.Setenv("XDG_SESSION_TYPE", "")

	_, err := execute(t, "run")
	assert.ErrorIs(t, err, niri.ErrNoSocket)
}

func TestRunWaybar(t *testing.T) {
	srv := testServer(t)

	type result struct {
		out string
		err error
	}
	run := prepare(t, "--socket", srv.Path, "run")
	done := make(chan result, 1)
	go func() {
		out, err := run.execute()
		done <- result{out, err}
	}()

	require.True(t, srv.WaitStreams(1, 2*time.Second))
	srv.DropConnections()

	var r result
	select {
	case r = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after niri went away")
	}
	require.Error(t, r.err)

	lines := strings.Split(strings.TrimSpace(r.out), "\n")
	require.NotEmpty(t, lines)
	var first waybar.Output
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "1: \uf269 2 mail: \uf0e0", first.Text)
}

func TestSyncError(t *testing.T) {
	pending := make(chan error, 1)
	assert.NoError(t, syncError(pending), "a running loop is not an error")

	failed := make(chan error, 1)
	failed <- io.EOF
	assert.ErrorIs(t, syncError(failed), io.EOF)

	detached := make(chan error, 1)
	detached <- fmt.Errorf("initial sync: %w", engine.ErrDeliveryClosed)
	assert.NoError(t, syncError(detached))
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "Lost connection to niri: EOF", failureMessage(io.EOF))

	rejected := fmt.Errorf("failed to query windows: %w", &niri.ReplyError{Request: "Windows", Message: "busy"})
	assert.True(t, strings.HasPrefix(failureMessage(rejected), "niri sent an unexpected reply: "))
}
