package notify

import (
	"bytes"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niri-workspaces/internal/testutil"
)

type recorder struct {
	installed map[string]bool
	fail      map[string]bool
	ran       [][]string
}

func (r *recorder) lookPath(name string) (string, error) {
	if r.installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", exec.ErrNotFound
}

func (r *recorder) run(cmd *exec.Cmd) error {
	r.ran = append(r.ran, cmd.Args)
	if r.fail[filepath.Base(cmd.Path)] || r.fail[cmd.Args[0]] {
		return errors.New("exit status 1")
	}
	return nil
}

func newTestService(command string, r *recorder, log *testutil.Logger) (*NotifyService, *bytes.Buffer) {
	var stderr bytes.Buffer
	n := NewNotifyService(command, log)
	n.lookPath = r.lookPath
	n.run = r.run
	n.stderr = &stderr
	n.terminal = func() bool { return false }
	return n, &stderr
}

func TestShowPrefersNotifyCommand(t *testing.T) {
	r := &recorder{installed: map[string]bool{"notify-send": true}}
	n, _ := newTestService("my-notify", r, &testutil.Logger{})

	require.NoError(t, n.Show("niri-workspaces", "it's gone", Error))
	require.Len(t, r.ran, 1)
	assert.Equal(t, []string{"sh", "-c", `my-notify "$1" "$2"`, "sh", "ERROR", "it's gone"}, r.ran[0])
}

func TestShowFallsBackToSystemTool(t *testing.T) {
	r := &recorder{
		installed: map[string]bool{"notify-send": true},
		fail:      map[string]bool{"sh": true},
	}
	log := &testutil.Logger{}
	n, _ := newTestService("broken", r, log)

	require.NoError(t, n.Show("niri-workspaces", "sync failed", Error))
	require.Len(t, r.ran, 2)
	assert.Equal(t, []string{"/usr/bin/notify-send", "-a", "niri-workspaces", "-u", "critical", "niri-workspaces", "sync failed"}, r.ran[1])
	assert.True(t, log.Contains("warn", "Custom notification command failed"))
}

func TestShowToolOrder(t *testing.T) {
	r := &recorder{installed: map[string]bool{"dunstify": true, "notify-send": true}}
	n, _ := newTestService("", r, &testutil.Logger{})

	require.NoError(t, n.Show("t", "m", Info))
	require.Len(t, r.ran, 1)
	assert.Equal(t, "/usr/bin/dunstify", r.ran[0][0])
	assert.Contains(t, r.ran[0], "normal")
}

func TestShowTerminalFallback(t *testing.T) {
	r := &recorder{}
	n, stderr := newTestService("", r, &testutil.Logger{})
	n.terminal = func() bool { return true }

	require.NoError(t, n.Show("niri-workspaces", "lost connection", Error))
	assert.Contains(t, stderr.String(), "niri-workspaces: lost connection")
}

func TestShowNothingAvailable(t *testing.T) {
	n, _ := newTestService("", &recorder{}, &testutil.Logger{})
	assert.Error(t, n.Show("t", "m", Error))
}
