package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niri-workspaces/internal/niri"
	"niri-workspaces/internal/niri/niritest"
	"niri-workspaces/internal/testutil"
)

func socketDial(path string) DialFunc {
	return func() (Conn, error) {
		s, err := niri.Connect(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func countRequests(srv *niritest.Server, name string) int {
	n := 0
	for _, r := range srv.Requests() {
		if r == name {
			n++
		}
	}
	return n
}

func TestEngineOverSocket(t *testing.T) {
	srv := niritest.NewServer(t)
	srv.SetState(
		[]niri.Workspace{{ID: 1, Idx: 1, IsFocused: true, IsActive: true}},
		[]niri.Window{{ID: 10, AppID: strPtr("Firefox"), WorkspaceID: idPtr(1)}},
	)

	q := NewQueue()
	e := New(testConfig(), socketDial(srv.Path), q, &testutil.Logger{})
	done := e.Start()

	s, ok := popWithin(t, q, 2*time.Second)
	require.True(t, ok)
	assert.Equal(t, "1: F", s[0].Label())
	require.True(t, srv.WaitStreams(1, 2*time.Second))

	srv.Emit(`{"KeyboardLayoutSwitched":{"idx":1}}`)
	srv.SetState(
		[]niri.Workspace{{ID: 1, Idx: 1, IsFocused: true, IsActive: true}},
		[]niri.Window{
			{ID: 10, AppID: strPtr("Firefox"), WorkspaceID: idPtr(1)},
			{ID: 11, AppID: strPtr("kitty"), WorkspaceID: idPtr(1), IsFocused: true},
		},
	)
	srv.Emit(`{"WindowOpenedOrChanged":{"window":{"id":11}}}`)

	s, ok = popWithin(t, q, 2*time.Second)
	require.True(t, ok)
	assert.Equal(t, "1: F [K]", s[0].Label())
	assert.Equal(t, 2, countRequests(srv, "Workspaces"))
	assert.Equal(t, 0, q.Len())

	srv.DropConnections()
	err := waitDone(t, done)
	require.Error(t, err)
	assert.Equal(t, StateFailed, e.State())
}

func TestEngineOverSocketRejectedQuery(t *testing.T) {
	srv := niritest.NewServer(t)
	srv.Override("Windows", `{"Err":"compositor busy"}`)

	e := New(testConfig(), socketDial(srv.Path), NewQueue(), &testutil.Logger{})
	err := e.Run()

	var rejected *niri.ReplyError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "compositor busy", rejected.Message)
	assert.Equal(t, StateFailed, e.State())
}
