package engine

import (
	"sync"

	"niri-workspaces/pkg/core"
)

// Focuser is a connection able to focus a workspace.
type Focuser interface {
	FocusWorkspace(id uint64) error
	Close() error
}

// Activator focuses workspaces on behalf of the presentation layer. Every
// request uses its own short-lived connection so it never touches the sync
// loop's connections. Outcomes are only logged.
type Activator struct {
	dial func() (Focuser, error)
	log  core.Logger
	wg   sync.WaitGroup
}

func NewActivator(dial func() (Focuser, error), log core.Logger) *Activator {
	return &Activator{dial: dial, log: log}
}

// Activate focuses the workspace in the background.
func (a *Activator) Activate(id uint64) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.Focus(id)
	}()
}

// Focus focuses the workspace and waits for niri's answer. It reports
// whether the request succeeded.
func (a *Activator) Focus(id uint64) bool {
	conn, err := a.dial()
	if err != nil {
		a.log.Error("Failed to connect to niri socket", err, "workspace_id", id)
		return false
	}
	defer conn.Close()

	if err := conn.FocusWorkspace(id); err != nil {
		a.log.Error("Failed to switch workspace", err, "workspace_id", id)
		return false
	}
	a.log.Debug("Switched workspace", "workspace_id", id)
	return true
}

// Wait blocks until every background activation has finished.
func (a *Activator) Wait() {
	a.wg.Wait()
}
