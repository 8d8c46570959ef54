// Package engine keeps the workspace view in sync with niri: it queries the
// full state once, subscribes to the event stream and re-queries on every
// event that can change the icons.
package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"niri-workspaces/internal/niri"
	"niri-workspaces/internal/workspaces"
	"niri-workspaces/pkg/config"
	"niri-workspaces/pkg/core"
)

// State is the sync loop's position in its lifecycle.
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateInitialSync
	StateSubscribed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateInitialSync:
		return "initial-sync"
	case StateSubscribed:
		return "subscribed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Conn is one connection to niri. The engine uses one for queries and a
// second one for the event stream.
type Conn interface {
	Workspaces() ([]niri.Workspace, error)
	Windows() ([]niri.Window, error)
	EventStream() error
	NextEvent() (niri.Event, error)
	Close() error
}

// DialFunc opens a new connection to niri.
type DialFunc func() (Conn, error)

// ErrAlreadyStarted is returned by Run when the engine has run before.
var ErrAlreadyStarted = errors.New("engine already started")

// refreshEvents are the event kinds that can change a workspace's icons.
var refreshEvents = map[niri.EventKind]bool{
	niri.EventWindowOpenedOrChanged: true,
	niri.EventWindowClosed:          true,
	niri.EventWindowLayoutsChanged:  true,
	niri.EventWindowFocusChanged:    true,
	niri.EventWorkspacesChanged:     true,
}

// TriggersRefresh reports whether an event of this kind causes a re-query.
func TriggersRefresh(kind niri.EventKind) bool {
	return refreshEvents[kind]
}

// Engine runs the sync loop.
type Engine struct {
	cfg       config.Config
	dial      DialFunc
	out       *Queue
	log       core.Logger
	reconnect ReconnectPolicy
	sleep     func(time.Duration)

	state   atomic.Int32
	started atomic.Bool
}

type Option func(*Engine)

// WithReconnect sets the policy applied after a failed session.
func WithReconnect(p ReconnectPolicy) Option {
	return func(e *Engine) {
		e.reconnect = p
	}
}

// New creates an engine that delivers snapshots to out. The configuration is
// copied; later changes to cfg are not seen by the engine.
func New(cfg config.Config, dial DialFunc, out *Queue, log core.Logger, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg.Clone(),
		dial:      dial,
		out:       out,
		log:       log,
		reconnect: FailFast{},
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

func (e *Engine) setState(s State) {
	prev := State(e.state.Swap(int32(s)))
	if prev != s {
		e.log.Debug("Sync state changed", "from", prev.String(), "to", s.String())
	}
}

// Start runs the engine on its own goroutine. The returned channel receives
// the terminal error and is then closed.
func (e *Engine) Start() <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := e.Run()
		if err != nil {
			e.log.Error("Workspace sync stopped", err)
		}
		done <- err
	}()
	return done
}

// Run blocks for the lifetime of the sync loop and returns the error that
// ended it. The queue is closed on return.
func (e *Engine) Run() error {
	if !e.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	defer e.out.Close()

	attempt := 0
	for {
		subscribed, err := e.session()
		if errors.Is(err, ErrDeliveryClosed) {
			e.setState(StateFailed)
			return err
		}
		if subscribed {
			attempt = 0
		}
		attempt++

		delay, retry := e.reconnect.Next(attempt, err)
		if !retry {
			e.setState(StateFailed)
			return err
		}
		e.log.Warn("Workspace sync failed, reconnecting",
			"error", err.Error(),
			"attempt", attempt,
			"delay", delay.String())
		e.sleep(delay)
	}
}

// session runs one connect/sync/subscribe cycle. It reports whether the
// event subscription was established before the failure.
func (e *Engine) session() (bool, error) {
	e.setState(StateConnecting)

	cmd, err := e.dial()
	if err != nil {
		return false, fmt.Errorf("failed to open command connection: %w", err)
	}
	defer cmd.Close()

	events, err := e.dial()
	if err != nil {
		return false, fmt.Errorf("failed to open event connection: %w", err)
	}
	defer events.Close()

	e.setState(StateInitialSync)
	if err := e.refresh(cmd); err != nil {
		return false, fmt.Errorf("initial sync: %w", err)
	}

	if err := events.EventStream(); err != nil {
		return false, fmt.Errorf("failed to subscribe to events: %w", err)
	}
	e.setState(StateSubscribed)
	e.log.Info("Subscribed to niri event stream")

	for {
		ev, err := events.NextEvent()
		if err != nil {
			return true, fmt.Errorf("failed to read event: %w", err)
		}
		if !TriggersRefresh(ev.Kind) {
			continue
		}
		e.log.Debug("Refreshing workspaces", "event", string(ev.Kind))
		if err := e.refresh(cmd); err != nil {
			return true, err
		}
	}
}

// refresh queries workspaces then windows, aggregates and delivers one
// snapshot.
func (e *Engine) refresh(cmd Conn) error {
	ws, err := cmd.Workspaces()
	if err != nil {
		return fmt.Errorf("failed to query workspaces: %w", err)
	}
	windows, err := cmd.Windows()
	if err != nil {
		return fmt.Errorf("failed to query windows: %w", err)
	}

	snapshot := workspaces.Aggregate(&e.cfg, ws, windows, e.log)
	if err := e.out.Push(snapshot); err != nil {
		return fmt.Errorf("failed to deliver snapshot: %w", err)
	}
	return nil
}
