// Package niritest provides a fake niri IPC server for tests.
package niritest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"niri-workspaces/internal/niri"
)

// Server answers Workspaces, Windows, EventStream and FocusWorkspace
// requests on a unix socket in a temporary directory.
type Server struct {
	Path string

	ln net.Listener
	wg sync.WaitGroup

	mu         sync.Mutex
	workspaces []niri.Workspace
	windows    []niri.Window
	overrides  map[string]string
	requests   []string
	focused    []uint64
	conns      map[net.Conn]struct{}
	streams    []chan string
	closed     bool
}

// NewServer starts a server and registers its shutdown with t.Cleanup.
func NewServer(t testing.TB) *Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "niri.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("failed to listen on %s: %v", path, err)
	}

	s := &Server{
		Path:      path,
		ln:        ln,
		overrides: make(map[string]string),
		conns:     make(map[net.Conn]struct{}),
	}
	s.wg.Add(1)
	go s.accept()
	t.Cleanup(s.Close)
	return s
}

// SetState replaces the workspaces and windows served to queries.
func (s *Server) SetState(workspaces []niri.Workspace, windows []niri.Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workspaces = workspaces
	s.windows = windows
}

// Override makes the server answer the named request with a raw reply line.
func (s *Server) Override(request, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[request] = reply
}

// Emit sends a raw event line to every connected event stream.
func (s *Server) Emit(event string) {
	s.mu.Lock()
	streams := append([]chan string(nil), s.streams...)
	s.mu.Unlock()
	for _, ch := range streams {
		ch <- event
	}
}

// Requests returns the names of the requests received so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Focused returns the workspace ids of the FocusWorkspace actions received.
func (s *Server) Focused() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint64(nil), s.focused...)
}

// WaitStreams blocks until n event streams are subscribed or the timeout
// elapses.
func (s *Server) WaitStreams(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		got := len(s.streams)
		s.mu.Unlock()
		if got >= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

// DropConnections closes every open client connection.
func (s *Server) DropConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.Close()
	}
}

// Close stops the server and closes all connections.
func (s *Server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.ln.Close()
	for c := range s.conns {
		c.Close()
	}
	for _, ch := range s.streams {
		close(ch)
	}
	s.streams = nil
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Server) accept() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *Server) serve(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		name, reply := s.handle(scanner.Bytes())
		if _, err := fmt.Fprintln(conn, reply); err != nil {
			return
		}
		if name == "EventStream" && reply == `{"Ok":"Handled"}` {
			s.stream(conn)
			return
		}
	}
}

func (s *Server) stream(conn net.Conn) {
	ch := make(chan string, 64)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.streams = append(s.streams, ch)
	s.mu.Unlock()
	defer s.removeStream(ch)

	for event := range ch {
		if _, err := fmt.Fprintln(conn, event); err != nil {
			return
		}
	}
}

func (s *Server) removeStream(ch chan string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.streams {
		if c == ch {
			s.streams = append(s.streams[:i], s.streams[i+1:]...)
			return
		}
	}
}

func (s *Server) handle(line []byte) (string, string) {
	name := requestName(line)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, name)

	if reply, ok := s.overrides[name]; ok {
		return name, reply
	}

	switch name {
	case "Workspaces":
		return name, okReply("Workspaces", s.workspaces)
	case "Windows":
		return name, okReply("Windows", s.windows)
	case "EventStream":
		return name, `{"Ok":"Handled"}`
	case "FocusWorkspace":
		var req struct {
			Action struct {
				FocusWorkspace struct {
					Reference struct {
						ID uint64 `json:"Id"`
					} `json:"reference"`
				} `json:"FocusWorkspace"`
			} `json:"Action"`
		}
		if err := json.Unmarshal(line, &req); err != nil {
			return name, `{"Err":"malformed action"}`
		}
		s.focused = append(s.focused, req.Action.FocusWorkspace.Reference.ID)
		return name, `{"Ok":"Handled"}`
	default:
		return name, `{"Err":"unknown request"}`
	}
}

func requestName(line []byte) string {
	var unit string
	if err := json.Unmarshal(line, &unit); err == nil {
		return unit
	}
	var action struct {
		Action map[string]json.RawMessage `json:"Action"`
	}
	if err := json.Unmarshal(line, &action); err == nil {
		for k := range action.Action {
			return k
		}
	}
	return string(line)
}

func okReply(kind string, payload interface{}) string {
	data, err := json.Marshal(map[string]interface{}{
		"Ok": map[string]interface{}{kind: payload},
	})
	if err != nil {
		return fmt.Sprintf(`{"Err":%q}`, err.Error())
	}
	return string(data)
}
