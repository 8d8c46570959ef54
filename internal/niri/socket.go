package niri

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
)

// SocketEnv names the environment variable niri exports with its socket path.
const SocketEnv = "NIRI_SOCKET"

var (
	// ErrNoSocket means niri's socket path could not be determined.
	ErrNoSocket = errors.New(SocketEnv + " is not set, is niri running?")
	// ErrStreaming is returned by Send once the socket carries an event stream.
	ErrStreaming = errors.New("socket is reading the event stream")
)

// SocketPath returns the socket path exported by the running niri instance.
func SocketPath() (string, error) {
	path := os.Getenv(SocketEnv)
	if path == "" {
		return "", ErrNoSocket
	}
	return path, nil
}

// Socket is one connection to niri. Requests and replies alternate on it
// until EventStream is sent, after which it only yields events. A Socket is
// not safe for concurrent use.
type Socket struct {
	conn      net.Conn
	reader    *bufio.Reader
	streaming bool
}

// Connect dials niri's socket at path.
func Connect(path string) (*Socket, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to niri socket %s: %w", path, err)
	}
	return NewSocket(conn), nil
}

// NewSocket wraps an established connection.
func NewSocket(conn net.Conn) *Socket {
	return &Socket{conn: conn, reader: bufio.NewReader(conn)}
}

// Send writes one request and reads its reply. A reply carrying Err is
// returned as *ReplyError.
func (s *Socket) Send(req Request) (Reply, error) {
	if s.streaming {
		return Reply{}, ErrStreaming
	}

	data, err := json.Marshal(req)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to encode %s request: %w", req.Name, err)
	}
	data = append(data, '\n')
	if _, err := s.conn.Write(data); err != nil {
		return Reply{}, fmt.Errorf("failed to send %s request: %w", req.Name, err)
	}

	line, err := s.readLine()
	if err != nil {
		return Reply{}, fmt.Errorf("failed to read %s reply: %w", req.Name, err)
	}
	return decodeReply(req, line)
}

// Workspaces queries the workspace list.
func (s *Socket) Workspaces() ([]Workspace, error) {
	var workspaces []Workspace
	if err := s.query(RequestWorkspaces, ReplyWorkspaces, &workspaces); err != nil {
		return nil, err
	}
	return workspaces, nil
}

// Windows queries the window list.
func (s *Socket) Windows() ([]Window, error) {
	var windows []Window
	if err := s.query(RequestWindows, ReplyWindows, &windows); err != nil {
		return nil, err
	}
	return windows, nil
}

func (s *Socket) query(req Request, want string, out interface{}) error {
	reply, err := s.Send(req)
	if err != nil {
		return err
	}
	if reply.Kind != want {
		return &UnexpectedReplyError{Request: req.Name, Want: want, Got: reply.Kind}
	}
	if err := json.Unmarshal(reply.Payload, out); err != nil {
		return &UnexpectedReplyError{Request: req.Name, Want: want, Got: "malformed " + want + ": " + err.Error()}
	}
	return nil
}

// EventStream switches the socket to event streaming. niri must acknowledge
// with Handled.
func (s *Socket) EventStream() error {
	if err := s.expectHandled(RequestEventStream); err != nil {
		return err
	}
	s.streaming = true
	return nil
}

// NextEvent blocks until the next event arrives.
func (s *Socket) NextEvent() (Event, error) {
	if !s.streaming {
		return Event{}, errors.New("EventStream has not been requested on this socket")
	}
	line, err := s.readLine()
	if err != nil {
		return Event{}, err
	}
	return decodeEvent(line)
}

// FocusWorkspace asks niri to focus the workspace with the given id.
func (s *Socket) FocusWorkspace(id uint64) error {
	return s.expectHandled(FocusWorkspaceRequest(id))
}

func (s *Socket) expectHandled(req Request) error {
	reply, err := s.Send(req)
	if err != nil {
		return err
	}
	if reply.Kind != ReplyHandled {
		return &UnexpectedReplyError{Request: req.Name, Want: ReplyHandled, Got: reply.Kind}
	}
	return nil
}

// Close closes the connection.
func (s *Socket) Close() error {
	return s.conn.Close()
}

func (s *Socket) readLine() ([]byte, error) {
	line, err := s.reader.ReadBytes('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return line[:len(line)-1], nil
}
