package niri

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Request is one IPC request. Unit requests encode as a bare JSON string,
// actions as an externally tagged object.
type Request struct {
	Name string
	body interface{}
}

func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.body)
}

var (
	RequestWorkspaces  = Request{Name: "Workspaces", body: "Workspaces"}
	RequestWindows     = Request{Name: "Windows", body: "Windows"}
	RequestEventStream = Request{Name: "EventStream", body: "EventStream"}
)

// FocusWorkspaceRequest asks niri to focus the workspace with the given id.
func FocusWorkspaceRequest(id uint64) Request {
	return Request{
		Name: "FocusWorkspace",
		body: map[string]interface{}{
			"Action": map[string]interface{}{
				"FocusWorkspace": map[string]interface{}{
					"reference": map[string]uint64{"Id": id},
				},
			},
		},
	}
}

// Reply kinds niri answers with.
const (
	ReplyHandled    = "Handled"
	ReplyWorkspaces = "Workspaces"
	ReplyWindows    = "Windows"
)

// Reply is a successful response. Kind is the tag of the Ok variant.
type Reply struct {
	Kind    string
	Payload json.RawMessage
}

// ReplyError is returned when niri answers a request with Err.
type ReplyError struct {
	Request string
	Message string
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("niri rejected %s request: %s", e.Request, e.Message)
}

// UnexpectedReplyError is a protocol violation: the reply does not have the
// shape the request calls for.
type UnexpectedReplyError struct {
	Request string
	Want    string
	Got     string
}

func (e *UnexpectedReplyError) Error() string {
	return fmt.Sprintf("unexpected reply to %s request: want %s, got %s", e.Request, e.Want, e.Got)
}

// IsProtocolError reports whether err is a reply niri should never send.
func IsProtocolError(err error) bool {
	var unexpected *UnexpectedReplyError
	var rejected *ReplyError
	return errors.As(err, &unexpected) || errors.As(err, &rejected)
}

func decodeReply(req Request, line []byte) (Reply, error) {
	var raw struct {
		Ok  json.RawMessage `json:"Ok"`
		Err *string         `json:"Err"`
	}
	if err := json.Unmarshal(line, &raw); err != nil {
		return Reply{}, &UnexpectedReplyError{Request: req.Name, Want: "reply object", Got: truncate(line)}
	}
	if raw.Err != nil {
		return Reply{}, &ReplyError{Request: req.Name, Message: *raw.Err}
	}
	if len(raw.Ok) == 0 {
		return Reply{}, &UnexpectedReplyError{Request: req.Name, Want: "Ok or Err", Got: truncate(line)}
	}

	var unit string
	if err := json.Unmarshal(raw.Ok, &unit); err == nil {
		return Reply{Kind: unit}, nil
	}

	kind, payload, err := decodeTagged(raw.Ok)
	if err != nil {
		return Reply{}, &UnexpectedReplyError{Request: req.Name, Want: "tagged response", Got: truncate(line)}
	}
	return Reply{Kind: kind, Payload: payload}, nil
}

func decodeEvent(line []byte) (Event, error) {
	kind, payload, err := decodeTagged(line)
	if err != nil {
		return Event{}, fmt.Errorf("malformed event %s: %w", truncate(line), err)
	}
	return Event{Kind: EventKind(kind), Payload: payload}, nil
}

// decodeTagged decodes an externally tagged enum: an object with exactly one
// key naming the variant.
func decodeTagged(data []byte) (string, json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return "", nil, err
	}
	if len(m) != 1 {
		return "", nil, fmt.Errorf("expected exactly one variant, got %d", len(m))
	}
	for k, v := range m {
		return k, v, nil
	}
	return "", nil, nil
}

func truncate(b []byte) string {
	const limit = 120
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
