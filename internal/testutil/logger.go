// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is one recorded log call.
type Entry struct {
	Level  string
	Msg    string
	Err    error
	Fields map[string]interface{}
}

// Logger records log calls so tests can assert on them. It satisfies
// core.Logger.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
}

func (l *Logger) record(level, msg string, err error, kv []interface{}) {
	fields := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			fields[key] = kv[i+1]
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg, Err: err, Fields: fields})
}

func (l *Logger) Debug(msg string, kv ...interface{}) { l.record("debug", msg, nil, kv) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.record("info", msg, nil, kv) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.record("warn", msg, nil, kv) }
func (l *Logger) Error(msg string, err error, kv ...interface{}) {
	l.record("error", msg, err, kv)
}

// Entries returns a copy of the recorded entries.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Level returns the recorded entries of one level.
func (l *Logger) Level(level string) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether some entry of the level mentions substr in its
// message or field values.
func (l *Logger) Contains(level, substr string) bool {
	for _, e := range l.Level(level) {
		if strings.Contains(e.Msg, substr) {
			return true
		}
		for _, v := range e.Fields {
			if strings.Contains(fmt.Sprint(v), substr) {
				return true
			}
		}
	}
	return false
}
