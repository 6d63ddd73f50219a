package logging

import (
	"encoding/json"
	"io"
	"sync"
)

// Sink receives log entries. Implementations must be safe for concurrent
// use. The Logger treats sinks as opaque; any destination (stdout, file,
// object storage, fan-out) plugs in here.
type Sink interface {
	Write(e Entry) error
	Close() error
}

// ConsoleSink writes one JSON object per line to an io.Writer.
type ConsoleSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewConsoleSink creates a sink encoding entries as JSON lines to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{enc: json.NewEncoder(w)}
}

func (s *ConsoleSink) Write(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(encodeEntry(e))
}

// Close is a no-op; the sink does not own the writer.
func (s *ConsoleSink) Close() error { return nil }

// MultiSink fans entries out to several sinks.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink that writes to every given sink.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Write delivers the entry to all sinks and returns the first error.
// Later sinks still receive the entry after an earlier failure.
func (s *MultiSink) Write(e Entry) error {
	var first error
	for _, sink := range s.sinks {
		if err := sink.Write(e); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close closes all sinks and returns the first error.
func (s *MultiSink) Close() error {
	var first error
	for _, sink := range s.sinks {
		if err := sink.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// encodeEntry flattens an Entry into a single JSON object. Reserved keys
// win over field keys of the same name.
func encodeEntry(e Entry) map[string]any {
	obj := make(map[string]any, len(e.Fields)+3)
	for k, v := range e.Fields {
		obj[k] = v
	}
	obj["ts"] = e.Time.Format(timeFormat)
	obj["level"] = e.Level.String()
	obj["msg"] = e.Message
	return obj
}

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00" // time.RFC3339Nano

var (
	_ Sink = (*ConsoleSink)(nil)
	_ Sink = (*MultiSink)(nil)
)
