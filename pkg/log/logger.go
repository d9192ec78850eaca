package log

import "time"

// Logger is what the registry and shipper services log through. Shipments
// attach run_id and daemon to every line; the CLI wires the zerolog adapter
// and library callers get the no-op logger unless they pass their own.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is one key-value pair on a log line.
type Field struct {
	Key   string
	Value interface{}
}

// String is used for daemon names, addresses and ship states.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int is used for artifact indexes and counts.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 is used for byte counts on the wire.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Bool is used for settings switches such as no_color.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration is used for dial latency and configured timeouts.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Err attaches err under the "error" key.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// Strings is used for the names of artifacts sent before a failure.
func Strings(key string, value []string) Field {
	return Field{Key: key, Value: value}
}
