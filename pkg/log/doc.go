// Package log provides the logging abstraction used by joker components.
//
// The application layer depends only on the [Logger] interface. [New]
// builds a zerolog-backed logger from a [Config]; [NewNoopLogger] discards
// everything and is what tests and library callers get by default.
//
//	logger := log.New(log.Config{Level: "debug", Format: "console", Output: os.Stderr})
//	logger.Info("dialing daemon", log.String("daemon", "west"))
//
// Implement Logger to route joker's diagnostics into another library.
package log
