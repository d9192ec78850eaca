// Package ports defines the interfaces that connect the application layer
// to infrastructure adapters.
//
// # Port Interfaces
//
//   - [RegistryStore]: loads and saves the daemon registry
//   - [ArtifactSource]: reads artifact and manifest bytes
//   - [Dialer]: opens the connection to a daemon
//   - [Messenger]: prints user-facing confirmation and error lines
//   - [Logger]: structured diagnostics
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters under internal/adapters implement them with the file system,
// TCP sockets, lipgloss and zerolog.
package ports
