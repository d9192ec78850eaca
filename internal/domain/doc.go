// Package domain contains the core entities and value objects for joker.
//
// This package is the innermost layer of the application. It has no
// dependencies on infrastructure concerns (sockets, file system, logging)
// and contains only the registry rules and artifact model.
//
// # Entities
//
//   - [Daemon]: a named remote daemon and its resolved address
//   - [Registry]: every known daemon plus the active one
//   - [Artifact]: a container binary and its manifest, shipped as a unit
//   - [ShipState]: the progress of a single run invocation
//
// # Errors
//
// Every failure surfaced by joker carries a [Kind]. Call sites branch on
// the kind with [KindOf] or errors.Is against the Err* sentinels rather
// than on message text.
package domain
