// Package logging provides a minimal logging interface and adapters for the
// server.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that every component uses for observability. This package
// includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - ServerLogger with contextual helpers (component, account) and domain
//     specific helpers for tool and upstream API calls
//
// All built-in handlers write to stderr by default because the server runs on
// a stdio JSON-RPC transport and stdout belongs to the protocol.
package logging
