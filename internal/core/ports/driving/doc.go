// Package driving defines the inbound ports of the core.
// The CLI and TUI adapters drive the application exclusively through
// these interfaces.
package driving
