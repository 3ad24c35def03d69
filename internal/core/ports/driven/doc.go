// Package driven defines the outbound ports of the core.
// Adapters (filesystem, SQLite, TOML config) implement these interfaces;
// the core depends only on the abstractions so it can be tested with
// in-memory substitutes.
package driven
