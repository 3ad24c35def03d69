// Package memory provides in-memory implementations of the driven
// storage ports. They back tests and ephemeral sessions; the real
// application uses the sqlite package.
package memory
