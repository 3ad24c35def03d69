// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The reading engine lives here: it owns the decode, normalise and
// chunk pipeline and is the only stateful service.
package services
