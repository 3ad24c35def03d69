// Package domain contains the core business types for novella.
// It has no dependencies on adapters or external libraries so the
// reading engine can be tested without any platform storage.
package domain
