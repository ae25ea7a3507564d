// Package core defines the shared language of the Feedlift system.
//
// This package contains:
//   - Domain entities (Shop, Product, Override, FeedSnapshot)
//   - Validation result types (Severity, Issue, Outcome)
//   - The Store interface implemented by internal/state
//
// The Golden Rule: pkg/core imports ONLY the stdlib.
// All other packages depend on core, not the reverse.
package core
