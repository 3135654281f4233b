// Package store owns the live DomainState for the process.
//
// Responsibilities:
//   - Read returns an isolated snapshot of the committed state.
//   - Update applies a transform against the latest committed state under a
//     single writer lock, so interleaved callers never lose updates.
//   - Every committed change is written to the configured Storage slot
//     best-effort; a write failure never rolls back the in-memory state,
//     which stays authoritative for the session.
//   - Hydration runs once at construction: unreadable or unparsable durable
//     content silently falls back to campus.DefaultState, never surfacing an
//     error.
//   - Restore completes an import candidate against fresh defaults via the
//     campus merge policy and replaces the state wholesale.
//
// Lifecycle events (state.updated, state.reset, state.restored) are emitted
// through pkg/activity hooks so consumers can subscribe to changes.
package store
