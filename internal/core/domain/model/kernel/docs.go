// Package kernel provides core domain primitives for the order service.
//
// It currently contains a single building block:
//   - UUID: a value object for aggregate identifiers with validation and
//     comparison capabilities
//
// The primitives are immutable and thread-safe, and enforce their invariants
// through constructor functions so that domain objects are always in a valid
// state.
package kernel
