// Package order provides the domain model for purchase orders. It implements
// the Order aggregate root with lifecycle management, immutable line-item
// snapshots and the shipping address value object.
//
// The package includes:
//   - Order: the aggregate root owning identity, items, total and lifecycle
//   - Status: a closed state machine with an explicit transition table
//   - Item: a write-once price/name snapshot of an inventory product
//   - Address: the immutable shipping destination
//   - Event payloads announced on lifecycle transitions
//
// Key business rules:
//   - Every order has at least one item; the total is computed once at
//     creation from the snapshotted prices and never recomputed
//   - Status moves forward through pending, processing, confirm, delivered;
//     cancellation is possible only from pending or processing
//   - A delivered order accepts no further change at all: the internal
//     update path rejects the whole request, payment status and tracking
//     number included, before any field is applied
//   - Payment status and tracking number stay mutable through the internal
//     update path in every non-delivered status
package order
