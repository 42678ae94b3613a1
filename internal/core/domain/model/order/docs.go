// Package order implements the Order aggregate root of the pickup marketplace:
// a request by an orderer to have items carried along a route by a picker.
//
// The package includes:
//   - Order: identity, route, items, reward and the delivery lifecycle
//   - Status: the lifecycle state machine
//   - Item: an article the picker has to buy or collect
//
// Lifecycle:
//
//	DRAFT ──> PENDING ──> ACCEPTED ──> DELIVERED ──> COMPLETED
//	  │          │            │            │
//	  └──────────┴────────────┴────────────┴──> CANCELLED
//
// Key business rules:
//   - Only the orderer edits, finalizes, cancels, confirms or reports an issue
//   - The assigned picker is set exactly once, when the order becomes ACCEPTED
//   - Only the assigned picker marks the order delivered
//   - A reported delivery issue blocks confirmation until resolved outside the core
//   - Delivery confirmation happens at most once, manually or by the timeout sweep
//
// Every precondition failure is returned as a typed error from package errs so
// callers can tell authorization, state and validation failures apart.
package order
