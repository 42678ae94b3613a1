// Package kernel provides the shared value objects of the pickup marketplace.
//
// The package includes:
//   - UUID: identifier of every aggregate and user reference
//   - Money: a non-negative fixed-point amount with two fractional digits
//   - Place and Route: country/city pairs and the origin→destination leg matched by discovery
//
// All values are immutable and validate their invariants at construction time.
// Zero values are invalid and fail Validate.
package kernel
