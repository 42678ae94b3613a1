// Package services provides domain services that orchestrate business rules
// spanning more than one aggregate of the pickup marketplace.
//
// The package includes:
//   - OfferNegotiator: counter offer admission and offer acceptance with supersession
//   - PickerMatcher: selects the pickers whose active journey matches an order route
//
// Domain services never perform I/O. Callers load the aggregates, invoke the
// service and persist whatever the returned outcome says changed.
package services
