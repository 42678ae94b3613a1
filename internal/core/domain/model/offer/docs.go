// Package offer models the negotiation ledger of an order.
//
// An Offer is either the orderer's INITIAL reward proposal or a picker's
// COUNTER proposal. Offers are append-only: they are never deleted and only
// their status changes. Each new counter offer links to a parent offer, which
// forms a negotiation chain per order.
//
// Status transitions:
//
//	PENDING ──> ACCEPTED
//	   ├──────> REJECTED
//	   └──────> SUPERSEDED   (a sibling was accepted)
package offer
