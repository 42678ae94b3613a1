package services

import (
	"errors"
	"sort"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/offer"
	"pickup/internal/core/domain/model/order"
	"pickup/internal/pkg/errs"
)

// OfferNegotiator enforces the negotiation rules between an order and its offers.
//
// Business rules:
//   - A picker has at most one outstanding (PENDING or ACCEPTED) counter offer per order
//   - At most one offer per order is ACCEPTED at any time
//   - An INITIAL offer is accepted by a picker, who becomes the assigned picker
//   - A COUNTER offer is accepted by the orderer and only records the agreed amount
//   - Accepting an offer supersedes its parent, the parent's other children and
//     every other offer still PENDING
//
// Example usage:
//
//	outcome, err := services.NewOfferNegotiator().Accept(o, target, offers, actorID, now)
//	if err != nil {
//	    return err
//	}
//	for _, changed := range outcome.Changed() {
//	    // persist changed offers
//	}
type OfferNegotiator struct{}

func NewOfferNegotiator() OfferNegotiator {
	return OfferNegotiator{}
}

// AcceptOutcome lists every aggregate an acceptance touched.
type AcceptOutcome struct {
	Accepted   *offer.Offer
	Superseded []*offer.Offer
	// AssignedPicker is set when the acceptance assigned the order.
	AssignedPicker *kernel.UUID
}

// Changed returns the accepted offer followed by the superseded ones.
func (a AcceptOutcome) Changed() []*offer.Offer {
	return append([]*offer.Offer{a.Accepted}, a.Superseded...)
}

// PrepareCounterOffer validates a new counter offer from pickerID and builds it.
// When parentID is nil the offer answers the most recent offer of the order.
//
// Returns:
//   - AccessDeniedError if the orderer tries to counter their own order
//   - InvalidStateError if the order is past negotiation
//   - NotFoundError if parentID does not belong to the order
//   - ConflictError if the picker already has an outstanding counter offer
func (n OfferNegotiator) PrepareCounterOffer(
	o *order.Order,
	existing []*offer.Offer,
	id, pickerID kernel.UUID,
	amount kernel.Money,
	parentID *kernel.UUID,
	now time.Time,
) (*offer.Offer, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.IsOrderer(pickerID) {
		return nil, errs.NewAccessDeniedError(pickerID.String(), "the orderer cannot counter their own order")
	}
	if !o.Status().IsNegotiable() {
		return nil, errs.NewInvalidStateError("submit a counter offer", o.Status().String())
	}

	for _, e := range existing {
		if e.Type() == offer.Counter && e.OfferedBy().IsEqual(pickerID) && e.Status().IsOutstanding() {
			return nil, errs.NewInvalidStateErrorWithCause("submit a counter offer", e.Status().String(),
				errors.New("counter offer already sent, wait for response"))
		}
	}

	if parentID != nil {
		if findOffer(existing, *parentID) == nil {
			return nil, errs.NewObjectNotFoundError("parent_offer_id", parentID.String())
		}
	} else if latest := LatestOffer(existing); latest != nil {
		latestID := latest.ID()
		parentID = &latestID
	}

	return offer.NewCounterOffer(id, o.ID(), pickerID, amount, parentID, now)
}

// Accept accepts target on behalf of actorID and supersedes the competing
// offers. offers must contain every offer of the order, target included.
// The order and offers are mutated in memory only.
func (n OfferNegotiator) Accept(
	o *order.Order,
	target *offer.Offer,
	offers []*offer.Offer,
	actorID kernel.UUID,
	now time.Time,
) (AcceptOutcome, error) {
	if err := o.Validate(); err != nil {
		return AcceptOutcome{}, err
	}
	if err := target.Validate(); err != nil {
		return AcceptOutcome{}, err
	}
	if !target.OrderID().IsEqual(o.ID()) {
		return AcceptOutcome{}, errs.NewObjectNotFoundError("offer", target.ID().String())
	}

	for _, other := range offers {
		if other.Status() == offer.Accepted && !other.ID().IsEqual(target.ID()) {
			return AcceptOutcome{}, errs.NewConflictError("order", "already has an accepted offer")
		}
	}
	if target.Status() != offer.Pending {
		return AcceptOutcome{}, errs.NewInvalidStateError("accept the offer", target.Status().String())
	}

	var outcome AcceptOutcome
	switch target.Type() {
	case offer.Initial:
		if o.IsOrderer(actorID) {
			return AcceptOutcome{}, errs.NewAccessDeniedError(actorID.String(),
				"the initial offer is accepted by a picker, not by the orderer")
		}
		if err := o.AcceptInitialOffer(actorID, target.Amount(), now); err != nil {
			return AcceptOutcome{}, err
		}
		picker := actorID
		outcome.AssignedPicker = &picker
	case offer.Counter:
		if !o.IsOrderer(actorID) {
			return AcceptOutcome{}, errs.NewAccessDeniedError(actorID.String(), "only the orderer can accept a counter offer")
		}
		if err := o.RecordAcceptedCounterOffer(target.Amount()); err != nil {
			return AcceptOutcome{}, err
		}
	}

	if err := target.Accept(); err != nil {
		return AcceptOutcome{}, err
	}
	outcome.Accepted = target
	outcome.Superseded = supersede(target, offers)
	return outcome, nil
}

// supersede retires the parent of the winner, the parent's other children
// and any other pending offer.
func supersede(winner *offer.Offer, offers []*offer.Offer) []*offer.Offer {
	changed := make([]*offer.Offer, 0)
	for _, other := range offers {
		if other.ID().IsEqual(winner.ID()) {
			continue
		}

		related := false
		if parent := winner.ParentID(); parent != nil {
			related = other.ID().IsEqual(*parent) || other.HasParent(*parent)
		}
		if !related && other.Status() != offer.Pending {
			continue
		}

		if other.Supersede() {
			changed = append(changed, other)
		}
	}
	return changed
}

// LatestOffer returns the most recently created offer. Offers created at the
// same instant are ordered by identifier, which is arbitrary but stable.
func LatestOffer(offers []*offer.Offer) *offer.Offer {
	if len(offers) == 0 {
		return nil
	}
	sorted := append([]*offer.Offer(nil), offers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt().Equal(sorted[j].CreatedAt()) {
			return sorted[i].CreatedAt().After(sorted[j].CreatedAt())
		}
		return sorted[i].ID().String() > sorted[j].ID().String()
	})
	return sorted[0]
}

func findOffer(offers []*offer.Offer, id kernel.UUID) *offer.Offer {
	for _, o := range offers {
		if o.ID().IsEqual(id) {
			return o
		}
	}
	return nil
}
