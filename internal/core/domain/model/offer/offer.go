package offer

import (
	"errors"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"
)

// ErrOfferIsNotConstructed is returned when an Offer bypassed its constructors.
var ErrOfferIsNotConstructed = errors.New("Offer must be created via NewInitialOffer or NewCounterOffer constructor")

// Offer is a price proposal for an order.
type Offer struct {
	id        kernel.UUID
	orderID   kernel.UUID
	offeredBy kernel.UUID
	kind      Type
	amount    kernel.Money
	parentID  *kernel.UUID
	status    Status
	createdAt time.Time
	version   int

	isConstructed bool
}

// NewInitialOffer records the orderer's reward as the first offer of the order.
func NewInitialOffer(id, orderID, ordererID kernel.UUID, amount kernel.Money, now time.Time) (*Offer, error) {
	return newOffer(id, orderID, ordererID, Initial, amount, nil, now)
}

// NewCounterOffer records a picker's price proposal. parentID links the
// offer being answered.
func NewCounterOffer(
	id, orderID, pickerID kernel.UUID,
	amount kernel.Money,
	parentID *kernel.UUID,
	now time.Time,
) (*Offer, error) {
	return newOffer(id, orderID, pickerID, Counter, amount, parentID, now)
}

func newOffer(
	id, orderID, offeredBy kernel.UUID,
	kind Type,
	amount kernel.Money,
	parentID *kernel.UUID,
	now time.Time,
) (*Offer, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		offeredBy.Validate(),
		kind.Validate(),
		amount.Validate(),
	); err != nil {
		return nil, err
	}
	if err := amount.ValidateOfferBounds(); err != nil {
		return nil, err
	}

	return &Offer{
		id:            id,
		orderID:       orderID,
		offeredBy:     offeredBy,
		kind:          kind,
		amount:        amount,
		parentID:      parentID,
		status:        Pending,
		createdAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreOffer rebuilds a stored offer without re-checking amount bounds,
// which may have changed since the offer was made.
func RestoreOffer(
	id, orderID, offeredBy kernel.UUID,
	kind Type,
	amount kernel.Money,
	parentID *kernel.UUID,
	status Status,
	createdAt time.Time,
	version int,
) (*Offer, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		offeredBy.Validate(),
		kind.Validate(),
		amount.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Offer{
		id:            id,
		orderID:       orderID,
		offeredBy:     offeredBy,
		kind:          kind,
		amount:        amount,
		parentID:      parentID,
		status:        status,
		createdAt:     createdAt,
		version:       version,
		isConstructed: true,
	}, nil
}

func (o *Offer) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOfferIsNotConstructed
	}
	return nil
}

func (o *Offer) ID() kernel.UUID {
	return o.id
}

func (o *Offer) OrderID() kernel.UUID {
	return o.orderID
}

func (o *Offer) OfferedBy() kernel.UUID {
	return o.offeredBy
}

func (o *Offer) Type() Type {
	return o.kind
}

func (o *Offer) Amount() kernel.Money {
	return o.amount
}

// ParentID returns nil for the first offer of a chain.
func (o *Offer) ParentID() *kernel.UUID {
	return o.parentID
}

func (o *Offer) Status() Status {
	return o.status
}

func (o *Offer) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Offer) Version() int {
	return o.version
}

// HasParent reports whether the offer answers parentID.
func (o *Offer) HasParent(parentID kernel.UUID) bool {
	return o.parentID != nil && o.parentID.IsEqual(parentID)
}

// Accept marks a pending offer as the winning one.
func (o *Offer) Accept() error {
	if o.status != Pending {
		return errs.NewInvalidStateError("accept the offer", o.status.String())
	}
	o.status = Accepted
	return nil
}

// Reject declines a pending offer. Sibling offers are not affected.
func (o *Offer) Reject() error {
	if o.status != Pending {
		return errs.NewInvalidStateError("reject the offer", o.status.String())
	}
	o.status = Rejected
	return nil
}

// Supersede retires a non-winning offer after a sibling was accepted. It
// reports whether the status changed; the accepted offer is never touched.
func (o *Offer) Supersede() bool {
	if o.status == Accepted || o.status == Superseded {
		return false
	}
	o.status = Superseded
	return true
}
