package order

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/pkg/errs"
)

// DefaultConfirmationWindow is how long an orderer has to confirm or dispute
// a delivery before the sweep completes it automatically.
const DefaultConfirmationWindow = 48 * time.Hour

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a delivery request.
//
// Order follows these invariants:
//   - Must have a valid identifier, orderer and route
//   - assignedPicker is nil until the order reaches Accepted
//   - deliveryConfirmedAt is set at most once
//   - deliveryIssueReported, once true, blocks confirmation
//   - Orders are never deleted, cancellation is a terminal status
//
// version is the optimistic concurrency token of the stored row. Repositories
// compare it on update and bump it on success.
type Order struct {
	id                         kernel.UUID
	ordererID                  kernel.UUID
	assignedPickerID           *kernel.UUID
	route                      kernel.Route
	notes                      string
	reward                     kernel.Money
	currency                   string
	status                     Status
	acceptedCounterOfferAmount *kernel.Money
	acceptedAt                 *time.Time
	deliveredAt                *time.Time
	deliveryConfirmedAt        *time.Time
	deliveryIssueReported      bool
	autoConfirmed              bool
	waitingDays                *int
	proofOfDelivery            string
	items                      []Item
	createdAt                  time.Time
	version                    int

	isConstructed bool
}

// NewOrder creates a new Order in Draft status with a zero reward.
//
// Parameters:
//   - id: identifier of the new order
//   - ordererID: the user requesting the delivery
//   - route: origin and destination of the delivery
//   - notes: free-text special notes (at most 1000 characters)
//   - waitingDays: optional number of days the orderer can wait, must not be negative
//   - now: creation timestamp
//
// Example:
//
//	route := kernel.MustNewRoute("France", "Paris", "Germany", "Berlin")
//	o, err := order.NewOrder(kernel.NewUUID(), ordererID, route, "fragile", nil, time.Now())
func NewOrder(
	id kernel.UUID,
	ordererID kernel.UUID,
	route kernel.Route,
	notes string,
	waitingDays *int,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Draft,
		reward:        kernel.ZeroMoney(),
		items:         make([]Item, 0),
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderer(ordererID),
		o.setRoute(route),
		o.setNotes(notes),
		o.setWaitingDays(waitingDays),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the complete persisted state of an order. It is used by
// repositories to rehydrate aggregates through RestoreOrder.
type Snapshot struct {
	ID                         kernel.UUID
	OrdererID                  kernel.UUID
	AssignedPickerID           *kernel.UUID
	Route                      kernel.Route
	Notes                      string
	Reward                     kernel.Money
	Currency                   string
	Status                     Status
	AcceptedCounterOfferAmount *kernel.Money
	AcceptedAt                 *time.Time
	DeliveredAt                *time.Time
	DeliveryConfirmedAt        *time.Time
	DeliveryIssueReported      bool
	AutoConfirmed              bool
	WaitingDays                *int
	ProofOfDelivery            string
	Items                      []Item
	CreatedAt                  time.Time
	Version                    int
}

// RestoreOrder rebuilds an order from storage, validating the invariants that
// must hold between status and the other fields.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		reward:                s.Reward,
		status:                s.Status,
		acceptedAt:            s.AcceptedAt,
		deliveredAt:           s.DeliveredAt,
		deliveryConfirmedAt:   s.DeliveryConfirmedAt,
		deliveryIssueReported: s.DeliveryIssueReported,
		autoConfirmed:         s.AutoConfirmed,
		proofOfDelivery:       s.ProofOfDelivery,
		createdAt:             s.CreatedAt,
		version:               s.Version,
		isConstructed:         true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setOrderer(s.OrdererID),
		o.setRoute(s.Route),
		o.setNotes(s.Notes),
		o.setWaitingDays(s.WaitingDays),
		ValidateCurrency(s.Currency),
		s.Reward.Validate(),
		s.Status.Validate(),
		s.Status.ValidateCanHavePicker(s.AssignedPickerID != nil),
	); err != nil {
		return nil, err
	}

	for _, item := range s.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	o.currency = s.Currency
	o.assignedPickerID = s.AssignedPickerID
	o.acceptedCounterOfferAmount = s.AcceptedCounterOfferAmount
	o.items = append(make([]Item, 0, len(s.Items)), s.Items...)
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) OrdererID() kernel.UUID {
	return o.ordererID
}

// AssignedPickerID returns nil until the order is accepted.
func (o *Order) AssignedPickerID() *kernel.UUID {
	return o.assignedPickerID
}

func (o *Order) Route() kernel.Route {
	return o.route
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) Reward() kernel.Money {
	return o.reward
}

func (o *Order) Currency() string {
	return o.currency
}

func (o *Order) Status() Status {
	return o.status
}

// AcceptedCounterOfferAmount is set only by a counter offer acceptance and is
// distinct from Reward.
func (o *Order) AcceptedCounterOfferAmount() *kernel.Money {
	return o.acceptedCounterOfferAmount
}

func (o *Order) AcceptedAt() *time.Time {
	return o.acceptedAt
}

func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

func (o *Order) DeliveryConfirmedAt() *time.Time {
	return o.deliveryConfirmedAt
}

func (o *Order) DeliveryIssueReported() bool {
	return o.deliveryIssueReported
}

func (o *Order) AutoConfirmed() bool {
	return o.autoConfirmed
}

func (o *Order) WaitingDays() *int {
	return o.waitingDays
}

func (o *Order) ProofOfDelivery() string {
	return o.proofOfDelivery
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic concurrency token loaded from storage.
func (o *Order) Version() int {
	return o.version
}

// Items returns a copy of the order items in insertion order.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// IsOrderer reports whether userID created the order.
func (o *Order) IsOrderer(userID kernel.UUID) bool {
	return o.ordererID.IsEqual(userID)
}

// IsAssignedPicker reports whether userID is the picker carrying the order.
func (o *Order) IsAssignedPicker(userID kernel.UUID) bool {
	return o.assignedPickerID != nil && o.assignedPickerID.IsEqual(userID)
}

// IsParticipant reports whether userID is the orderer or the assigned picker.
func (o *Order) IsParticipant(userID kernel.UUID) bool {
	return o.IsOrderer(userID) || o.IsAssignedPicker(userID)
}

// AddItem appends an item while the order is still editable. The first item
// carrying a currency sets the order currency and later ones overwrite it.
func (o *Order) AddItem(actorID kernel.UUID, item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if !o.IsOrderer(actorID) {
		return errs.NewAccessDeniedError(actorID.String(), "only the orderer can add items")
	}
	if !o.status.IsEditable() {
		return errs.NewInvalidStateError("add items", o.status.String())
	}

	o.items = append(o.items, item)
	if c := item.Details().Currency; c != "" {
		o.currency = c
	}
	return nil
}

// SetReward changes the reward proposed by the orderer. The amount must be
// within the offer bounds; status is left untouched.
func (o *Order) SetReward(actorID kernel.UUID, amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !o.IsOrderer(actorID) {
		return errs.NewAccessDeniedError(actorID.String(), "only the orderer can set the reward")
	}
	if !o.status.IsEditable() {
		return errs.NewInvalidStateError("set the reward", o.status.String())
	}
	if err := amount.ValidateOfferBounds(); err != nil {
		return err
	}

	o.reward = amount
	return nil
}

// Finalize publishes a draft order to pickers. It reports whether the
// Draft → Pending transition happened; finalizing an order that already left
// Draft is a no-op and never regresses its status.
func (o *Order) Finalize(actorID kernel.UUID) (bool, error) {
	if !o.IsOrderer(actorID) {
		return false, errs.NewAccessDeniedError(actorID.String(), "only the orderer can finalize the order")
	}
	switch o.status {
	case Draft:
		o.status = Pending
		return true, nil
	case Cancelled:
		return false, errs.NewInvalidStateError("finalize the order", o.status.String())
	default:
		return false, nil
	}
}

// AssignPicker is the direct acceptance path: a picker takes a pending order
// without negotiating. A second picker racing for the same order gets a
// conflict instead of overwriting the first assignment. Any picker may take
// the order, including after the orderer accepted another picker's counter
// offer; the recorded counter amount is kept as is.
func (o *Order) AssignPicker(pickerID kernel.UUID, now time.Time) error {
	if err := pickerID.Validate(); err != nil {
		return err
	}
	if o.IsOrderer(pickerID) {
		return errs.NewAccessDeniedError(pickerID.String(), "the orderer cannot accept their own order")
	}
	if o.assignedPickerID != nil {
		return errs.NewConflictError("order", "is already assigned to a picker")
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	acceptedAt := now.UTC()
	o.status = newStatus
	o.assignedPickerID = &pickerID
	o.acceptedAt = &acceptedAt
	return nil
}

// AcceptInitialOffer assigns the picker who accepted the orderer's initial
// offer and fixes the reward to the offered amount.
func (o *Order) AcceptInitialOffer(pickerID kernel.UUID, amount kernel.Money, now time.Time) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if err := o.AssignPicker(pickerID, now); err != nil {
		return err
	}
	o.reward = amount
	return nil
}

// RecordAcceptedCounterOffer stores the amount of an accepted counter offer.
// It does not assign a picker nor change the status.
func (o *Order) RecordAcceptedCounterOffer(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !o.status.IsNegotiable() {
		return errs.NewInvalidStateError("accept a counter offer", o.status.String())
	}
	o.acceptedCounterOfferAmount = &amount
	return nil
}

// Cancel withdraws the order from any non-terminal status.
func (o *Order) Cancel(actorID kernel.UUID) error {
	if !o.IsOrderer(actorID) {
		return errs.NewAccessDeniedError(actorID.String(), "only the orderer can cancel the order")
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkDelivered records the hand-over by the assigned picker. proof is an
// optional reference to an uploaded artifact.
func (o *Order) MarkDelivered(pickerID kernel.UUID, proof string, now time.Time) error {
	if err := o.CheckCanMarkDelivered(pickerID); err != nil {
		return err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	deliveredAt := now.UTC()
	o.status = newStatus
	o.deliveredAt = &deliveredAt
	if proof = strings.TrimSpace(proof); proof != "" {
		o.proofOfDelivery = proof
	}
	return nil
}

// CheckCanMarkDelivered returns the error MarkDelivered would fail with,
// without changing the order.
func (o *Order) CheckCanMarkDelivered(pickerID kernel.UUID) error {
	if !o.IsAssignedPicker(pickerID) {
		return errs.NewAccessDeniedError(pickerID.String(), "only the assigned picker can mark the order delivered")
	}
	_, err := o.status.Deliver()
	return err
}

// ConfirmDelivery completes a delivered order on behalf of the orderer.
func (o *Order) ConfirmDelivery(actorID kernel.UUID, now time.Time) error {
	if !o.IsOrderer(actorID) {
		return errs.NewAccessDeniedError(actorID.String(), "only the orderer can confirm the delivery")
	}
	if o.deliveryIssueReported {
		return errs.NewInvalidStateErrorWithCause("confirm delivery", o.status.String(),
			errors.New("an issue was reported for this delivery"))
	}
	if o.deliveryConfirmedAt != nil {
		return errs.NewInvalidStateErrorWithCause("confirm delivery", o.status.String(),
			errors.New("delivery is already confirmed"))
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	confirmedAt := now.UTC()
	o.status = newStatus
	o.deliveryConfirmedAt = &confirmedAt
	o.autoConfirmed = false
	return nil
}

// ReportIssue flags a problem with a delivered order. The order stays
// Delivered and can no longer be confirmed.
func (o *Order) ReportIssue(actorID kernel.UUID) error {
	if !o.IsOrderer(actorID) {
		return errs.NewAccessDeniedError(actorID.String(), "only the orderer can report a delivery issue")
	}
	if o.status != Delivered {
		return errs.NewInvalidStateError("report a delivery issue", o.status.String())
	}

	o.deliveryIssueReported = true
	return nil
}

// ConfirmationDeadline returns when the delivery will be auto-confirmed. The
// second result is false unless the order is Delivered and still unconfirmed.
func (o *Order) ConfirmationDeadline(window time.Duration) (time.Time, bool) {
	if o.status != Delivered || o.deliveredAt == nil || o.deliveryConfirmedAt != nil {
		return time.Time{}, false
	}
	return o.deliveredAt.Add(window), true
}

// HoursRemaining rounds the time left until the deadline up to whole hours
// and never goes below zero.
func HoursRemaining(deadline, now time.Time) int {
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Seconds() / 3600))
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderer(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderer_id", err)
	}
	o.ordererID = id
	return nil
}

func (o *Order) setRoute(route kernel.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	o.route = route
	return nil
}

func (o *Order) setNotes(notes string) error {
	if err := validateText("special_notes", notes, maxNotesLength, false); err != nil {
		return err
	}
	o.notes = notes
	return nil
}

func (o *Order) setWaitingDays(days *int) error {
	if days != nil && *days < 0 {
		return errs.NewValueIsInvalidErrorWithCause("waiting_days", fmt.Errorf("%d is negative", *days))
	}
	o.waitingDays = days
	return nil
}
