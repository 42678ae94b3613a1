package notifier

import (
	"fmt"

	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/notification"
	"pickup/internal/core/domain/model/offer"
	"pickup/internal/core/domain/model/order"
)

// NewOrderAvailable tells a picker travelling the order route about it.
func NewOrderAvailable(o *order.Order, pickerID kernel.UUID) Draft {
	return Draft{
		RecipientID: pickerID,
		Type:        notification.NewOrderAvailable,
		EntityID:    entity(o.ID()),
		Title:       "New Order Available",
		Message: fmt.Sprintf("A new order from %s to %s is available",
			o.Route().Origin().City(), o.Route().Destination().City()),
		Data: map[string]any{
			"order_id":         o.ID().String(),
			"orderer_id":       o.OrdererID().String(),
			"origin_city":      o.Route().Origin().City(),
			"destination_city": o.Route().Destination().City(),
			"reward_amount":    o.Reward().String(),
		},
	}
}

// OrderAccepted tells the orderer a picker took the order.
func OrderAccepted(o *order.Order) Draft {
	d := Draft{
		RecipientID: o.OrdererID(),
		Type:        notification.OrderAccepted,
		EntityID:    entity(o.ID()),
		Title:       "Order Accepted",
		Message:     "A picker has accepted your order",
		Data:        map[string]any{"order_id": o.ID().String()},
	}
	if picker := o.AssignedPickerID(); picker != nil {
		d.Data["picker_id"] = picker.String()
	}
	return d
}

// OrderCancelled tells the assigned picker the order was withdrawn. The
// second result is false when nobody is assigned.
func OrderCancelled(o *order.Order) (Draft, bool) {
	picker := o.AssignedPickerID()
	if picker == nil {
		return Draft{}, false
	}
	return Draft{
		RecipientID: *picker,
		Type:        notification.OrderCancelled,
		EntityID:    entity(o.ID()),
		Title:       "Order Cancelled",
		Message: fmt.Sprintf("The order from %s to %s has been cancelled",
			o.Route().Origin().City(), o.Route().Destination().City()),
		Data: map[string]any{
			"order_id":   o.ID().String(),
			"orderer_id": o.OrdererID().String(),
		},
	}, true
}

// OrderDelivered tells the orderer the picker handed the items over.
func OrderDelivered(o *order.Order) Draft {
	d := Draft{
		RecipientID: o.OrdererID(),
		Type:        notification.OrderDelivered,
		EntityID:    entity(o.ID()),
		Title:       "Order Delivered",
		Message:     "Your order has been delivered, please confirm the delivery",
		Data:        map[string]any{"order_id": o.ID().String()},
	}
	if picker := o.AssignedPickerID(); picker != nil {
		d.Data["picker_id"] = picker.String()
	}
	return d
}

// PaymentConfirmed tells the assigned picker the orderer confirmed delivery.
func PaymentConfirmed(o *order.Order) (Draft, bool) {
	picker := o.AssignedPickerID()
	if picker == nil {
		return Draft{}, false
	}
	return Draft{
		RecipientID: *picker,
		Type:        notification.PaymentConfirmed,
		EntityID:    entity(o.ID()),
		Title:       "Payment Confirmed",
		Message: fmt.Sprintf("Payment confirmed for the order from %s to %s",
			o.Route().Origin().City(), o.Route().Destination().City()),
		Data: map[string]any{
			"order_id":      o.ID().String(),
			"reward_amount": o.Reward().String(),
		},
	}, true
}

// CounterOfferReceived tells the orderer a picker proposed another amount.
func CounterOfferReceived(o *order.Order, counter *offer.Offer) Draft {
	return Draft{
		RecipientID: o.OrdererID(),
		Type:        notification.CounterOfferReceived,
		EntityID:    entity(counter.ID()),
		Title:       "Counter Offer Received",
		Message:     fmt.Sprintf("A picker has submitted a counter offer of %s", counter.Amount()),
		Data: map[string]any{
			"order_id":     o.ID().String(),
			"offer_id":     counter.ID().String(),
			"offer_amount": counter.Amount().String(),
			"picker_id":    counter.OfferedBy().String(),
		},
	}
}

// CounterOfferAccepted tells the counter-offering picker the orderer agreed.
func CounterOfferAccepted(o *order.Order, counter *offer.Offer) Draft {
	return Draft{
		RecipientID: counter.OfferedBy(),
		Type:        notification.CounterOfferAccepted,
		EntityID:    entity(counter.ID()),
		Title:       "Counter Offer Accepted",
		Message:     fmt.Sprintf("Your counter offer of %s has been accepted", counter.Amount()),
		Data: map[string]any{
			"order_id":        o.ID().String(),
			"offer_id":        counter.ID().String(),
			"accepted_amount": counter.Amount().String(),
			"orderer_id":      o.OrdererID().String(),
		},
	}
}

func entity(id kernel.UUID) *kernel.UUID {
	return &id
}
