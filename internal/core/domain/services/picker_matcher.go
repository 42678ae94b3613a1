package services

import (
	"pickup/internal/core/domain/model/journey"
	"pickup/internal/core/domain/model/kernel"
	"pickup/internal/core/domain/model/order"
)

// PickerMatcher selects the pickers to notify about a newly published order.
type PickerMatcher struct{}

func NewPickerMatcher() PickerMatcher {
	return PickerMatcher{}
}

// Recipients returns the distinct owners of active journeys whose route
// matches the order route case-insensitively. The orderer is never included.
func (PickerMatcher) Recipients(o *order.Order, journeys []*journey.Journey) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(journeys))
	recipients := make([]kernel.UUID, 0, len(journeys))

	for _, j := range journeys {
		if !j.IsActive() || !j.Route().Matches(o.Route()) || o.IsOrderer(j.UserID()) {
			continue
		}
		if _, ok := seen[j.UserID()]; ok {
			continue
		}
		seen[j.UserID()] = struct{}{}
		recipients = append(recipients, j.UserID())
	}
	return recipients
}
