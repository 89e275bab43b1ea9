package booking

import "github.com/iliyamo/workspace-reservation/internal/model"

// Fixed price list in cents.  Exclusive resources are priced per day
// regardless of party size; restaurant tables are priced per person.
const (
	deskPriceCents        = 2500
	teamRoomPriceCents    = 15000
	meetingRoomPriceCents = 8000
	eventHallPriceCents   = 50000
	tableSeatPriceCents   = 1500
)

// PriceCents returns the deterministic price for one booking line,
// keyed by resource type and, for restaurant tables, party size.  The
// type set is closed; an unknown tag prices at zero rather than
// guessing.
func PriceCents(resourceType string, partySize int) uint32 {
	switch resourceType {
	case model.TypeDesk:
		return deskPriceCents
	case model.TypeTeamRoom:
		return teamRoomPriceCents
	case model.TypeMeetingRoom:
		return meetingRoomPriceCents
	case model.TypeEventHall:
		return eventHallPriceCents
	case model.TypeRestaurantTable:
		if partySize < 1 {
			partySize = 1
		}
		return uint32(partySize) * tableSeatPriceCents
	}
	return 0
}
