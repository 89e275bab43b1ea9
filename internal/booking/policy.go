// Package booking implements the reservation engine: cart validation,
// availability policies, price computation and the all-or-nothing
// transactional checkout.  The engine is a library contract; HTTP
// concerns live in the handler layer.
package booking

import (
	"fmt"

	"github.com/iliyamo/workspace-reservation/internal/model"
)

// Decision is the result of evaluating the availability policy for one
// cart line against the current occupancy of its resource.
type Decision struct {
	Allowed bool
	Code    Code   // failure code when not allowed
	Message string // user-presentable reason when not allowed
}

var allow = Decision{Allowed: true}

// evaluatePolicy decides whether a request for partySize people may be
// added to a resource that already has occupied seats booked for the
// day.  Two policies exist, selected by resource type:
//
//   - shared capacity (restaurant tables): bookings stack until the
//     combined party size reaches the capacity;
//   - exclusive use (everything else): any active reservation, of any
//     size and by any owner, blocks the whole day.
//
// Under both policies a single line can never exceed the resource's
// capacity on its own.
func evaluatePolicy(res *model.Resource, occupied, partySize int) Decision {
	capacity := res.Capacity
	if capacity < 1 {
		capacity = 1
	}

	if partySize > capacity {
		return Decision{
			Code:    CodeCapacityExceeded,
			Message: fmt.Sprintf("'%s' cannot host %d people (max: %d)", res.Name, partySize, capacity),
		}
	}

	if res.Exclusive() {
		if occupied > 0 {
			return Decision{
				Code:    CodeResourceOccupied,
				Message: fmt.Sprintf("'%s' is already occupied for this date", res.Name),
			}
		}
		return allow
	}

	if occupied+partySize > capacity {
		return Decision{
			Code:    CodeCapacityExceeded,
			Message: fmt.Sprintf("'%s': not enough seats (requested: %d, remaining: %d)", res.Name, partySize, capacity-occupied),
		}
	}
	return allow
}
