package booking

import (
	"strings"
	"testing"

	"github.com/iliyamo/workspace-reservation/internal/model"
)

func teamRoom(name string, capacity int) *model.Resource {
	return &model.Resource{Name: name, Type: model.TypeTeamRoom, Capacity: capacity}
}

func restaurantTable(name string, capacity int) *model.Resource {
	return &model.Resource{Name: name, Type: model.TypeRestaurantTable, Capacity: capacity}
}

func TestEvaluatePolicy_ExclusiveFree(t *testing.T) {
	d := evaluatePolicy(teamRoom("Team Alpha", 6), 0, 4)
	if !d.Allowed {
		t.Fatalf("expected allow, got code=%s message=%q", d.Code, d.Message)
	}
}

func TestEvaluatePolicy_ExclusiveOccupied(t *testing.T) {
	// Any active reservation blocks the whole day, regardless of size
	// or requester.
	for _, party := range []int{1, 6} {
		d := evaluatePolicy(teamRoom("Team Alpha", 6), 4, party)
		if d.Allowed {
			t.Fatalf("party=%d: expected deny", party)
		}
		if d.Code != CodeResourceOccupied {
			t.Fatalf("party=%d: expected %s, got %s", party, CodeResourceOccupied, d.Code)
		}
	}
}

func TestEvaluatePolicy_ExclusiveOverCapacityLine(t *testing.T) {
	d := evaluatePolicy(teamRoom("Team Beta", 6), 0, 7)
	if d.Allowed {
		t.Fatalf("expected deny")
	}
	if d.Code != CodeCapacityExceeded {
		t.Fatalf("expected %s, got %s", CodeCapacityExceeded, d.Code)
	}
}

func TestEvaluatePolicy_SharedWithinCapacity(t *testing.T) {
	// Tavolo 1 has 3 of 4 seats taken; one more person fits.
	d := evaluatePolicy(restaurantTable("Tavolo 1", 4), 3, 1)
	if !d.Allowed {
		t.Fatalf("expected allow, got code=%s message=%q", d.Code, d.Message)
	}
}

func TestEvaluatePolicy_SharedOverflow(t *testing.T) {
	d := evaluatePolicy(restaurantTable("Tavolo 1", 4), 3, 2)
	if d.Allowed {
		t.Fatalf("expected deny")
	}
	if d.Code != CodeCapacityExceeded {
		t.Fatalf("expected %s, got %s", CodeCapacityExceeded, d.Code)
	}
	if !strings.Contains(d.Message, "remaining: 1") {
		t.Fatalf("expected remaining seat count in message, got %q", d.Message)
	}
}

func TestEvaluatePolicy_SharedExactFill(t *testing.T) {
	d := evaluatePolicy(restaurantTable("Tavolo 2", 4), 2, 2)
	if !d.Allowed {
		t.Fatalf("expected allow at exact capacity, got message=%q", d.Message)
	}
}

func TestEvaluatePolicy_SharedCumulativeCart(t *testing.T) {
	// Two lines of one cart against an empty 4-seat table: 3 then 2.
	// The second evaluation sees the first line's occupancy and fails.
	table := restaurantTable("Tavolo 1", 4)
	first := evaluatePolicy(table, 0, 3)
	if !first.Allowed {
		t.Fatalf("first line: expected allow, got %q", first.Message)
	}
	second := evaluatePolicy(table, 3, 2)
	if second.Allowed {
		t.Fatalf("second line: expected deny")
	}
	if second.Code != CodeCapacityExceeded {
		t.Fatalf("expected %s, got %s", CodeCapacityExceeded, second.Code)
	}
}

func TestEvaluatePolicy_ZeroCapacityTreatedAsOne(t *testing.T) {
	res := &model.Resource{Name: "Desk 3", Type: model.TypeDesk, Capacity: 0}
	if d := evaluatePolicy(res, 0, 1); !d.Allowed {
		t.Fatalf("expected allow for single person, got %q", d.Message)
	}
	if d := evaluatePolicy(res, 0, 2); d.Allowed {
		t.Fatalf("expected deny for party of 2")
	}
}
