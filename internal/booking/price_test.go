package booking

import (
	"testing"

	"github.com/iliyamo/workspace-reservation/internal/model"
)

func TestPriceCents_FlatTypes(t *testing.T) {
	cases := map[string]uint32{
		model.TypeDesk:        2500,
		model.TypeTeamRoom:    15000,
		model.TypeMeetingRoom: 8000,
		model.TypeEventHall:   50000,
	}
	for typ, want := range cases {
		// Flat-priced types ignore party size.
		if got := PriceCents(typ, 1); got != want {
			t.Fatalf("%s party=1: got %d, want %d", typ, got, want)
		}
		if got := PriceCents(typ, 6); got != want {
			t.Fatalf("%s party=6: got %d, want %d", typ, got, want)
		}
	}
}

func TestPriceCents_RestaurantPerPerson(t *testing.T) {
	if got := PriceCents(model.TypeRestaurantTable, 3); got != 4500 {
		t.Fatalf("got %d, want 4500", got)
	}
	if got := PriceCents(model.TypeRestaurantTable, 0); got != 1500 {
		t.Fatalf("party clamped to 1: got %d, want 1500", got)
	}
}

func TestPriceCents_UnknownType(t *testing.T) {
	if got := PriceCents("Garage", 2); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}
