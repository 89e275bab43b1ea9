// Package queue defines message payloads exchanged over the message broker.
package queue

// BookedLine describes one reserved resource inside a confirmed cart.
type BookedLine struct {
    ResourceID   uint64 `json:"resource_id"`
    ResourceName string `json:"resource_name"`
    PartySize    int    `json:"party_size"`
    PriceCents   uint32 `json:"price_cents"`
}

// ReservationConfirmedEvent is published when a cart checkout commits.
// It contains enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type ReservationConfirmedEvent struct {
    OwnerID         string       `json:"owner_id"`
    Day             string       `json:"day"`
    Lines           []BookedLine `json:"lines"`
    TotalPriceCents uint64       `json:"total_price_cents"`
    ConfirmedAt     string       `json:"confirmed_at"`
}

// ReservationCancelledEvent is published when a reservation is
// soft-deleted within its grace window.
type ReservationCancelledEvent struct {
    ReservationID uint64 `json:"reservation_id"`
    OwnerID       string `json:"owner_id"`
    CancelledAt   string `json:"cancelled_at"`
}
