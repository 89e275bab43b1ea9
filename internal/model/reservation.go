package model

import "time"

// Reservation records one booked resource for one calendar day.  A
// cart checkout creates one row per cart line, all committed in a
// single transaction.  Rows are never physically deleted: cancelling
// sets the Cancelled flag so reporting collaborators keep full history.
//
// Fields:
//  ID         – primary key identifier.
//  ResourceID – resource being booked.
//  Day        – booked-for day; time-of-day is ignored everywhere.
//  OwnerID    – opaque identity of the booking user.
//  PartySize  – number of people covered by this row (>= 1).
//  PriceCents – price computed at booking time from the fixed table.
//  Cancelled  – soft-delete flag.
//  Note       – optional free-text note from the cart.
//  CreatedAt  – creation timestamp (server clock, UTC).
type Reservation struct {
    ID         uint64    // reservations.id
    ResourceID uint64    // reservations.resource_id
    Day        time.Time // reservations.day (DATE)
    OwnerID    string    // reservations.owner_id
    PartySize  int       // reservations.party_size
    PriceCents uint32    // reservations.price_cents
    Cancelled  bool      // reservations.is_cancelled
    Note       *string   // reservations.note (nullable)
    CreatedAt  time.Time // reservations.created_at
}
