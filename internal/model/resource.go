package model

import "time"

// Resource type tags.  The set is closed: every bookable unit in the
// office belongs to exactly one of these categories.  All types except
// RestaurantTable are consumed wholesale by the first reservation of a
// day; restaurant tables stack independent parties up to capacity.
const (
    TypeDesk            = "Desk"
    TypeTeamRoom        = "TeamRoom"
    TypeMeetingRoom     = "MeetingRoom"
    TypeEventHall       = "EventHall"
    TypeRestaurantTable = "RestaurantTable"
)

// Resource represents a bookable physical unit on the office floor:
// a desk, a team room, a meeting room, the event hall or a restaurant
// table.  Resources are created by administrative seeding and are
// soft-disabled rather than deleted while reservations reference them.
//
// Fields:
//  ID        – primary key identifier.
//  Code      – unique short code (e.g. "dev-1", "rist-2").
//  Name      – display name shown on the floor map.
//  Type      – one of the Type* constants above.
//  Capacity  – total seats this unit can hold (always >= 1).
//  Enabled   – whether the resource can currently be booked.
//  X, Y      – top-left corner on the 2D floor map (display only).
//  Width     – rendered width on the floor map (display only).
//  Height    – rendered height on the floor map (display only).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Resource struct {
    ID        uint64    // resources.id
    Code      string    // resources.code
    Name      string    // resources.name
    Type      string    // resources.type
    Capacity  int       // resources.capacity
    Enabled   bool      // resources.is_enabled
    X         int       // resources.x
    Y         int       // resources.y
    Width     int       // resources.width
    Height    int       // resources.height
    CreatedAt time.Time // resources.created_at
    UpdatedAt time.Time // resources.updated_at
}

// Exclusive reports whether the resource is consumed wholesale by the
// first accepted reservation of a day.  Only restaurant tables pool
// multiple independent parties into one numeric capacity.
func (r *Resource) Exclusive() bool {
    return r.Type != TypeRestaurantTable
}
