package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/workspace-reservation/internal/model"
)

// dayFormat is how booked-for days are rendered for the DATE column.
// Reservations carry no time-of-day anywhere in the system.
const dayFormat = "2006-01-02"

// ReservationRepo provides CRUD operations for reservations.  A
// reservation ties one resource to one owner for one calendar day.
// All timestamp fields are stored in UTC; the day column is a plain
// DATE.  The write paths are all *Tx methods: the booking engine owns
// the transaction and this repository never commits or rolls back.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so the engine can begin transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// SumActivePartySizeTx returns the combined party size of all active
// (non-cancelled) reservations for one resource and day, evaluated
// inside the given transaction.  Because the booking engine inserts
// each validated cart line before checking the next, rows staged
// earlier in the same transaction are included: two lines of one cart
// targeting the same table are counted cumulatively, not independently.
// A resource with no reservations yields 0.
func (r *ReservationRepo) SumActivePartySizeTx(ctx context.Context, tx *sql.Tx, resourceID uint64, day time.Time) (int, error) {
	const q = `SELECT COALESCE(SUM(party_size), 0)
	           FROM reservations
	           WHERE resource_id = ? AND day = ? AND is_cancelled = 0`
	var total int
	err := tx.QueryRowContext(ctx, q, resourceID, day.Format(dayFormat)).Scan(&total)
	return total, err
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates the generated ID and creation timestamp on
// the provided record.  The caller must commit or rollback the
// transaction.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (resource_id, day, owner_id, party_size, price_cents, is_cancelled, note)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.ResourceID, res.Day.Format(dayFormat), res.OwnerID,
		res.PartySize, res.PriceCents, res.Cancelled, res.Note)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back created_at so the caller sees the server clock value.
	const sel = `SELECT created_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt)
}

// GetForUpdateTx loads one reservation inside the transaction and
// locks its row until commit or rollback, so two concurrent
// cancellations of the same reservation serialise.  It returns
// ErrReservationNotFound when the id does not exist.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	const q = `SELECT id, resource_id, day, owner_id, party_size, price_cents, is_cancelled, note, created_at
	           FROM reservations WHERE id = ? FOR UPDATE`
	var res model.Reservation
	err := tx.QueryRowContext(ctx, q, id).Scan(&res.ID, &res.ResourceID, &res.Day, &res.OwnerID,
		&res.PartySize, &res.PriceCents, &res.Cancelled, &res.Note, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// CancelTx sets the soft-delete flag on a reservation.  The row is
// never physically removed; reporting collaborators rely on history
// surviving cancellation.
func (r *ReservationRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE reservations SET is_cancelled = 1 WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}

// OwnedReservation is the read model returned by ListActiveByOwner: a
// reservation joined with the name and type of its resource for
// display in the caller's booking history.
type OwnedReservation struct {
	ID           uint64  `json:"id"`
	ResourceID   uint64  `json:"resource_id"`
	ResourceName string  `json:"resource_name"`
	ResourceType string  `json:"resource_type"`
	Day          string  `json:"day"`
	PartySize    int     `json:"party_size"`
	PriceCents   uint32  `json:"price_cents"`
	Note         *string `json:"note,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// ListActiveByOwner returns the owner's active reservations, newest
// booked day first, capped at limit.  Cancelled rows are excluded.
func (r *ReservationRepo) ListActiveByOwner(ctx context.Context, ownerID string, limit int) ([]OwnedReservation, error) {
	const q = `SELECT res.id, res.resource_id, p.name, p.type, res.day, res.party_size, res.price_cents, res.note, res.created_at
	           FROM reservations res
	           JOIN resources p ON p.id = res.resource_id
	           WHERE res.owner_id = ? AND res.is_cancelled = 0
	           ORDER BY res.day DESC, res.id DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OwnedReservation, 0)
	for rows.Next() {
		var o OwnedReservation
		var day, createdAt time.Time
		if err := rows.Scan(&o.ID, &o.ResourceID, &o.ResourceName, &o.ResourceType, &day,
			&o.PartySize, &o.PriceCents, &o.Note, &createdAt); err != nil {
			return nil, err
		}
		o.Day = day.Format(dayFormat)
		o.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// OccupancyByDay returns, for every resource with at least one active
// reservation on the given day, the summed party size.  Resources with
// no bookings are simply absent from the map.  The floor map handler
// merges this with the catalog in one pass instead of issuing a count
// per resource.
func (r *ReservationRepo) OccupancyByDay(ctx context.Context, day time.Time) (map[uint64]int, error) {
	const q = `SELECT resource_id, COALESCE(SUM(party_size), 0)
	           FROM reservations
	           WHERE day = ? AND is_cancelled = 0
	           GROUP BY resource_id`
	rows, err := r.db.QueryContext(ctx, q, day.Format(dayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint64]int)
	for rows.Next() {
		var id uint64
		var sum int
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, err
		}
		out[id] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountCreatedSince returns how many reservations (cancelled included)
// were created at or after the given instant.  Used by the admin stats
// endpoint for "bookings this week".
func (r *ReservationRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM reservations WHERE created_at >= ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, since.UTC().Format("2006-01-02 15:04:05")).Scan(&n)
	return n, err
}

// ActiveSpendCents returns the summed price of every active reservation.
func (r *ReservationRepo) ActiveSpendCents(ctx context.Context) (uint64, error) {
	const q = `SELECT COALESCE(SUM(price_cents), 0) FROM reservations WHERE is_cancelled = 0`
	var total uint64
	err := r.db.QueryRowContext(ctx, q).Scan(&total)
	return total, err
}

// ResourceBookingCount pairs a resource name with its number of active
// reservations, for the admin "most booked" ranking.
type ResourceBookingCount struct {
	ResourceName string `json:"resource_name"`
	Bookings     int    `json:"bookings"`
}

// TopResources returns the resources with the most active reservations,
// descending, capped at limit.
func (r *ReservationRepo) TopResources(ctx context.Context, limit int) ([]ResourceBookingCount, error) {
	const q = `SELECT p.name, COUNT(*) AS n
	           FROM reservations res
	           JOIN resources p ON p.id = res.resource_id
	           WHERE res.is_cancelled = 0
	           GROUP BY p.name
	           ORDER BY n DESC
	           LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ResourceBookingCount, 0, limit)
	for rows.Next() {
		var rc ResourceBookingCount
		if err := rows.Scan(&rc.ResourceName, &rc.Bookings); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
