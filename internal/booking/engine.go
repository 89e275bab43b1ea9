package booking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/workspace-reservation/internal/model"
	"github.com/iliyamo/workspace-reservation/internal/repository"
)

// Code classifies a booking or cancellation failure so callers can
// tell retryable storage errors apart from permanent business-rule
// rejections.  Successful outcomes carry an empty code.
type Code string

const (
	CodeInvalidRequest   Code = "INVALID_REQUEST"   // malformed cart, day in the past
	CodeResourceNotFound Code = "RESOURCE_NOT_FOUND" // unresolvable or disabled id
	CodeCapacityExceeded Code = "CAPACITY_EXCEEDED"  // shared resource would overflow
	CodeResourceOccupied Code = "RESOURCE_OCCUPIED"  // exclusive resource already taken
	CodeUnauthorized     Code = "UNAUTHORIZED"       // cancel by non-owner or window expired
	CodeStorageFailure   Code = "STORAGE_FAILURE"    // transaction error, safe to retry
)

// Outcome is the structured result of Book and Cancel.  Business-rule
// violations are outcomes, never errors that escape the engine; on any
// failure path zero reservation rows from the call are visible.
type Outcome struct {
	Success bool   `json:"success"`
	Code    Code   `json:"code,omitempty"`
	Message string `json:"message"`
	Created int    `json:"created,omitempty"`
}

// Line is one cart entry: a resource and the number of people to book
// it for.
type Line struct {
	ResourceID uint64 `json:"resource_id"`
	PartySize  int    `json:"party_size"`
}

// Request is an ephemeral cart: a target day plus the ordered list of
// lines, all booked or none.  It is never persisted.
type Request struct {
	Day   time.Time
	Note  string
	Lines []Line
}

// Engine orchestrates cart checkout and cancellation.  It holds no
// cross-request state: correctness against concurrent bookings relies
// on the database transaction plus the row locks taken inside it.
type Engine struct {
	resources    *repository.ResourceRepo
	reservations *repository.ReservationRepo
	grace        time.Duration    // cancellation window from creation
	now          func() time.Time // injectable clock
}

// NewEngine constructs an Engine.  grace is the cancellation window
// measured from a reservation's creation timestamp.
func NewEngine(resources *repository.ResourceRepo, reservations *repository.ReservationRepo, grace time.Duration) *Engine {
	if resources == nil || reservations == nil {
		panic("nil repository passed to NewEngine")
	}
	return &Engine{
		resources:    resources,
		reservations: reservations,
		grace:        grace,
		now:          time.Now,
	}
}

func failure(code Code, message string) Outcome {
	return Outcome{Success: false, Code: code, Message: message}
}

// storageFailure logs the technical error with full context and
// returns the generic, non-leaking outcome the caller sees.
func storageFailure(op string, ownerID string, err error) Outcome {
	log.Printf("booking: %s failed for owner=%s: %v", op, ownerID, err)
	return failure(CodeStorageFailure, "technical error while saving, please retry")
}

// validateRequest checks the shape of the cart before any storage is
// touched.  It returns a non-nil rejection outcome, or nil when the
// request is well formed.
func (e *Engine) validateRequest(req Request) *Outcome {
	if len(req.Lines) == 0 {
		out := failure(CodeInvalidRequest, "the cart is empty, select at least one resource")
		return &out
	}
	for _, l := range req.Lines {
		if l.ResourceID == 0 {
			out := failure(CodeInvalidRequest, "invalid resource id in cart")
			return &out
		}
		if l.PartySize < 1 {
			out := failure(CodeInvalidRequest, "party size must be at least 1")
			return &out
		}
	}
	if dayOf(req.Day).Before(dayOf(e.now())) {
		out := failure(CodeInvalidRequest, "you cannot book a date in the past")
		return &out
	}
	return nil
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Book validates and commits the whole cart atomically.  Inside one
// transaction it locks every distinct resource referenced by the cart
// (ascending id order, so concurrent carts cannot deadlock), then
// walks the lines in submission order: recount occupancy, evaluate the
// availability policy, insert the row.  Inserting as it goes means the
// recount for a later line sees earlier lines of the same cart, so a
// cart cannot overbook a table against itself.  Any denial rolls the
// whole transaction back; no reservations from earlier lines survive.
func (e *Engine) Book(ctx context.Context, req Request, ownerID string) Outcome {
	if out := e.validateRequest(req); out != nil {
		return *out
	}
	day := dayOf(req.Day)

	tx, err := e.reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return storageFailure("begin", ownerID, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Resolve and lock every distinct resource up front.  Disabled or
	// unknown ids make the whole cart fail; partial resolution is
	// never accepted.
	distinct := distinctResourceIDs(req.Lines)
	resources, err := e.resources.LookupManyForUpdateTx(ctx, tx, distinct)
	if err != nil {
		return storageFailure("lookup resources", ownerID, err)
	}
	if len(resources) != len(distinct) {
		var missing []string
		for _, id := range distinct {
			if _, ok := resources[id]; !ok {
				missing = append(missing, fmt.Sprintf("%d", id))
			}
		}
		return failure(CodeResourceNotFound,
			fmt.Sprintf("resource id(s) %s do not exist or are disabled", strings.Join(missing, ", ")))
	}

	var note *string
	if n := strings.TrimSpace(req.Note); n != "" {
		note = &n
	}

	// Lines are applied in submission order; the order only shapes
	// which conflict is reported first, not correctness.
	for _, line := range req.Lines {
		res := resources[line.ResourceID]

		occupied, err := e.reservations.SumActivePartySizeTx(ctx, tx, res.ID, day)
		if err != nil {
			return storageFailure("count occupancy", ownerID, err)
		}
		if d := evaluatePolicy(res, occupied, line.PartySize); !d.Allowed {
			return failure(d.Code, d.Message)
		}

		staged := &model.Reservation{
			ResourceID: res.ID,
			Day:        day,
			OwnerID:    ownerID,
			PartySize:  line.PartySize,
			PriceCents: PriceCents(res.Type, line.PartySize),
			Cancelled:  false,
			Note:       note,
		}
		if err := e.reservations.CreateTx(ctx, tx, staged); err != nil {
			return storageFailure("insert reservation", ownerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageFailure("commit", ownerID, err)
	}
	committed = true

	return Outcome{
		Success: true,
		Message: fmt.Sprintf("%d space(s) booked successfully!", len(req.Lines)),
		Created: len(req.Lines),
	}
}

// Cancel soft-deletes a reservation.  It is allowed only for the
// reservation's owner, only once, and only while the creation
// timestamp is still within the grace window.  The row is locked for
// the duration of the transaction so two concurrent cancellations of
// the same reservation serialise.
func (e *Engine) Cancel(ctx context.Context, reservationID uint64, ownerID string) Outcome {
	tx, err := e.reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return storageFailure("begin", ownerID, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := e.reservations.GetForUpdateTx(ctx, tx, reservationID)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return failure(CodeResourceNotFound, "reservation not found")
		}
		return storageFailure("load reservation", ownerID, err)
	}
	if res.OwnerID != ownerID {
		return failure(CodeUnauthorized, "this reservation belongs to another user")
	}
	if res.Cancelled {
		return failure(CodeInvalidRequest, "reservation is already cancelled")
	}
	if !withinGraceWindow(res.CreatedAt, e.now(), e.grace) {
		return failure(CodeUnauthorized,
			fmt.Sprintf("cancellation window of %d minutes has expired", int(e.grace.Minutes())))
	}

	if err := e.reservations.CancelTx(ctx, tx, reservationID); err != nil {
		return storageFailure("cancel reservation", ownerID, err)
	}
	if err := tx.Commit(); err != nil {
		return storageFailure("commit", ownerID, err)
	}
	committed = true

	return Outcome{Success: true, Message: "reservation cancelled"}
}

// withinGraceWindow reports whether now still falls inside the
// cancellation window opened at createdAt.
func withinGraceWindow(createdAt, now time.Time, grace time.Duration) bool {
	return !now.After(createdAt.Add(grace))
}

// distinctResourceIDs returns the unique resource ids of the cart in
// first-seen order.
func distinctResourceIDs(lines []Line) []uint64 {
	seen := make(map[uint64]struct{}, len(lines))
	out := make([]uint64, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ResourceID]; !ok {
			seen[l.ResourceID] = struct{}{}
			out = append(out, l.ResourceID)
		}
	}
	return out
}
