package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/workspace-reservation/internal/booking"
    "github.com/iliyamo/workspace-reservation/internal/queue"
    "github.com/iliyamo/workspace-reservation/internal/repository"
    queuepublisher "github.com/iliyamo/workspace-reservation/internal/service"
)

// BookingHandler exposes the reservation engine over HTTP: cart
// checkout, cancellation and the caller's booking history.  JWT
// authentication has already run; methods return 401 only when the
// owner id cannot be extracted from the context.
type BookingHandler struct {
    Engine          *booking.Engine
    ResourceRepo    *repository.ResourceRepo
    ReservationRepo *repository.ReservationRepo
}

// NewBookingHandler constructs a BookingHandler with the provided
// dependencies.  All of them must be non-nil.
func NewBookingHandler(engine *booking.Engine, resourceRepo *repository.ResourceRepo, reservationRepo *repository.ReservationRepo) *BookingHandler {
    if engine == nil || resourceRepo == nil || reservationRepo == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Engine: engine, ResourceRepo: resourceRepo, ReservationRepo: reservationRepo}
}

// bookRequest is the JSON shape of POST /v1/bookings.
type bookRequest struct {
    Date  string `json:"date"` // YYYY-MM-DD
    Note  string `json:"note"`
    Items []struct {
        ResourceID uint64 `json:"resource_id"`
        PartySize  int    `json:"party_size"`
    } `json:"items"`
}

// statusFor maps an engine failure code to the HTTP status the
// request-handling layer should answer with.
func statusFor(code booking.Code) int {
    switch code {
    case booking.CodeInvalidRequest:
        return http.StatusBadRequest
    case booking.CodeResourceNotFound:
        return http.StatusNotFound
    case booking.CodeCapacityExceeded, booking.CodeResourceOccupied:
        return http.StatusConflict
    case booking.CodeUnauthorized:
        return http.StatusForbidden
    default:
        return http.StatusInternalServerError
    }
}

// Book handles POST /v1/bookings.  The body carries the target day and
// the cart lines; the engine commits all of them or none.  On success
// a reservation.confirmed event is published for downstream consumers;
// a publish failure is logged inside the publisher and never turns a
// committed booking into an error.
func (h *BookingHandler) Book(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body bookRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    day, err := time.Parse(dayLayout, body.Date)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or missing date, expected YYYY-MM-DD"})
    }

    req := booking.Request{Day: day, Note: body.Note}
    for _, item := range body.Items {
        party := item.PartySize
        if party == 0 {
            party = 1 // omitted in the JSON means a single person
        }
        req.Lines = append(req.Lines, booking.Line{ResourceID: item.ResourceID, PartySize: party})
    }

    out := h.Engine.Book(c.Request().Context(), req, ownerID)
    if !out.Success {
        return c.JSON(statusFor(out.Code), out)
    }

    go h.publishConfirmed(req, ownerID)
    return c.JSON(http.StatusCreated, out)
}

// publishConfirmed assembles and publishes the confirmed event.  It
// runs detached from the request: the booking is already committed and
// event delivery is best effort.
func (h *BookingHandler) publishConfirmed(req booking.Request, ownerID string) {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    ev := queue.ReservationConfirmedEvent{
        OwnerID:     ownerID,
        Day:         req.Day.UTC().Format(dayLayout),
        ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
    }
    for _, line := range req.Lines {
        name := strconv.FormatUint(line.ResourceID, 10)
        var priceCents uint32
        if res, err := h.ResourceRepo.GetByID(ctx, line.ResourceID); err == nil {
            name = res.Name
            priceCents = booking.PriceCents(res.Type, line.PartySize)
        }
        ev.Lines = append(ev.Lines, queue.BookedLine{
            ResourceID:   line.ResourceID,
            ResourceName: name,
            PartySize:    line.PartySize,
            PriceCents:   priceCents,
        })
        ev.TotalPriceCents += uint64(priceCents)
    }
    _ = queuepublisher.PublishReservationConfirmed(ctx, ev)
}

// Cancel handles DELETE /v1/reservations/:id.  Only the reservation's
// owner may cancel, only within the grace window, and only once.
func (h *BookingHandler) Cancel(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || resID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }

    out := h.Engine.Cancel(c.Request().Context(), resID, ownerID)
    if !out.Success {
        return c.JSON(statusFor(out.Code), out)
    }

    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queuepublisher.PublishReservationCancelled(ctx, queue.ReservationCancelledEvent{
            ReservationID: resID,
            OwnerID:       ownerID,
            CancelledAt:   time.Now().UTC().Format(time.RFC3339),
        })
    }()
    return c.JSON(http.StatusOK, out)
}

// MyReservations handles GET /v1/my-reservations.  It returns the
// caller's active reservations, newest booked day first.  Cancelled
// rows never appear.
func (h *BookingHandler) MyReservations(c echo.Context) error {
    ownerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.ReservationRepo.ListActiveByOwner(c.Request().Context(), ownerID, 50)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}
