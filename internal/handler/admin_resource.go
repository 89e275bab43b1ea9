package handler

import (
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/workspace-reservation/internal/model"
    "github.com/iliyamo/workspace-reservation/internal/repository"
)

// AdminHandler groups the administrative operations: catalog
// management (create, update, soft-disable resources) and usage
// statistics.  Routes using it are guarded by the ADMIN role.
type AdminHandler struct {
    ResourceRepo    *repository.ResourceRepo
    ReservationRepo *repository.ReservationRepo
}

// NewAdminHandler constructs an AdminHandler with the provided repositories.
func NewAdminHandler(resourceRepo *repository.ResourceRepo, reservationRepo *repository.ReservationRepo) *AdminHandler {
    if resourceRepo == nil || reservationRepo == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{ResourceRepo: resourceRepo, ReservationRepo: reservationRepo}
}

// resourceBody is the JSON shape shared by create and update.
type resourceBody struct {
    Code     string `json:"code"`
    Name     string `json:"name"`
    Type     string `json:"type"`
    Capacity int    `json:"capacity"`
    X        int    `json:"x"`
    Y        int    `json:"y"`
    Width    int    `json:"width"`
    Height   int    `json:"height"`
}

// validTypes mirrors the closed set of resource type tags.
var validTypes = map[string]bool{
    model.TypeDesk:            true,
    model.TypeTeamRoom:        true,
    model.TypeMeetingRoom:     true,
    model.TypeEventHall:       true,
    model.TypeRestaurantTable: true,
}

func (b *resourceBody) validate(requireCode bool) string {
    b.Code = strings.TrimSpace(b.Code)
    b.Name = strings.TrimSpace(b.Name)
    if requireCode && b.Code == "" {
        return "code is required"
    }
    if b.Name == "" {
        return "name is required"
    }
    if !validTypes[b.Type] {
        return "unknown resource type"
    }
    if b.Capacity < 1 {
        return "capacity must be at least 1"
    }
    return ""
}

// CreateResource handles POST /v1/admin/resources.  New resources are
// enabled immediately and appear on the floor map.
func (h *AdminHandler) CreateResource(c echo.Context) error {
    var body resourceBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(true); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    res := &model.Resource{
        Code:     body.Code,
        Name:     body.Name,
        Type:     body.Type,
        Capacity: body.Capacity,
        X:        body.X,
        Y:        body.Y,
        Width:    body.Width,
        Height:   body.Height,
    }
    if err := h.ResourceRepo.Create(c.Request().Context(), res); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create resource"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"resource": res})
}

// UpdateResource handles PUT /v1/admin/resources/:id.  The code is
// immutable; name, type, capacity and geometry can change.
func (h *AdminHandler) UpdateResource(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resource id"})
    }
    var body resourceBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(false); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    res := &model.Resource{
        ID:       id,
        Name:     body.Name,
        Type:     body.Type,
        Capacity: body.Capacity,
        X:        body.X,
        Y:        body.Y,
        Width:    body.Width,
        Height:   body.Height,
    }
    if err := h.ResourceRepo.Update(c.Request().Context(), res); err != nil {
        if err == repository.ErrResourceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update resource"})
    }
    return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// SetResourceEnabled handles PATCH /v1/admin/resources/:id/enabled.
// Disabling is the soft alternative to deletion: history keeps
// referencing the resource but it stops resolving during booking.
func (h *AdminHandler) SetResourceEnabled(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resource id"})
    }
    var body struct {
        Enabled *bool `json:"enabled"`
    }
    if err := c.Bind(&body); err != nil || body.Enabled == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "enabled flag is required"})
    }
    if err := h.ResourceRepo.SetEnabled(c.Request().Context(), id, *body.Enabled); err != nil {
        if err == repository.ErrResourceNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update resource"})
    }
    return c.JSON(http.StatusOK, echo.Map{"enabled": *body.Enabled})
}

// Stats handles GET /v1/admin/stats.  It reports bookings created this
// week (Monday start), the total active spend and the most booked
// resources.
func (h *AdminHandler) Stats(c echo.Context) error {
    ctx := c.Request().Context()

    now := time.Now().UTC()
    weekday := (int(now.Weekday()) + 6) % 7 // Monday=0
    weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -weekday)

    createdThisWeek, err := h.ReservationRepo.CountCreatedSince(ctx, weekStart)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
    }
    spendCents, err := h.ReservationRepo.ActiveSpendCents(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
    }
    top, err := h.ReservationRepo.TopResources(ctx, 5)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
    }

    return c.JSON(http.StatusOK, echo.Map{
        "week_start":         weekStart.Format(dayLayout),
        "bookings_this_week": createdThisWeek,
        "active_spend_cents": spendCents,
        "top_resources":      top,
    })
}
