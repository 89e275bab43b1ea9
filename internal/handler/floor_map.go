package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/workspace-reservation/internal/model"
    "github.com/iliyamo/workspace-reservation/internal/repository"
)

// MapHandler serves the read-only availability views: the office floor
// map and the restaurant table list, both for a given day.  These are
// the endpoints fronted by the Redis response cache, so the occupancy
// shown may lag a fresh booking by up to the cache TTL.
type MapHandler struct {
    ResourceRepo    *repository.ResourceRepo
    ReservationRepo *repository.ReservationRepo
}

// NewMapHandler constructs a MapHandler with the provided repositories.
func NewMapHandler(resourceRepo *repository.ResourceRepo, reservationRepo *repository.ReservationRepo) *MapHandler {
    if resourceRepo == nil || reservationRepo == nil {
        panic("nil repository passed to NewMapHandler")
    }
    return &MapHandler{ResourceRepo: resourceRepo, ReservationRepo: reservationRepo}
}

// mapEntry is one resource on the rendered floor plan with its
// occupancy for the requested day.
type mapEntry struct {
    ID            uint64 `json:"id"`
    Code          string `json:"code"`
    Name          string `json:"name"`
    Type          string `json:"type"`
    Capacity      int    `json:"capacity"`
    OccupiedSeats int    `json:"occupied_seats"`
    Free          bool   `json:"free"`
    X             int    `json:"x"`
    Y             int    `json:"y"`
    Width         int    `json:"width"`
    Height        int    `json:"height"`
}

// free computes whether the resource can still accept a booking for
// the day given its occupancy, honoring the two availability policies.
func free(res *model.Resource, occupied int) bool {
    if res.Exclusive() {
        return occupied == 0
    }
    return occupied < res.Capacity
}

// FloorMap handles GET /v1/map?date=YYYY-MM-DD.  It returns every
// enabled resource with geometry and day occupancy so the client can
// render the whole plan in one request.  The date defaults to today.
func (h *MapHandler) FloorMap(c echo.Context) error {
    day, ok := dayParam(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
    }
    ctx := c.Request().Context()

    resources, err := h.ResourceRepo.ListEnabled(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load resources"})
    }
    occupancy, err := h.ReservationRepo.OccupancyByDay(ctx, day)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load occupancy"})
    }

    entries := make([]mapEntry, 0, len(resources))
    for _, res := range resources {
        occ := occupancy[res.ID]
        entries = append(entries, mapEntry{
            ID:            res.ID,
            Code:          res.Code,
            Name:          res.Name,
            Type:          res.Type,
            Capacity:      res.Capacity,
            OccupiedSeats: occ,
            Free:          free(res, occ),
            X:             res.X,
            Y:             res.Y,
            Width:         res.Width,
            Height:        res.Height,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":      day.Format(dayLayout),
        "resources": entries,
    })
}

// tableEntry is one restaurant table with its seat usage for the day.
type tableEntry struct {
    ID            uint64 `json:"id"`
    Name          string `json:"name"`
    OccupiedSeats int    `json:"occupied_seats"`
    TotalSeats    int    `json:"total_seats"`
}

// RestaurantTables handles GET /v1/restaurant/tables?date=YYYY-MM-DD.
// It lists the restaurant tables with occupied versus total seats so
// the client can offer the remaining capacity per table.
func (h *MapHandler) RestaurantTables(c echo.Context) error {
    day, ok := dayParam(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
    }
    ctx := c.Request().Context()

    tables, err := h.ResourceRepo.ListEnabledByType(ctx, model.TypeRestaurantTable)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tables"})
    }
    occupancy, err := h.ReservationRepo.OccupancyByDay(ctx, day)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load occupancy"})
    }

    entries := make([]tableEntry, 0, len(tables))
    for _, t := range tables {
        entries = append(entries, tableEntry{
            ID:            t.ID,
            Name:          t.Name,
            OccupiedSeats: occupancy[t.ID],
            TotalSeats:    t.Capacity,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":   day.Format(dayLayout),
        "tables": entries,
    })
}
