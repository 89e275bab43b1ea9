package database

import (
	"context"
	"fmt"
	"log"

	"github.com/iliyamo/workspace-reservation/internal/model"
	"github.com/iliyamo/workspace-reservation/internal/repository"
)

// SeedDemoFloor populates an empty catalog with the demo office floor:
// the event hall, fifteen desks, two team rooms, two meeting rooms and
// three restaurant tables, with the geometry the map client expects.
// It is a no-op when the catalog already contains resources, so it is
// safe to run on every startup of a dev environment.
func SeedDemoFloor(ctx context.Context, resources *repository.ResourceRepo) error {
	hasAny, err := resources.HasAny(ctx)
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if hasAny {
		return nil
	}
	log.Printf("seed: generating demo floor plan")

	var floor []*model.Resource

	floor = append(floor, &model.Resource{
		Code: "event-main", Name: "Main Hall", Type: model.TypeEventHall,
		Capacity: 50, X: 35, Y: 30, Width: 350, Height: 250,
	})

	deskNo := 1
	for r := 0; r < 5; r++ {
		for c := 0; c < 3; c++ {
			floor = append(floor, &model.Resource{
				Code: fmt.Sprintf("desk-%d", deskNo), Name: fmt.Sprintf("Desk %d", deskNo),
				Type: model.TypeDesk, Capacity: 1,
				X: 570 + (c * 50), Y: 30 + (r * 50), Width: 30, Height: 30,
			})
			deskNo++
		}
	}

	floor = append(floor,
		&model.Resource{
			Code: "dev-1", Name: "Team Alpha", Type: model.TypeTeamRoom,
			Capacity: 6, X: 250, Y: 470, Width: 120, Height: 80,
		},
		&model.Resource{
			Code: "dev-2", Name: "Team Beta", Type: model.TypeTeamRoom,
			Capacity: 6, X: 450, Y: 470, Width: 120, Height: 80,
		},
		&model.Resource{
			Code: "meet-1", Name: "Sala Red", Type: model.TypeMeetingRoom,
			Capacity: 6, X: 40, Y: 485, Width: 125, Height: 50,
		},
		&model.Resource{
			Code: "meet-2", Name: "Sala Blue", Type: model.TypeMeetingRoom,
			Capacity: 6, X: 640, Y: 485, Width: 125, Height: 50,
		},
	)

	for i := 0; i < 3; i++ {
		floor = append(floor, &model.Resource{
			Code: fmt.Sprintf("rist-%d", i+1), Name: fmt.Sprintf("Tavolo %d", i+1),
			Type: model.TypeRestaurantTable, Capacity: 4,
			X: 820, Y: 45 + (i * 115), Width: 100, Height: 50,
		})
	}

	for _, res := range floor {
		if err := resources.Create(ctx, res); err != nil {
			return fmt.Errorf("seed resource %s: %w", res.Code, err)
		}
	}
	log.Printf("seed: created %d resources", len(floor))
	return nil
}
