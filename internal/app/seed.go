package app

import (
	"context"
	"fmt"

	"github.com/poofware/widget-service/internal/models"
	"github.com/poofware/widget-service/internal/repositories"
	"github.com/poofware/widget-service/internal/utils"
)

var seedWidgets = []models.Widget{
	{Name: "Widget Name", Description: "Description"},
	{Name: "Widget 2 Name", Description: "Description 2"},
}

// SeedAllTestData inserts the sample widgets into an empty store.
// It is a no-op if any widget already exists.
func SeedAllTestData(ctx context.Context, repo repositories.WidgetRepository) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count widgets: %w", err)
	}
	if n > 0 {
		utils.Logger.Info("Seed data already present; skipping seeding.")
		return nil
	}

	for i := range seedWidgets {
		w := seedWidgets[i]
		if err := repo.Create(ctx, &w); err != nil {
			return fmt.Errorf("seed widget %q: %w", w.Name, err)
		}
		utils.Logger.Debugf("Seeded widget %d (%s)", w.ID, w.Name)
	}
	utils.Logger.Infof("Seeded %d widgets", len(seedWidgets))
	return nil
}
