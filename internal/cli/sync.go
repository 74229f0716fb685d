package cli

import (
	"context"
	"fmt"
)

type SyncCmd struct{}

func (c *SyncCmd) Run(ctx *Context) error {
	token := ctx.Token()
	if token == "" {
		fmt.Println("No API token stored; run 'platefit login <token>' to enable sync.")
		return nil
	}

	if err := ctx.Ledger.SyncNutritionData(context.Background(), token); err != nil {
		return err
	}

	fmt.Printf("Sync complete (last synced: %s)\n", ctx.Ledger.LastSyncedAt())
	return nil
}

type FetchCmd struct {
	Date string `arg:"" help:"Date (YYYY-MM-DD) to fetch from the server."`
}

func (c *FetchCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	day, err := ctx.Ledger.FetchDayNutrition(context.Background(), date, ctx.Token())
	if err != nil {
		return err
	}

	fmt.Printf("Fetched %s: %d entries, %.0f kcal\n", date, len(day.Entries), day.TotalCalories)
	return nil
}
