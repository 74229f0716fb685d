package cli

import (
	"fmt"

	"github.com/platefit/platefit-cli/internal/ledger"
	"github.com/platefit/platefit-cli/internal/models"
)

type LogAddCmd struct {
	Name     string  `arg:"" help:"Food name."`
	Quantity string  `short:"q" help:"Quantity descriptor, e.g. '1 cup'."`
	Calories float64 `short:"c" help:"Calories." required:""`
	Protein  float64 `short:"p" help:"Protein in grams." default:"0"`
	Carbs    float64 `help:"Carbs in grams." default:"0"`
	Fat      float64 `short:"f" help:"Fat in grams." default:"0"`
	Image    string  `help:"Image reference for entries logged from a photo."`
	Date     string  `short:"d" help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *LogAddCmd) Validate() error {
	if c.Calories < 0 || c.Protein < 0 || c.Carbs < 0 || c.Fat < 0 {
		return fmt.Errorf("macro values must be non-negative")
	}
	return nil
}

func (c *LogAddCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	analysisType := models.AnalysisText
	if c.Image != "" {
		analysisType = models.AnalysisImage
	}

	entry, err := ctx.Ledger.AddFoodEntry(date, ledger.EntryInput{
		FoodName:     c.Name,
		Quantity:     c.Quantity,
		Calories:     c.Calories,
		Protein:      c.Protein,
		Carbs:        c.Carbs,
		Fat:          c.Fat,
		AnalysisType: analysisType,
		ImageURL:     c.Image,
	}, ctx.Token())
	if err != nil {
		return err
	}

	fmt.Printf("Logged %s (%.0f kcal) on %s (ID: %s)\n", entry.FoodName, entry.Calories, date, entry.ID)
	return nil
}

type LogListCmd struct {
	Date string `short:"d" help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *LogListCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	day, ok := ctx.Ledger.Day(date)
	if !ok || len(day.Entries) == 0 {
		fmt.Printf("No entries logged on %s.\n", date)
		return nil
	}

	for _, e := range day.Entries {
		fmt.Printf("%s  %-30s %6.0f kcal  P %5.1fg  C %5.1fg  F %5.1fg\n",
			e.ID, e.FoodName, e.Calories, e.Protein, e.Carbs, e.Fat)
	}
	fmt.Printf("Total: %.0f kcal\n", day.TotalCalories)
	return nil
}

type LogRemoveCmd struct {
	ID   string `arg:"" help:"Entry ID to remove."`
	Date string `short:"d" help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *LogRemoveCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	ctx.Ledger.RemoveFoodEntry(date, c.ID, ctx.Token())
	fmt.Printf("Removed entry %s from %s\n", c.ID, date)
	return nil
}

type LogEditCmd struct {
	ID       string   `arg:"" help:"Entry ID to edit."`
	Date     string   `short:"d" help:"Date (YYYY-MM-DD), defaults to today."`
	Name     *string  `help:"New food name."`
	Quantity *string  `short:"q" help:"New quantity descriptor."`
	Calories *float64 `short:"c" help:"New calories."`
	Protein  *float64 `short:"p" help:"New protein in grams."`
	Carbs    *float64 `help:"New carbs in grams."`
	Fat      *float64 `short:"f" help:"New fat in grams."`
}

func (c *LogEditCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	err = ctx.Ledger.UpdateFoodEntry(date, c.ID, ledger.EntryUpdate{
		FoodName: c.Name,
		Quantity: c.Quantity,
		Calories: c.Calories,
		Protein:  c.Protein,
		Carbs:    c.Carbs,
		Fat:      c.Fat,
	}, ctx.Token())
	if err != nil {
		return err
	}

	fmt.Printf("Updated entry %s on %s\n", c.ID, date)
	return nil
}
