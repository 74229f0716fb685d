package cli

import (
	"fmt"

	"github.com/platefit/platefit-cli/internal/models"
)

type GoalsShowCmd struct{}

func (c *GoalsShowCmd) Run(ctx *Context) error {
	goals := ctx.Ledger.UserGoals()
	remaining := ctx.Ledger.RemainingMacros("")

	fmt.Println("Daily goals:")
	fmt.Printf("  Calories: %.0f kcal (%.0f remaining today)\n", goals.Calories, remaining.Calories)
	fmt.Printf("  Protein:  %.0f g (%.0f remaining today)\n", goals.Protein, remaining.Protein)
	fmt.Printf("  Carbs:    %.0f g (%.0f remaining today)\n", goals.Carbs, remaining.Carbs)
	fmt.Printf("  Fat:      %.0f g (%.0f remaining today)\n", goals.Fat, remaining.Fat)
	return nil
}

type GoalsSetCmd struct {
	Calories float64 `short:"c" help:"Daily calorie target." required:""`
	Protein  float64 `short:"p" help:"Daily protein target in grams." required:""`
	Carbs    float64 `help:"Daily carbs target in grams." required:""`
	Fat      float64 `short:"f" help:"Daily fat target in grams." required:""`
}

func (c *GoalsSetCmd) Validate() error {
	if c.Calories < 0 || c.Protein < 0 || c.Carbs < 0 || c.Fat < 0 {
		return fmt.Errorf("goal values must be non-negative")
	}
	return nil
}

func (c *GoalsSetCmd) Run(ctx *Context) error {
	ctx.Ledger.UpdateNutritionGoals(models.Goals{
		Calories: c.Calories,
		Protein:  c.Protein,
		Carbs:    c.Carbs,
		Fat:      c.Fat,
	})

	fmt.Println("Updated daily goals.")
	return nil
}
