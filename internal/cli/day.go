package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	barFilled   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	barOverGoal = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *DayCmd) Run(ctx *Context) error {
	date, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Ledger.SetCurrentDate(date); err != nil {
		return err
	}

	day := ctx.Ledger.CurrentDayNutrition()
	goals := ctx.Ledger.UserGoals()
	progress := ctx.Ledger.ProgressPercentages(date)

	fmt.Println(titleStyle.Render(fmt.Sprintf("Nutrition for %s", date)))

	if len(day.Entries) == 0 {
		fmt.Println(mutedStyle.Render("No entries logged."))
	}
	for _, e := range day.Entries {
		qty := ""
		if e.Quantity != "" {
			qty = " (" + e.Quantity + ")"
		}
		fmt.Printf("  %-30s %6.0f kcal  P %5.1fg  C %5.1fg  F %5.1fg\n",
			e.FoodName+qty, e.Calories, e.Protein, e.Carbs, e.Fat)
		fmt.Println(mutedStyle.Render("    id: " + e.ID))
	}

	fmt.Println()
	printMacroBar("Calories", day.TotalCalories, goals.Calories, progress.Calories)
	printMacroBar("Protein", day.TotalProtein, goals.Protein, progress.Protein)
	printMacroBar("Carbs", day.TotalCarbs, goals.Carbs, progress.Carbs)
	printMacroBar("Fat", day.TotalFat, goals.Fat, progress.Fat)

	if !day.Synced && len(day.Entries) > 0 {
		fmt.Println(mutedStyle.Render("\n(not yet synced)"))
	}

	return nil
}

// printMacroBar renders one macro as a 20-cell progress bar.
func printMacroBar(label string, total, goal, pct float64) {
	const width = 20

	filled := int(pct / 100 * width)
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := barFilled
	if pct > 100 {
		style = barOverGoal
	}

	fmt.Printf("  %-8s %s %6.0f / %.0f (%.0f%%)\n", label, style.Render(bar), total, goal, pct)
}
