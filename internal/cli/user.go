package cli

import (
	"fmt"

	"github.com/platefit/platefit-cli/internal/models"
)

type UserSetCmd struct {
	Email string `arg:"" help:"Account email."`
	Name  string `help:"Display name."`
	Age   int    `help:"Age in years."`
	Plan  string `help:"Subscription plan tag."`
}

func (c *UserSetCmd) Run(ctx *Context) error {
	current := ctx.Ledger.User()
	if current.IsZero() {
		plan := c.Plan
		if plan == "" {
			plan = "free"
		}
		ctx.Ledger.SetUser(models.User{
			Email: c.Email,
			Plan:  plan,
			Profile: models.Profile{
				Name: c.Name,
				Age:  c.Age,
			},
		})
		fmt.Printf("Set user: %s\n", c.Email)
		return nil
	}

	// Merge into the existing profile instead of wiping goals and
	// extension fields.
	partial := map[string]any{}
	if c.Name != "" {
		partial["name"] = c.Name
	}
	if c.Age != 0 {
		partial["age"] = c.Age
	}
	if len(partial) > 0 {
		if err := ctx.Ledger.UpdateUserProfile(partial); err != nil {
			return err
		}
	}

	current = ctx.Ledger.User()
	current.Email = c.Email
	if c.Plan != "" {
		current.Plan = c.Plan
	}
	ctx.Ledger.SetUser(current)

	fmt.Printf("Updated user: %s\n", c.Email)
	return nil
}

type UserShowCmd struct{}

func (c *UserShowCmd) Run(ctx *Context) error {
	user := ctx.Ledger.User()
	if user.IsZero() {
		fmt.Println("No user set. Run 'platefit user set <email>' first.")
		return nil
	}

	fmt.Printf("Email: %s\n", user.Email)
	if user.Profile.Name != "" {
		fmt.Printf("Name:  %s\n", user.Profile.Name)
	}
	if user.Profile.Age != 0 {
		fmt.Printf("Age:   %d\n", user.Profile.Age)
	}
	if user.Plan != "" {
		fmt.Printf("Plan:  %s\n", user.Plan)
	}
	return nil
}

type UserClearCmd struct{}

func (c *UserClearCmd) Run(ctx *Context) error {
	ctx.PerformAutomaticBackup()
	ctx.Ledger.ClearUser()
	fmt.Println("Cleared user. Nutrition history is kept.")
	return nil
}
