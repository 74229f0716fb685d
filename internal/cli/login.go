package cli

import (
	"errors"
	"fmt"

	"github.com/platefit/platefit-cli/internal/keyring"
)

type LoginCmd struct {
	Token string `arg:"" help:"API bearer token to store in the OS keyring."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	if err := keyring.SetToken(c.Token); err != nil {
		return err
	}
	fmt.Println("Token stored. Sync is enabled.")
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := keyring.DeleteToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No token stored.")
			return nil
		}
		return err
	}
	fmt.Println("Token removed. Operating locally only.")
	return nil
}
