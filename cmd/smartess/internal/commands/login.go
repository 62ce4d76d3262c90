package commands

import (
	"context"
	"fmt"
)

type LoginCmd struct {
	Email    string `help:"Account email" required:""`
	Password string `help:"Account password" required:"" env:"SMARTESS_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	result, err := client.Login(ctx, l.Email, l.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("Logged in as %s (user id %s)\n", l.Email, result.UserID)
	return nil
}

type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	if err := client.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	fmt.Println("Logged out")
	return nil
}
