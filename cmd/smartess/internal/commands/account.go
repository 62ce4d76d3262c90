package commands

import (
	"context"
	"fmt"
)

type AccountCmd struct{}

func (a *AccountCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	info, err := client.GetAccountInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch account info: %w", err)
	}

	return printJSON(info)
}

type PlantCmd struct {
	PlantID string `arg:"" help:"Plant identifier"`
}

func (p *PlantCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	plant, err := client.GetPlantInfo(ctx, p.PlantID)
	if err != nil {
		return fmt.Errorf("failed to fetch plant info: %w", err)
	}

	return printJSON(plant)
}
