package commands

import (
	"context"
	"fmt"
)

type ControlCmd struct {
	Fields ControlFieldsCmd `cmd:"" help:"List writable controls of a device"`
	Get    ControlGetCmd    `cmd:"" help:"Read the current value of a control"`
	Set    ControlSetCmd    `cmd:"" help:"Write a control value"`
}

type ControlFieldsCmd struct {
	deviceFlags
}

func (c *ControlFieldsCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	fields, err := client.GetWebControlFields(ctx, c.ref())
	if err != nil {
		return fmt.Errorf("failed to fetch control fields: %w", err)
	}

	return printJSON(fields)
}

type ControlGetCmd struct {
	deviceFlags
	Field string `arg:"" help:"Control field id"`
}

func (c *ControlGetCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	value, err := client.GetControlValue(ctx, c.ref(), c.Field)
	if err != nil {
		return fmt.Errorf("failed to read control value: %w", err)
	}

	fmt.Println(value)
	return nil
}

type ControlSetCmd struct {
	deviceFlags
	Field string `arg:"" help:"Control field id"`
	Value string `arg:"" help:"Value to write"`
}

func (c *ControlSetCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	if err := client.ControlDevice(ctx, c.ref(), c.Field, c.Value); err != nil {
		return fmt.Errorf("failed to set control value: %w", err)
	}

	fmt.Printf("Control %s set to %s\n", c.Field, c.Value)
	return nil
}
