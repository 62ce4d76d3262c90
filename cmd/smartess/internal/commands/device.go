package commands

import (
	"context"
	"fmt"
)

type DeviceCmd struct {
	LastData    DeviceLastDataCmd    `cmd:"" help:"Show the latest telemetry of a device"`
	Params      DeviceParamsCmd      `cmd:"" help:"List readable parameters of a device type"`
	ChartFields DeviceChartFieldsCmd `cmd:"" help:"List plottable fields of a device type"`
	History     DeviceHistoryCmd     `cmd:"" help:"Show one parameter's samples for one day"`
	Page        DevicePageCmd        `cmd:"" help:"Show one page of raw device records"`
	Alias       DeviceAliasCmd       `cmd:"" help:"Rename a device"`
	SendCmd     DeviceSendCmdCmd     `cmd:"" name:"send-cmd" help:"Send a raw command to a device"`
}

type DeviceLastDataCmd struct {
	deviceFlags
}

func (d *DeviceLastDataCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	data, err := client.GetDeviceLastData(ctx, d.ref())
	if err != nil {
		return fmt.Errorf("failed to fetch device data: %w", err)
	}

	return printJSON(data)
}

type DeviceParamsCmd struct {
	Devcode string `arg:"" help:"Device type code"`
}

func (d *DeviceParamsCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	params, err := client.GetDeviceKeyParameters(ctx, d.Devcode)
	if err != nil {
		return fmt.Errorf("failed to fetch device parameters: %w", err)
	}

	return printJSON(params)
}

type DeviceChartFieldsCmd struct {
	Devcode string `arg:"" help:"Device type code"`
}

func (d *DeviceChartFieldsCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	fields, err := client.GetDeviceChartFields(ctx, d.Devcode)
	if err != nil {
		return fmt.Errorf("failed to fetch chart fields: %w", err)
	}

	return printJSON(fields)
}

type DeviceHistoryCmd struct {
	deviceFlags
	Parameter string `help:"Parameter name" required:""`
	Date      string `help:"Day to query (YYYY-MM-DD)" required:""`
}

func (d *DeviceHistoryCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	series, err := client.GetDeviceParameterOneDay(ctx, d.ref(), d.Parameter, d.Date)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}

	return printJSON(series)
}

type DevicePageCmd struct {
	deviceFlags
	Page     int `help:"Page number" default:"1"`
	PageSize int `help:"Records per page" default:"100"`
}

func (d *DevicePageCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	page, err := client.GetDeviceDataPaginated(ctx, d.ref(), d.Page, d.PageSize)
	if err != nil {
		return fmt.Errorf("failed to fetch device records: %w", err)
	}

	return printJSON(page)
}

type DeviceAliasCmd struct {
	deviceFlags
	Alias string `arg:"" help:"New device name"`
}

func (d *DeviceAliasCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	if err := client.EditDeviceAlias(ctx, d.ref(), d.Alias); err != nil {
		return fmt.Errorf("failed to rename device: %w", err)
	}

	fmt.Printf("Device %s renamed to %q\n", d.SN, d.Alias)
	return nil
}

type DeviceSendCmdCmd struct {
	deviceFlags
	Command string `arg:"" help:"Raw command to send"`
}

func (d *DeviceSendCmdCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	if err := client.SendDeviceCommand(ctx, d.ref(), d.Command); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}

	fmt.Println("Command sent")
	return nil
}
