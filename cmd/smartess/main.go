package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/arnoutzw/Anenji-smartess/cmd/smartess/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login      commands.LoginCmd      `cmd:"" help:"Authenticate and store a session"`
		Logout     commands.LogoutCmd     `cmd:"" help:"Revoke and clear the stored session"`
		Account    commands.AccountCmd    `cmd:"" help:"Show account information"`
		Plant      commands.PlantCmd      `cmd:"" help:"Show plant information"`
		Device     commands.DeviceCmd     `cmd:"" help:"Query device data"`
		Control    commands.ControlCmd    `cmd:"" help:"Read and write device controls"`
		Domains    commands.DomainsCmd    `cmd:"" help:"List regional endpoints"`
		Protocol   commands.ProtocolCmd   `cmd:"" help:"Show collector protocol information"`
		Currencies commands.CurrenciesCmd `cmd:"" help:"List supported currencies"`
		Config     string                 `help:"Path to config file." type:"path"`
		Debug      bool                   `help:"Enable debug mode."`
		Version    kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Config: cli.Config, Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
