package commands

import (
	"context"
	"fmt"
)

type DomainsCmd struct{}

func (d *DomainsCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, true)
	if err != nil {
		return err
	}

	domains, err := client.GetDomains(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch domains: %w", err)
	}

	return printJSON(domains)
}

type ProtocolCmd struct {
	PN string `arg:"" help:"Collector part number"`
}

func (p *ProtocolCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, true)
	if err != nil {
		return err
	}

	protocol, err := client.GetCollectorProtocol(ctx, p.PN)
	if err != nil {
		return fmt.Errorf("failed to fetch collector protocol: %w", err)
	}

	return printJSON(protocol)
}

type CurrenciesCmd struct{}

func (c *CurrenciesCmd) Run(ctx context.Context, globals *Globals) error {
	client, err := newClient(globals, false)
	if err != nil {
		return err
	}

	currencies, err := client.GetCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch currencies: %w", err)
	}

	return printJSON(currencies)
}
