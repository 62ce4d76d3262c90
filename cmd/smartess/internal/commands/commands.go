package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arnoutzw/Anenji-smartess/internal/api"
	"github.com/arnoutzw/Anenji-smartess/internal/config"
	"github.com/arnoutzw/Anenji-smartess/internal/logger"
	"github.com/arnoutzw/Anenji-smartess/internal/session"
	"github.com/arnoutzw/Anenji-smartess/internal/transport"
)

type Globals struct {
	Config  string
	Debug   bool
	Version string
}

// deviceFlags are the four identifiers every per-device command needs.
type deviceFlags struct {
	PN      string `help:"Collector part number" required:""`
	Devcode string `help:"Device type code" required:""`
	Devaddr string `help:"Device bus address" required:""`
	SN      string `help:"Device serial number" required:""`
}

func (d deviceFlags) ref() api.DeviceRef {
	return api.DeviceRef{PN: d.PN, Devcode: d.Devcode, Devaddr: d.Devaddr, SN: d.SN}
}

// newClient wires config, session store and transport into a client.
// cached selects the caching HTTP client, only useful for the public
// catalog commands.
func newClient(globals *Globals, cached bool) (*api.Client, error) {
	logger.Setup(globals.Debug)

	cfg, err := config.Load(configPath(globals))
	if err != nil {
		return nil, err
	}

	store, err := session.NewStore(cfg.CredentialsDir)
	if err != nil {
		return nil, err
	}
	// Each invocation is a fresh process; pick up the session persisted
	// by a previous login.
	if _, err := store.Load(); err != nil {
		return nil, err
	}

	tc := cfg.Transport()
	if cached {
		tc.HTTPClient = transport.NewCachingHTTPClient(cfg.CacheDir)
	}

	tr, err := transport.New(tc)
	if err != nil {
		return nil, err
	}

	return api.NewClient(store, tr, cfg.Language), nil
}

func configPath(globals *Globals) string {
	if globals.Config != "" {
		return globals.Config
	}
	return config.DefaultPath()
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
