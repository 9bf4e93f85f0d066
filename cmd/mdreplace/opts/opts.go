package opts

import (
	"context"

	"github.com/walteh/mdreplace/pkg/config"
	"github.com/walteh/mdreplace/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
	NoColor    bool

	// Logger is set once flags are parsed
	Logger *log.Logger
}

// LoadConfig loads and validates the config file named by the flags
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
