package snapshotcmd

import (
	"context"
	"fmt"

	"github.com/peterbourgon/ff/v4"

	"github.com/artefactual-labs/glmock/internal/cmd/rootcmd"
)

type Config struct {
	*rootcmd.RootConfig
	Command *ff.Command
	Flags   *ff.FlagSet

	Format string
}

func New(parent *rootcmd.RootConfig) *Config {
	cfg := &Config{RootConfig: parent}
	cfg.Flags = ff.NewFlagSet("snapshot").SetParent(parent.Flags)
	cfg.Flags.StringVar(&cfg.Format, 'f', "format", "toml", "output format (toml, yaml)")

	cfg.Command = &ff.Command{
		Name:      "snapshot",
		Usage:     "glmock snapshot --config FILE [--format toml|yaml]",
		ShortHelp: "Load a fixture and print the resulting client state.",
		Flags:     cfg.Flags,
		Exec:      cfg.Exec,
	}

	parent.Command.Subcommands = append(parent.Command.Subcommands, cfg.Command)
	return cfg
}

func (cfg *Config) Exec(ctx context.Context, _ []string) error {
	c, err := cfg.Client()
	if err != nil {
		return err
	}

	snap := c.Snapshot()

	var data []byte
	switch cfg.Format {
	case "toml":
		data, err = snap.MarshalTOML()
	case "yaml":
		data, err = snap.EncodeYAML()
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = cfg.Stdout.Write(data)

	return err
}
