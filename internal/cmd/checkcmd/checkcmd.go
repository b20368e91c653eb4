package checkcmd

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
}

func New(parent *rootcmd.RootConfig) *Config {
	cfg := &Config{RootConfig: parent}
	cfg.Flags = ff.NewFlagSet("check").SetParent(parent.Flags)

	cfg.Command = &ff.Command{
		Name:      "check",
		Usage:     "glmock check --config FILE",
		ShortHelp: "Validate a fixture and summarize what it seeds.",
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

	var variables, packages int
	for _, p := range c.Projects.List() {
		variables += p.Variables.Len()
		packages += len(p.GenericPackages.Packages())
	}

	_, err = fmt.Fprintf(cfg.Stdout, "ok: %d projects, %d variables, %d packages\n", c.Projects.Len(), variables, packages)

	return err
}
