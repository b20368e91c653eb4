package rootcmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/artefactual-labs/glmock/pkg/glmock"
)

type RootConfig struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Flags   *ff.FlagSet
	Command *ff.Command

	FixturePath string
	LogLevel    string

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func New(stdin io.Reader, stdout, stderr io.Writer) *RootConfig {
	cfg := &RootConfig{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cfg.Flags = ff.NewFlagSet("glmock")
	cfg.Flags.StringVar(&cfg.FixturePath, 'c', "config", "", "path to a TOML or YAML fixture")
	cfg.Flags.StringVar(&cfg.LogLevel, 0, "log-level", "info", "log level (debug, info, warn, error)")

	cfg.Command = &ff.Command{
		Name:      "glmock",
		Usage:     "glmock [FLAGS] <SUBCOMMAND> ...",
		ShortHelp: "In-memory GitLab client double for CI tests.",
		Flags:     cfg.Flags,
		Exec:      cfg.exec,
	}

	return cfg
}

func (cfg *RootConfig) exec(_ context.Context, args []string) error {
	if len(args) == 0 {
		_, _ = fmt.Fprintln(cfg.Stdout, ffhelp.Command(cfg.Command))
		return ff.ErrHelp
	}
	return errors.New("missing command")
}

func (cfg *RootConfig) Logger() (*slog.Logger, error) {
	cfg.loggerOnce.Do(func() {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			cfg.loggerErr = fmt.Errorf("invalid log level: %w", err)
			return
		}
		handler := slog.NewTextHandler(cfg.Stderr, &slog.HandlerOptions{Level: level})
		cfg.logger = slog.New(handler)
	})
	return cfg.logger, cfg.loggerErr
}

// Client builds a glmock client seeded from the fixture given with --config.
func (cfg *RootConfig) Client() (*glmock.Client, error) {
	if cfg.FixturePath == "" {
		return nil, errors.New("fixture not configured, use --config")
	}

	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}

	c, err := glmock.NewClientFromFile(cfg.FixturePath, glmock.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded fixture.", slog.String("path", cfg.FixturePath))

	return c, nil
}
