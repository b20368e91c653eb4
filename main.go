package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/artefactual-labs/glmock/internal/cmd/checkcmd"
	"github.com/artefactual-labs/glmock/internal/cmd/rootcmd"
	"github.com/artefactual-labs/glmock/internal/cmd/snapshotcmd"
	"github.com/artefactual-labs/glmock/internal/cmd/versioncmd"
)

func main() {
	ctx := context.Background()
	args := os.Args[1:]
	stdin := os.Stdin
	stdout := os.Stdout
	stderr := os.Stderr

	if err := exec(ctx, args, stdin, stdout, stderr); err != nil {
		if errors.Is(err, ff.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err) //nolint:errcheck
		os.Exit(1)
	}
}

func exec(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := rootcmd.New(stdin, stdout, stderr)
	_ = checkcmd.New(root)
	_ = snapshotcmd.New(root)
	_ = versioncmd.New(root)

	if err := root.Command.Parse(args, ff.WithEnvVarPrefix("GLMOCK")); err != nil {
		_, _ = fmt.Fprintf(stderr, "\n%s\n", ffhelp.Command(root.Command))
		return err
	}

	return root.Command.Run(ctx)
}
