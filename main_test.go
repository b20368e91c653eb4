package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"gotest.tools/v3/assert"

	"github.com/artefactual-labs/glmock/pkg/glmock"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"glmock": main,
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"fake": glmock.TestScriptCmd,
		},
	})
}

func TestExecRequiresConfig(t *testing.T) {
	t.Parallel()

	var (
		ctx    = context.Background()
		stdin  = strings.NewReader("")
		stdout = io.Discard
		stderr = &bytes.Buffer{}
	)

	err := exec(ctx, []string{"snapshot"}, stdin, stdout, stderr)
	assert.Error(t, err, "fixture not configured, use --config")
}

func TestExecInvalidLogLevel(t *testing.T) {
	t.Parallel()

	var (
		ctx    = context.Background()
		stdin  = strings.NewReader("")
		stdout = io.Discard
		stderr = &bytes.Buffer{}
	)

	err := exec(ctx, []string{"--log-level", "loud", "--config", "fixture.toml", "check"}, stdin, stdout, stderr)
	assert.ErrorContains(t, err, "invalid log level: ")
}

func TestExecUnknownCommand(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}
	err := exec(context.Background(), []string{"frobnicate"}, strings.NewReader(""), io.Discard, stderr)
	assert.Error(t, err, "missing command")
}
