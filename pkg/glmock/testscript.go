package glmock

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/aarondl/opt/omit"
	"github.com/rogpeppe/go-internal/testscript"
)

// TestScriptCmd implements the glmock testscript command. Scripts start with
// "glmock init" and then address registries as "projects",
// "projects/<id>/variables" or "projects/<id>/generic_packages".
func TestScriptCmd(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) == 0 {
		ts.Fatalf("glmock: missing subcommand")
	}
	sub, rest := args[0], args[1:]
	if sub == "init" {
		glmockInit(ts, neg, rest)
		return
	}

	c, ok := getGlmockClient(ts)
	if !ok {
		ts.Fatalf("glmock %s: client not initialized, run glmock init first", sub)
	}

	var err error
	switch sub {
	case "create":
		err = glmockCreate(c, rest)
	case "get":
		err = glmockGet(ts, c, rest)
	case "update":
		err = glmockUpdate(c, rest)
	case "delete":
		err = glmockDelete(c, rest)
	case "upload":
		err = glmockUpload(c, rest)
	case "package":
		err = glmockPackage(ts, c, rest)
	case "snapshot":
		err = glmockSnapshot(ts, c, rest)
	default:
		ts.Fatalf("glmock: unknown subcommand %q", sub)
	}

	if neg {
		if err == nil {
			ts.Fatalf("glmock %s: unexpected success", sub)
		}
		if !errors.Is(err, ErrNotFound) {
			ts.Fatalf("glmock %s: %v", sub, err)
		}
		return
	}
	if err != nil {
		ts.Fatalf("glmock %s: %v", sub, err)
	}
}

func glmockInit(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("glmock init: negation not supported")
	}
	if _, ok := getGlmockClient(ts); ok {
		ts.Fatalf("glmock init: client already initialized")
	}

	fs := flag.NewFlagSet("glmock init", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "path to a TOML or YAML fixture")
	url := fs.String("url", "", "base URL, overrides the fixture")
	privateToken := fs.String("private-token", "", "private token, overrides the fixture")
	jobToken := fs.String("job-token", "", "job token, overrides the fixture")
	if err := fs.Parse(args); err != nil {
		ts.Fatalf("glmock init: %v", err)
	}

	f := &Fixture{}
	if *configPath != "" {
		loaded, err := LoadFixture(ts.MkAbs(*configPath))
		if err != nil {
			ts.Fatalf("glmock init: %v", err)
		}
		f = loaded
	}
	if *url != "" {
		f.Client.URL = *url
	}
	if *privateToken != "" {
		f.Client.PrivateToken = *privateToken
	}
	if *jobToken != "" {
		f.Client.JobToken = *jobToken
	}

	logger := slog.New(slog.NewTextHandler(ts.Stderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, err := NewClientFromFixture(f, WithLogger(logger))
	if err != nil {
		ts.Fatalf("glmock init: %v", err)
	}

	setGlmockClient(ts, c)
	ts.Defer(func() {
		clearGlmockClient(ts)
	})
	ts.Setenv("GLMOCK_URL", c.URL())
}

func glmockCreate(c *Client, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: create <registry> <id>")
	}
	reg, err := c.resolveRegistry(args[0])
	if err != nil {
		return err
	}
	reg.Create(args[1])
	return nil
}

func glmockGet(ts *testscript.TestScript, c *Client, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: get <registry> <id>")
	}
	reg, err := c.resolveRegistry(args[0])
	if err != nil {
		return err
	}
	r, err := reg.lookup(args[1])
	if err != nil {
		return err
	}
	attrs, ok := r.Attributes.Get()
	if !ok {
		return nil
	}
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		fmt.Fprintf(ts.Stdout(), "%s=%s\n", k, attrs[k])
	}
	return nil
}

func glmockUpdate(c *Client, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: update <registry> <id> [key=value...]")
	}
	reg, err := c.resolveRegistry(args[0])
	if err != nil {
		return err
	}
	attrs := omit.Val[Attributes]{}
	if len(args) > 2 {
		m := make(Attributes, len(args)-2)
		for _, kv := range args[2:] {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid attribute %q, want key=value", kv)
			}
			m[k] = v
		}
		attrs = omit.From(m)
	}
	reg.Update(args[1], attrs)
	return nil
}

func glmockDelete(c *Client, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: delete <registry> <id>")
	}
	reg, err := c.resolveRegistry(args[0])
	if err != nil {
		return err
	}
	return reg.Delete(args[1])
}

func glmockUpload(c *Client, args []string) error {
	if len(args) != 5 {
		return errors.New("usage: upload <project> <name> <version> <file> <path>")
	}
	p, err := c.Projects.Get(args[0])
	if err != nil {
		return err
	}
	p.GenericPackages.Upload(args[1], args[2], args[3], args[4])
	return nil
}

func glmockPackage(ts *testscript.TestScript, c *Client, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: package <project> <name>")
	}
	p, err := c.Projects.Get(args[0])
	if err != nil {
		return err
	}
	rec, err := p.GenericPackages.Package(args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(ts.Stdout(), "%s %s %s\n", rec.Version, rec.FileName, rec.Path)
	return nil
}

func glmockSnapshot(ts *testscript.TestScript, c *Client, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	data, err := c.Snapshot().MarshalTOML()
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if _, err := ts.Stdout().Write(data); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}

// registry is the part of a registry that does not depend on its resource
// type.
type registry interface {
	Create(id string)
	Update(id string, attrs omit.Val[Attributes])
	Delete(id string) error
	lookup(id string) (*Resource, error)
}

// resolveRegistry resolves a registry address such as "projects/<id>/variables".
func (c *Client) resolveRegistry(addr string) (registry, error) {
	if addr == kindProjects {
		return c.Projects, nil
	}
	rest, ok := strings.CutPrefix(addr, kindProjects+"/")
	if !ok {
		return nil, fmt.Errorf("unknown registry %q", addr)
	}
	if id, ok := strings.CutSuffix(rest, "/"+kindVariables); ok {
		p, err := c.Projects.Get(id)
		if err != nil {
			return nil, err
		}
		return p.Variables, nil
	}
	if id, ok := strings.CutSuffix(rest, "/"+kindGenericPackages); ok {
		p, err := c.Projects.Get(id)
		if err != nil {
			return nil, err
		}
		return p.GenericPackages, nil
	}
	return nil, fmt.Errorf("unknown registry %q", addr)
}

func setGlmockClient(ts *testscript.TestScript, c *Client) {
	glmockMu.Lock()
	defer glmockMu.Unlock()
	glmockClients[ts] = c
}

func getGlmockClient(ts *testscript.TestScript) (*Client, bool) {
	glmockMu.Lock()
	defer glmockMu.Unlock()
	c, ok := glmockClients[ts]
	return c, ok
}

func clearGlmockClient(ts *testscript.TestScript) {
	glmockMu.Lock()
	defer glmockMu.Unlock()
	delete(glmockClients, ts)
}

var (
	glmockMu      sync.Mutex
	glmockClients = make(map[*testscript.TestScript]*Client)
)
