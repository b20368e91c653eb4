package glmock

import (
	"log/slog"
	"testing"
)

// NewTestClient returns a Client whose debug logs go to the test output.
func NewTestClient(t *testing.T, cfg Config, opts ...Option) *Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(t.Output(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewClient(cfg, append([]Option{WithLogger(logger)}, opts...)...)
}

// NewTestClientFromFile is NewTestClient for a fixture file. It fails the
// test when the fixture cannot be loaded.
func NewTestClientFromFile(t *testing.T, path string, opts ...Option) *Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(t.Output(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, err := NewClientFromFile(path, append([]Option{WithLogger(logger)}, opts...)...)
	if err != nil {
		t.Fatalf("load glmock fixture: %v", err)
	}
	return c
}
