package router

import (
	"context"
	"testing"
)

// testContext returns a context canceled when the test finishes,
// mirroring testing.T.Context (Go 1.24+) for older toolchains.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
