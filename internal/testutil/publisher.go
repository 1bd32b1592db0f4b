//go:build integration

package testutil

import (
	"context"
	"sync"

	"github.com/alanyang/dao-janny/internal/domain/event"
)

// CapturePublisher is a test double for port/eventbus.Publisher.
// It records every event under a mutex so it is safe for concurrent use.
type CapturePublisher struct {
	mu     sync.Mutex
	Events []event.Event
}

func (c *CapturePublisher) Publish(_ context.Context, e event.Event) error {
	c.mu.Lock()
	c.Events = append(c.Events, e)
	c.mu.Unlock()
	return nil
}

// Types returns the recorded event types in publish order.
func (c *CapturePublisher) Types() []event.Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]event.Type, len(c.Events))
	for i, e := range c.Events {
		out[i] = e.Type
	}
	return out
}
