package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/event"
	portchain "github.com/alanyang/dao-janny/internal/port/chain"
)

// Service follows TaskAssigned logs. The assignment flow never waits on it.
type Service struct {
	source portchain.LogSource
}

func NewService(source portchain.LogSource) *Service {
	return &Service{source: source}
}

// Watch invokes callback for every TaskAssigned log on chainID until the
// returned unsubscribe func is called or ctx ends. Unsubscribe is safe to
// call any number of times.
func (s *Service) Watch(ctx context.Context, chainID chain.ID, callback func(event.TaskAssigned)) (unsubscribe func(), err error) {
	noop := func() {}
	if _, err := chain.Lookup(chainID); err != nil {
		return noop, err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	sub, err := s.source.SubscribeTaskAssigned(watchCtx, chainID, callback)
	if err != nil {
		cancel()
		return noop, fmt.Errorf("subscribe TaskAssigned on chain %d: %w", chainID, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-watchCtx.Done():
				return
			case err, ok := <-sub.Err():
				if !ok {
					return
				}
				if err != nil {
					slog.WarnContext(watchCtx, "watcher: subscription error", "chain_id", chainID, "error", err)
				}
			}
		}
	}()

	slog.InfoContext(ctx, "watcher: following TaskAssigned", "chain_id", chainID)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			sub.Unsubscribe()
			<-done
		})
	}, nil
}
