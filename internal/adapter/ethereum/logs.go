package ethereum

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	gethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	gethevent "github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/event"
	portchain "github.com/alanyang/dao-janny/internal/port/chain"
)

// SubscribeTaskAssigned streams TaskAssigned logs over a websocket RPC, or
// polls eth_getLogs when the endpoint cannot push notifications.
func (c *Client) SubscribeTaskAssigned(ctx context.Context, id chain.ID, sink func(event.TaskAssigned)) (portchain.Subscription, error) {
	b, d, err := c.backend(ctx, id)
	if err != nil {
		return nil, err
	}
	q := gethereum.FilterQuery{
		Addresses: []common.Address{d.Contract},
		Topics:    [][]common.Hash{{contractABI.Events["TaskAssigned"].ID}},
	}

	logs := make(chan types.Log, 16)
	sub, err := b.SubscribeFilterLogs(ctx, q, logs)
	switch {
	case errors.Is(err, rpc.ErrNotificationsUnsupported):
		slog.InfoContext(ctx, "ethereum: log push unsupported, polling", "chain_id", id, "interval", c.cfg.PollInterval)
		return c.poll(ctx, b, id, q, sink)
	case err != nil:
		return nil, fmt.Errorf("subscribing to TaskAssigned on chain %d: %w", id, err)
	}

	return gethevent.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case l := <-logs:
				deliver(ctx, id, l, sink)
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			case <-ctx.Done():
				return nil
			}
		}
	}), nil
}

func (c *Client) poll(ctx context.Context, b Backend, id chain.ID, q gethereum.FilterQuery, sink func(event.TaskAssigned)) (portchain.Subscription, error) {
	head, err := b.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading head of chain %d: %w", id, err)
	}
	next := head + 1
	interval := c.cfg.PollInterval

	return gethevent.NewSubscription(func(quit <-chan struct{}) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return nil
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}

			head, err := b.BlockNumber(ctx)
			if err != nil {
				slog.WarnContext(ctx, "ethereum: poll head failed", "chain_id", id, "error", err)
				continue
			}
			if head < next {
				continue
			}

			rq := q
			rq.FromBlock = new(big.Int).SetUint64(next)
			rq.ToBlock = new(big.Int).SetUint64(head)
			found, err := b.FilterLogs(ctx, rq)
			if err != nil {
				slog.WarnContext(ctx, "ethereum: poll logs failed", "chain_id", id, "from", next, "to", head, "error", err)
				continue
			}
			for _, l := range found {
				deliver(ctx, id, l, sink)
			}
			next = head + 1
		}
	}), nil
}

func deliver(ctx context.Context, id chain.ID, l types.Log, sink func(event.TaskAssigned)) {
	if l.Removed {
		return
	}
	ev, err := decodeTaskAssigned(id, l)
	if err != nil {
		slog.WarnContext(ctx, "ethereum: undecodable TaskAssigned log", "chain_id", id, "tx_hash", l.TxHash.Hex(), "error", err)
		return
	}
	sink(ev)
}

func decodeTaskAssigned(id chain.ID, l types.Log) (event.TaskAssigned, error) {
	if len(l.Topics) < 2 {
		return event.TaskAssigned{}, fmt.Errorf("expected 2 topics, got %d", len(l.Topics))
	}
	var out struct {
		TaskID      string   `abi:"taskId"`
		RandomIndex *big.Int `abi:"randomIndex"`
	}
	if err := contractABI.UnpackIntoInterface(&out, "TaskAssigned", l.Data); err != nil {
		return event.TaskAssigned{}, err
	}
	return event.TaskAssigned{
		ChainID:     uint64(id),
		TaskID:      out.TaskID,
		AssignedTo:  common.BytesToAddress(l.Topics[1].Bytes()).Hex(),
		RandomIndex: out.RandomIndex,
		TxHash:      l.TxHash.Hex(),
		BlockNumber: l.BlockNumber,
	}, nil
}
