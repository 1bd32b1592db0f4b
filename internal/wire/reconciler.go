package wire

import (
	"context"
	"log/slog"

	"github.com/alanyang/dao-janny/internal/domain/chain"
	"github.com/alanyang/dao-janny/internal/domain/event"
	portassignment "github.com/alanyang/dao-janny/internal/port/assignment"
	porteventbus "github.com/alanyang/dao-janny/internal/port/eventbus"
)

// chainWatcher is the part of the watcher service the reconciler drives.
type chainWatcher interface {
	Watch(ctx context.Context, chainID chain.ID, callback func(event.TaskAssigned)) (func(), error)
}

// startReconciler follows TaskAssigned logs on every chain and records the
// contract's pick next to the tentative assignee. A chain that cannot be
// watched is logged and skipped. The returned func stops every watcher.
func startReconciler(
	ctx context.Context,
	chains []chain.ID,
	w chainWatcher,
	ledger portassignment.Ledger,
	bus porteventbus.Publisher,
) func() {
	var stops []func()
	for _, id := range chains {
		stop, err := w.Watch(ctx, id, func(ev event.TaskAssigned) {
			reconcile(ctx, ledger, bus, ev)
		})
		if err != nil {
			slog.Error("reconciler: cannot watch chain", "chain_id", id, "error", err)
			continue
		}
		stops = append(stops, stop)
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}

func reconcile(ctx context.Context, ledger portassignment.Ledger, bus porteventbus.Publisher, ev event.TaskAssigned) {
	e, err := ledger.Confirm(ctx, chain.ID(ev.ChainID), ev.TaskID, ev.AssignedTo, ev.TxHash)
	if err != nil {
		slog.ErrorContext(ctx, "reconciler: confirm failed", "task_id", ev.TaskID, "chain_id", ev.ChainID, "error", err)
		return
	}
	if e.Mismatch() {
		slog.WarnContext(ctx, "reconciler: on-chain assignee differs from tentative",
			"task_id", e.TaskID, "tentative", e.Assignee, "onchain", e.ConfirmedAssignee)
	}
	if err := bus.Publish(ctx, event.New(event.TypeTaskAssignedOnchain, ev.TaskID, ev.ChainID)); err != nil {
		slog.ErrorContext(ctx, "reconciler: publish failed", "task_id", ev.TaskID, "error", err)
	}
}
