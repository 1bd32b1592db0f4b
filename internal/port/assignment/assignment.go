package assignment

import (
	"context"

	domainassignment "github.com/alanyang/dao-janny/internal/domain/assignment"
	domainchain "github.com/alanyang/dao-janny/internal/domain/chain"
)

// Ledger keeps the latest assignment per task. It is bookkeeping only; the
// contract is the authority on who holds a task.
type Ledger interface {
	Record(ctx context.Context, e domainassignment.Entry) error
	// Confirm stores the on-chain assignee next to the tentative one.
	Confirm(ctx context.Context, chainID domainchain.ID, taskID, assignee, txHash string) (domainassignment.Entry, error)
	Get(ctx context.Context, taskID string) (domainassignment.Entry, error)
}
