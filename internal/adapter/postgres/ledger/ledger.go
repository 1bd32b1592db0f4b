package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainassignment "github.com/alanyang/dao-janny/internal/domain/assignment"
	domainchain "github.com/alanyang/dao-janny/internal/domain/chain"
	portassignment "github.com/alanyang/dao-janny/internal/port/assignment"
)

var _ portassignment.Ledger = (*Repository)(nil)

const entryColumns = `task_id, chain_id, kind, assignee, tx_hash, audit_id,
	confirmed_assignee, confirmed_tx_hash, created_at, updated_at`

// Repository stores the latest assignment per task.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record upserts the tentative assignment. Confirmed columns are left alone so
// a redraw keeps whatever the contract already reported.
func (r *Repository) Record(ctx context.Context, e domainassignment.Entry) error {
	query := `
		INSERT INTO assignments (task_id, chain_id, kind, assignee, tx_hash, audit_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (task_id) DO UPDATE SET
			chain_id   = EXCLUDED.chain_id,
			kind       = EXCLUDED.kind,
			assignee   = EXCLUDED.assignee,
			tx_hash    = EXCLUDED.tx_hash,
			audit_id   = EXCLUDED.audit_id,
			updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query,
		e.TaskID, int64(e.ChainID), string(e.Kind), e.Assignee, e.TxHash, e.AuditID,
	)
	if err != nil {
		return fmt.Errorf("recording assignment %s: %w", e.TaskID, err)
	}
	return nil
}

// Confirm writes the contract's assignee. A task the service never drew gets a
// row with only the confirmed side set.
func (r *Repository) Confirm(ctx context.Context, chainID domainchain.ID, taskID, assignee, txHash string) (domainassignment.Entry, error) {
	query := `
		INSERT INTO assignments (task_id, chain_id, kind, confirmed_assignee, confirmed_tx_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (task_id) DO UPDATE SET
			confirmed_assignee = EXCLUDED.confirmed_assignee,
			confirmed_tx_hash  = EXCLUDED.confirmed_tx_hash,
			updated_at         = NOW()
		RETURNING ` + entryColumns

	e, err := scanEntry(r.pool.QueryRow(ctx, query,
		taskID, int64(chainID), string(domainassignment.KindSubmitted), assignee, txHash,
	))
	if err != nil {
		return domainassignment.Entry{}, fmt.Errorf("confirming assignment %s: %w", taskID, err)
	}
	return e, nil
}

func (r *Repository) Get(ctx context.Context, taskID string) (domainassignment.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM assignments WHERE task_id = $1`

	e, err := scanEntry(r.pool.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainassignment.Entry{}, fmt.Errorf("task %s: %w", taskID, domainassignment.ErrNotFound)
		}
		return domainassignment.Entry{}, fmt.Errorf("querying assignment: %w", err)
	}
	return e, nil
}

func scanEntry(row pgx.Row) (domainassignment.Entry, error) {
	var (
		e       domainassignment.Entry
		chainID int64
		kind    string
	)
	err := row.Scan(
		&e.TaskID, &chainID, &kind, &e.Assignee, &e.TxHash, &e.AuditID,
		&e.ConfirmedAssignee, &e.ConfirmedTxHash, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return domainassignment.Entry{}, err
	}
	e.ChainID = domainchain.ID(chainID)
	e.Kind = domainassignment.Kind(kind)
	return e, nil
}
