package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	portaudit "github.com/alanyang/dao-janny/internal/port/audit"
)

var _ portaudit.Store = (*Repository)(nil)

// ErrNotFound is returned by Fetch for an unknown content id.
var ErrNotFound = errors.New("audit record not found")

// Repository is a content-addressed audit document table. The id is the
// sha256 of the document, so identical uploads collapse to one row.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func ContentID(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func (r *Repository) Upload(ctx context.Context, name string, content []byte) (string, error) {
	id := ContentID(content)
	query := `
		INSERT INTO audit_records (id, name, content, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id) DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, id, name, string(content)); err != nil {
		return "", fmt.Errorf("storing audit record %s: %w", name, err)
	}
	return id, nil
}

func (r *Repository) Fetch(ctx context.Context, id string) ([]byte, error) {
	var content string
	err := r.pool.QueryRow(ctx, `SELECT content FROM audit_records WHERE id = $1`, id).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("audit record %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("querying audit record: %w", err)
	}
	return []byte(content), nil
}
