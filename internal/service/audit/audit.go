package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	domainaudit "github.com/alanyang/dao-janny/internal/domain/audit"
	portaudit "github.com/alanyang/dao-janny/internal/port/audit"
)

// Service serialises decision records and hands them to a content store.
type Service struct {
	store portaudit.Store
}

func NewService(store portaudit.Store) *Service {
	return &Service{store: store}
}

// Record uploads rec and returns the store's content id.
func (s *Service) Record(ctx context.Context, rec domainaudit.Record) (string, error) {
	body, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal audit record: %w", err)
	}

	id, err := s.store.Upload(ctx, rec.Name(), body)
	if err != nil {
		return "", fmt.Errorf("upload audit record %s: %w", rec.Name(), err)
	}

	slog.InfoContext(ctx, "audit record stored", "action", rec.Action, "task_id", rec.TaskID, "content_id", id)
	return id, nil
}

func (s *Service) Get(ctx context.Context, contentID string) (domainaudit.Record, error) {
	body, err := s.store.Fetch(ctx, contentID)
	if err != nil {
		return domainaudit.Record{}, fmt.Errorf("fetch audit record %s: %w", contentID, err)
	}

	var rec domainaudit.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return domainaudit.Record{}, fmt.Errorf("decode audit record %s: %w", contentID, err)
	}
	return rec, nil
}
