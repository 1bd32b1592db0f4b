package audit

import (
	"context"

	domainaudit "github.com/alanyang/dao-janny/internal/domain/audit"
)

// Store persists audit documents and returns a content identifier.
// [LSP] Lighthouse and the Postgres content table are interchangeable.
type Store interface {
	Upload(ctx context.Context, name string, content []byte) (contentID string, err error)
	Fetch(ctx context.Context, contentID string) ([]byte, error)
}

// Recorder is what the orchestrator needs from the audit service.
// [ISP] Callers that only write records do not see Fetch.
type Recorder interface {
	Record(ctx context.Context, rec domainaudit.Record) (contentID string, err error)
}
