package idempotency

import "context"

// Response is a stored HTTP response replayed for a repeated key.
type Response struct {
	Status int
	Body   []byte
}

// Store remembers responses of processed operations by client key.
type Store interface {
	Check(ctx context.Context, key string) (Response, bool, error)
	Store(ctx context.Context, key, opType string, resp Response) error
}
