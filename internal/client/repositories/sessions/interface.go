// Package sessions persists the client's local session state as key/value
// pairs in SQLite, so a restarted client resumes its signed-in identity.
package sessions

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
