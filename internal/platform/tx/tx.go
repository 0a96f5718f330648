package tx

import "context"

// Manager groups writes that span more than one adapter, such as the
// session file store and its sqlite projection.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
