package out

import (
	"context"

	"pomoterm/internal/modules/notify/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host runs notifier plugin binaries over the rpc contract.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Deliver(ctx context.Context, manifest domain.Manifest, notification domain.Notification) error
}

// DesktopNotifier is the built-in channel.
type DesktopNotifier interface {
	Notify(ctx context.Context, title, body string) error
}
