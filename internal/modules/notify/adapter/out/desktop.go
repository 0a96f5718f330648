package out

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"

	notifyout "pomoterm/internal/modules/notify/port/out"
)

// BeeepNotifier posts through the platform notification daemon.
type BeeepNotifier struct{}

func NewBeeepNotifier() notifyout.DesktopNotifier {
	return BeeepNotifier{}
}

func (BeeepNotifier) Notify(_ context.Context, title, body string) error {
	if err := beeep.Notify(title, body, ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}
