package ports

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// Notifier publishes a serialized event envelope to one realtime room.
// Which rooms receive which event is the NotificationPolicy's decision;
// the notifier only delivers.
type Notifier interface {
	Publish(ctx context.Context, room services.Room, payload []byte) error
}
