package interfaces

import (
	"context"

	"github.com/gardener/ghrelease-publisher/pkg/domain/model"
)

// Notifier reports a completed publish to an external channel
type Notifier interface {
	NotifyPublished(ctx context.Context, result *model.PublishResult) error
}
