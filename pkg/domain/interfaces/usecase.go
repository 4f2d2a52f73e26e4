package interfaces

import (
	"context"

	"github.com/gardener/ghrelease-publisher/pkg/domain/model"
)

// PublishUseCase uploads the build artifact to the release matching VERSION
type PublishUseCase interface {
	Publish(ctx context.Context, input *model.PublishInput) (*model.PublishResult, error)
}
