package interfaces

import (
	"context"
	"os"

	"github.com/gardener/ghrelease-publisher/pkg/domain/model"
)

// ReleaseClient defines the GitHub release operations needed for publishing
type ReleaseClient interface {
	// GetReleaseByTag finds the release whose tag equals tag exactly
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*model.Release, error)

	// UploadReleaseAsset attaches file to the release under name with the given content type
	UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, name, contentType string, file *os.File) (*model.ReleaseAsset, error)
}
