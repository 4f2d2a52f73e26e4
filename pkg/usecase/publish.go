package usecase

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"

	"github.com/gardener/ghrelease-publisher/pkg/domain/interfaces"
	"github.com/gardener/ghrelease-publisher/pkg/domain/model"
	"github.com/gardener/ghrelease-publisher/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type publishUseCase struct {
	releaseClient interfaces.ReleaseClient
	notifier      interfaces.Notifier
}

// PublishOption configures the publish use case
type PublishOption func(*publishUseCase)

// WithNotifier sets a notifier called after a successful upload
func WithNotifier(notifier interfaces.Notifier) PublishOption {
	return func(uc *publishUseCase) {
		uc.notifier = notifier
	}
}

// NewPublish creates a new instance of PublishUseCase
func NewPublish(releaseClient interfaces.ReleaseClient, opts ...PublishOption) interfaces.PublishUseCase {
	uc := &publishUseCase{
		releaseClient: releaseClient,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Publish uploads the build artifact to the release tagged with the VERSION file contents
func (uc *publishUseCase) Publish(ctx context.Context, input *model.PublishInput) (*model.PublishResult, error) {
	logger := ctxlog.From(ctx)

	if err := input.Validate(); err != nil {
		return nil, err
	}
	repo, err := model.ParseRepository(input.Repository)
	if err != nil {
		return nil, err
	}

	repoDir, err := resolvePath(input.RepoDir)
	if err != nil {
		return nil, err
	}
	outDir, err := resolvePath(input.OutDir)
	if err != nil {
		return nil, err
	}

	version, err := readVersion(filepath.Join(repoDir, model.VersionFileName))
	if err != nil {
		return nil, err
	}

	assetPath := filepath.Join(outDir, model.OutputFileName)
	file, err := os.Open(assetPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open build artifact",
			goerr.V("path", assetPath),
			goerr.T(types.ErrTagFilesystem),
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warn("Failed to close build artifact", "path", assetPath, "error", err)
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat build artifact",
			goerr.V("path", assetPath),
			goerr.T(types.ErrTagFilesystem),
		)
	}
	if info.IsDir() {
		return nil, goerr.New("build artifact is a directory",
			goerr.V("path", assetPath),
			goerr.T(types.ErrTagFilesystem),
		)
	}

	if input.VerifyArchive {
		if err := verifyArchive(file, info.Size()); err != nil {
			return nil, err
		}
		logger.Debug("Verified build artifact is a zip archive", "path", assetPath)
	}

	logger.Info("Looking up release",
		"owner", repo.Owner,
		"repo", repo.Name,
		"tag", version,
	)

	release, err := uc.releaseClient.GetReleaseByTag(ctx, repo.Owner, repo.Name, version)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get release by tag",
			goerr.V("repository", repo.String()),
			goerr.V("tag", version),
		)
	}

	assetName := model.AssetName(version)
	logger.Info("Uploading release asset",
		"release_id", release.ID,
		"asset_name", assetName,
		"content_type", model.AssetContentType,
		"path", assetPath,
	)

	asset, err := uc.releaseClient.UploadReleaseAsset(ctx, repo.Owner, repo.Name, release.ID, assetName, model.AssetContentType, file)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload release asset",
			goerr.V("repository", repo.String()),
			goerr.V("release_id", release.ID),
			goerr.V("asset_name", assetName),
		)
	}

	result := &model.PublishResult{
		Repository: repo,
		Version:    version,
		Release:    release,
		Asset:      asset,
	}

	logger.Info("Uploaded release asset",
		"asset_id", asset.ID,
		"asset_name", asset.Name,
		"size_bytes", asset.Size,
		"download_url", asset.DownloadURL,
	)

	if uc.notifier != nil {
		if err := uc.notifier.NotifyPublished(ctx, result); err != nil {
			logger.Warn("Failed to send publish notification", "error", err)
		}
	}

	return result, nil
}

func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve path",
			goerr.V("path", path),
			goerr.T(types.ErrTagFilesystem),
		)
	}
	return abs, nil
}

// readVersion returns the whole file content. It is not trimmed: the release
// tag has to match it exactly.
func readVersion(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read version file",
			goerr.V("path", path),
			goerr.T(types.ErrTagFilesystem),
		)
	}
	return string(raw), nil
}

// verifyArchive checks that file is a readable zip archive. It reads through
// ReadAt, so the file offset stays at the beginning for the upload.
func verifyArchive(file *os.File, size int64) error {
	zipReader, err := zip.NewReader(file, size)
	if err != nil {
		return goerr.Wrap(err, "build artifact is not a zip archive",
			goerr.V("path", file.Name()),
			goerr.T(types.ErrTagInvalidArtifact),
		)
	}
	if len(zipReader.File) == 0 {
		return goerr.New("build artifact is an empty zip archive",
			goerr.V("path", file.Name()),
			goerr.T(types.ErrTagInvalidArtifact),
		)
	}
	return nil
}
