package model

import (
	"strings"

	"github.com/gardener/ghrelease-publisher/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// VersionFileName is the file in the repository directory holding the release tag
	VersionFileName = "VERSION"
	// OutputFileName is the build artifact in the output directory
	OutputFileName = "build-result"
	// AssetContentType is the media type the artifact is uploaded with
	AssetContentType = "application/zip"

	assetNamePrefix = "vscode-gardener-tools-"
	assetNameSuffix = ".vsix"
)

// AssetName returns the uploaded asset name for a version. The version is
// used verbatim, including any surrounding whitespace.
func AssetName(version string) string {
	return assetNamePrefix + version + assetNameSuffix
}

// Repository identifies a GitHub repository
type Repository struct {
	Owner string
	Name  string
}

// String returns the "owner/name" form
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepository parses an "owner/name" string
func ParseRepository(s string) (Repository, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repository{}, goerr.New("repository must be in owner/name form",
			goerr.V("repository", s),
			goerr.T(types.ErrTagConfig),
		)
	}
	return Repository{Owner: parts[0], Name: parts[1]}, nil
}

// PublishInput holds everything a publish run needs from the environment
type PublishInput struct {
	Repository    string // "owner/name" of the target repository
	RepoDir       string // Checkout directory containing VERSION
	OutDir        string // Directory containing the build artifact
	VerifyArchive bool   // Check the artifact is a zip archive before uploading
}

// Validate checks that all required values are set
func (x *PublishInput) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{name: "repository", value: x.Repository},
		{name: "repo-dir", value: x.RepoDir},
		{name: "out-path", value: x.OutDir},
	}
	for _, r := range required {
		if r.value == "" {
			return goerr.New("required configuration is not set",
				goerr.V("name", r.name),
				goerr.T(types.ErrTagConfig),
			)
		}
	}

	if _, err := ParseRepository(x.Repository); err != nil {
		return err
	}
	return nil
}

// PublishResult describes an uploaded asset
type PublishResult struct {
	Repository Repository
	Version    string
	Release    *Release
	Asset      *ReleaseAsset
}
