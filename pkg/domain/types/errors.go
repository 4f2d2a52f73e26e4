package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures of a publish run. Every error returned from
// the use case carries exactly one of them.
var (
	// ErrTagConfig marks missing or malformed configuration. Raised before any network call.
	ErrTagConfig = goerr.NewTag("config")
	// ErrTagFilesystem marks a missing or unreadable local file.
	ErrTagFilesystem = goerr.NewTag("filesystem")
	// ErrTagNotFound marks a release that does not exist for the requested tag.
	ErrTagNotFound = goerr.NewTag("not_found")
	// ErrTagTransport marks a failed GitHub API call, including authentication failures.
	ErrTagTransport = goerr.NewTag("transport")
	// ErrTagInvalidArtifact marks a build artifact that is not a zip archive.
	ErrTagInvalidArtifact = goerr.NewTag("invalid_artifact")
)
