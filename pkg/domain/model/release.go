package model

// Release represents a GitHub release looked up by its tag
type Release struct {
	ID        int64  // Release ID used for asset upload
	TagName   string // Tag the release is attached to
	Name      string // Release title
	HTMLURL   string // Release page URL
	UploadURL string // Upload endpoint template returned by the API
}

// ReleaseAsset represents a file attached to a release
type ReleaseAsset struct {
	ID          int64
	Name        string
	ContentType string
	Size        int64
	DownloadURL string
}
