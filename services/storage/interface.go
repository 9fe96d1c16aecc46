package storage

import (
	"context"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService abstracts the external image hosting API. The contract is
// intentionally thin: an upload returns a publicly resolvable URL or fails.
type StorageService interface {
	// UploadImage uploads a local file into the destination folder and
	// returns the hosted image's public URL.
	UploadImage(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile deletes a hosted file by its public ID.
	DeleteFile(ctx context.Context, publicID string) error
	// GetSecureDownloadURL generates a signed, short-lived URL for an
	// authenticated resource.
	GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error)
}

// StorageServiceImpl is the Cloudinary-backed implementation.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiSecret string
}
