package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/fixmycity/fixmycity-backend/internal/config"
)

var ErrNotDataURL = errors.New("image must be a base64 data URL")

// Uploader forwards report images to a hosting provider and returns a durable
// URL. Destroy is best-effort: callers log failures and continue.
type Uploader interface {
	Upload(ctx context.Context, imageData string) (string, error)
	Destroy(ctx context.Context, imageURL string) error
}

// CloudinaryUploader uploads under a fixed unsigned preset and folder.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	preset string
	folder string
}

func NewCloudinaryUploader(cfg *config.Config) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{
		cld:    cld,
		preset: cfg.UploadPreset,
		folder: cfg.UploadFolder,
	}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, imageData string) (string, error) {
	if !strings.HasPrefix(imageData, "data:image/") {
		return "", ErrNotDataURL
	}

	res, err := u.cld.Upload.Upload(ctx, imageData, uploader.UploadParams{
		UploadPreset: u.preset,
		Folder:       u.folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

func (u *CloudinaryUploader) Destroy(ctx context.Context, imageURL string) error {
	publicID := PublicIDFromURL(imageURL)
	if publicID == "" {
		return fmt.Errorf("no public id derivable from %q", imageURL)
	}

	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		slog.Error("cloudinary destroy failed", "public_id", publicID, "error", err)
	}
	return err
}

// PublicIDFromURL derives the provider object identifier from a hosted URL:
// the last path segment stripped of its file extension.
func PublicIDFromURL(imageURL string) string {
	seg := imageURL
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	if i := strings.LastIndex(seg, "."); i > 0 {
		seg = seg[:i]
	}
	return seg
}
