package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService stores rendered contract documents and returns durable URLs.
type StorageService interface {
	UploadDocument(ctx context.Context, name string, content []byte) (string, error)
}

// CloudinaryStorage implements StorageService on Cloudinary raw uploads.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage initializes the Cloudinary client from a
// CLOUDINARY_URL-style connection string.
func NewCloudinaryStorage(cloudinaryURL string) (*CloudinaryStorage, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL not configured")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

func (s *CloudinaryStorage) UploadDocument(ctx context.Context, name string, content []byte) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(content), uploader.UploadParams{
		PublicID:     name,
		Folder:       "contracts",
		ResourceType: "raw",
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload failed: %w", err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("storage: upload returned no URL")
	}
	return resp.SecureURL, nil
}
