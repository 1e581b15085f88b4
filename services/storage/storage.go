package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService defines the interface for media storage operations.
type StorageService interface {
	// UploadImage uploads a local image into the given folder and returns
	// its delivery URL.
	UploadImage(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteImage removes an uploaded image by its public ID.
	DeleteImage(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements StorageService on top of Cloudinary.
type CloudinaryStorage struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewCloudinaryStorage creates a new CloudinaryStorage instance.
func NewCloudinaryStorage(cld *cloudinary.Cloudinary, cloudName string) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld, cloudName: cloudName}
}

// UploadImage uploads a file to Cloudinary and returns the secure URL.
func (s *CloudinaryStorage) UploadImage(ctx context.Context, localFilePath, destFolder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{Folder: destFolder})
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorage: failed to upload file: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryStorage: no URL returned for upload")
	}
	return result.SecureURL, nil
}

// DeleteImage deletes a file from Cloudinary given its public ID.
func (s *CloudinaryStorage) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("CloudinaryStorage: failed to delete file: %w", err)
	}
	return nil
}
