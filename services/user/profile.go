package user

import (
	"context"
	"fmt"

	"patitas/models"
)

const avatarFolder = "patitas/avatars"

// Profile returns the account together with its purchase and appointment
// history, newest first.
func (s *DefaultUserService) Profile(ctx context.Context, userID string) (*ProfileView, error) {
	account, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if account == nil {
		return nil, ErrUserNotFound
	}

	purchases, err := s.Purchases.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch purchases: %w", err)
	}
	appointments, err := s.Records.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}

	if purchases == nil {
		purchases = []models.Purchase{}
	}
	if appointments == nil {
		appointments = []models.AppointmentRecord{}
	}

	return &ProfileView{
		User:         models.ToPublicUser(*account),
		Purchases:    purchases,
		Appointments: appointments,
	}, nil
}

// UpdateAvatar uploads a new profile image and stores its delivery URL on
// the account.
func (s *DefaultUserService) UpdateAvatar(ctx context.Context, userID, localFilePath string) (string, error) {
	if s.Storage == nil {
		return "", ErrStorageDisabled
	}

	account, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch user: %w", err)
	}
	if account == nil {
		return "", ErrUserNotFound
	}

	url, err := s.Storage.UploadImage(ctx, localFilePath, avatarFolder)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.Repo.UpdateAvatarURL(ctx, userID, url); err != nil {
		return "", fmt.Errorf("failed to store avatar url: %w", err)
	}
	return url, nil
}
