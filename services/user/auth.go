package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	purchaseRepo "patitas/database/repository/purchase"
	recordsRepo "patitas/database/repository/records"
	userRepo "patitas/database/repository/user"
	"patitas/models"
	"patitas/services/storage"
	"patitas/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL bounds how long an issued token stays valid; the cached hash
// expires together with it.
const tokenTTL = 72 * time.Hour

// IdentityVerifier checks a Firebase ID token and reports the account it
// belongs to.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*VerifiedIdentity, error)
}

// VerifiedIdentity is what a valid Firebase ID token proves about a user.
type VerifiedIdentity struct {
	UID   string
	Email string
	Name  string
}

// DefaultUserService is the production UserService.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	Purchases purchaseRepo.PurchaseRepository
	Records   recordsRepo.RecordRepository
	Tokens    TokenCache
	Storage   storage.StorageService
	// Verifier is nil when Firebase credentials are not configured.
	Verifier IdentityVerifier
}

// Register creates an account with a bcrypt-hashed password and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.GetLogger().Info("user registered", zap.String("userID", account.ID))
	return s.issueToken(ctx, account)
}

// SignIn authenticates an email/password pair and issues a fresh token.
func (s *DefaultUserService) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	account, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if account == nil || account.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(ctx, account)
}

// FirebaseSignIn exchanges a Firebase ID token for an app token. Accounts
// are matched by Firebase UID first, then by email, and provisioned when
// neither exists.
func (s *DefaultUserService) FirebaseSignIn(ctx context.Context, idToken string) (*AuthResponse, error) {
	if s.Verifier == nil {
		return nil, ErrFirebaseDisabled
	}

	identity, err := s.Verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	account, err := s.Repo.GetByFirebaseUID(ctx, identity.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up firebase uid: %w", err)
	}
	if account == nil && identity.Email != "" {
		account, err = s.Repo.GetByEmail(ctx, normalizeEmail(identity.Email))
		if err != nil {
			return nil, fmt.Errorf("failed to look up email: %w", err)
		}
		if account != nil {
			// Link the existing account to this Firebase identity.
			account.FirebaseUID = identity.UID
			account.UpdatedAt = time.Now()
			if err := s.Repo.Update(ctx, account); err != nil {
				return nil, fmt.Errorf("failed to link firebase uid: %w", err)
			}
		}
	}

	if account == nil {
		now := time.Now()
		account = &models.User{
			ID:          uuid.NewString(),
			Email:       normalizeEmail(identity.Email),
			FullName:    identity.Name,
			FirebaseUID: identity.UID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.Repo.Create(ctx, account); err != nil {
			return nil, fmt.Errorf("failed to provision user: %w", err)
		}
		utils.GetLogger().Info("user provisioned from firebase",
			zap.String("userID", account.ID))
	}

	return s.issueToken(ctx, account)
}

// RevokeToken drops the cached token hash so the current token stops
// validating immediately.
func (s *DefaultUserService) RevokeToken(ctx context.Context, userID string) error {
	if err := s.Tokens.DeleteTokenHash(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *DefaultUserService) issueToken(ctx context.Context, account *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(account.ID, account.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.Tokens.StoreTokenHash(ctx, account.ID, utils.HashToken(token), tokenTTL); err != nil {
		return nil, fmt.Errorf("failed to cache token: %w", err)
	}
	return &AuthResponse{User: models.ToPublicUser(*account), Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
