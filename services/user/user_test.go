package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"patitas/models"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByFirebaseUID(_ context.Context, uid string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.FirebaseUID == uid {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) UpdateAvatarURL(_ context.Context, id, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.AvatarURL = avatarURL
	}
	return nil
}

type memTokenCache struct {
	mu     sync.Mutex
	hashes map[string]string
}

func newMemTokenCache() *memTokenCache {
	return &memTokenCache{hashes: make(map[string]string)}
}

func (c *memTokenCache) StoreTokenHash(_ context.Context, userID, hash string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hashes[userID] = hash
	return nil
}

func (c *memTokenCache) TokenHash(_ context.Context, userID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hashes[userID], nil
}

func (c *memTokenCache) DeleteTokenHash(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.hashes, userID)
	return nil
}

type memPurchaseRepo struct {
	purchases []models.Purchase
}

func (r *memPurchaseRepo) Append(_ context.Context, purchase models.Purchase) (string, error) {
	r.purchases = append(r.purchases, purchase)
	return purchase.ID, nil
}

func (r *memPurchaseRepo) GetByUserID(_ context.Context, userID string) ([]models.Purchase, error) {
	var out []models.Purchase
	for _, p := range r.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memRecordRepo struct {
	records []models.AppointmentRecord
}

func (r *memRecordRepo) Append(_ context.Context, record models.AppointmentRecord) (string, error) {
	r.records = append(r.records, record)
	return record.ID, nil
}

func (r *memRecordRepo) GetByUserID(_ context.Context, userID string) ([]models.AppointmentRecord, error) {
	var out []models.AppointmentRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeVerifier struct {
	identity *VerifiedIdentity
	err      error
}

func (v *fakeVerifier) VerifyIDToken(_ context.Context, _ string) (*VerifiedIdentity, error) {
	return v.identity, v.err
}

type fakeStorage struct {
	uploaded []string
	url      string
}

func (s *fakeStorage) UploadImage(_ context.Context, localFilePath, _ string) (string, error) {
	s.uploaded = append(s.uploaded, localFilePath)
	return s.url, nil
}

func (s *fakeStorage) DeleteImage(_ context.Context, _ string) error {
	return nil
}

func newService(repo *memUserRepo, tokens *memTokenCache) *DefaultUserService {
	return &DefaultUserService{
		Repo:      repo,
		Purchases: &memPurchaseRepo{},
		Records:   &memRecordRepo{},
		Tokens:    tokens,
	}
}

func TestRegister(t *testing.T) {
	t.Run("creates account and issues token", func(t *testing.T) {
		repo := newMemUserRepo()
		tokens := newMemTokenCache()
		svc := newService(repo, tokens)

		resp, err := svc.Register(context.Background(), RegisterInput{
			Email:    "  Maria@Example.COM ",
			Password: "secret123",
			FullName: "María García",
		})
		if err != nil {
			t.Fatalf("Register returned %v", err)
		}
		if resp.Token == "" {
			t.Error("no token issued")
		}
		if resp.User.Email != "maria@example.com" {
			t.Errorf("email = %q, want normalized lowercase", resp.User.Email)
		}

		stored, _ := repo.GetByID(context.Background(), resp.User.ID)
		if stored == nil {
			t.Fatal("account not persisted")
		}
		if stored.PasswordHash == "" || stored.PasswordHash == "secret123" {
			t.Error("password stored without hashing")
		}
		if hash, _ := tokens.TokenHash(context.Background(), resp.User.ID); hash == "" {
			t.Error("token hash not cached")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := newService(repo, newMemTokenCache())

		input := RegisterInput{Email: "maria@example.com", Password: "secret123", FullName: "María"}
		if _, err := svc.Register(context.Background(), input); err != nil {
			t.Fatalf("first Register returned %v", err)
		}
		input.Email = "MARIA@example.com"
		if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrEmailTaken) {
			t.Errorf("got %v, want ErrEmailTaken", err)
		}
	})
}

func TestSignIn(t *testing.T) {
	repo := newMemUserRepo()
	svc := newService(repo, newMemTokenCache())

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email: "maria@example.com", Password: "secret123", FullName: "María",
	}); err != nil {
		t.Fatalf("Register returned %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.SignIn(context.Background(), "maria@example.com", "secret123")
		if err != nil {
			t.Fatalf("SignIn returned %v", err)
		}
		if resp.Token == "" {
			t.Error("no token issued")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.SignIn(context.Background(), "maria@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("got %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		if _, err := svc.SignIn(context.Background(), "ghost@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("got %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestFirebaseSignIn(t *testing.T) {
	t.Run("disabled without verifier", func(t *testing.T) {
		svc := newService(newMemUserRepo(), newMemTokenCache())
		if _, err := svc.FirebaseSignIn(context.Background(), "token"); !errors.Is(err, ErrFirebaseDisabled) {
			t.Errorf("got %v, want ErrFirebaseDisabled", err)
		}
	})

	t.Run("provisions new account", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := newService(repo, newMemTokenCache())
		svc.Verifier = &fakeVerifier{identity: &VerifiedIdentity{
			UID: "fb-1", Email: "nuevo@example.com", Name: "Nuevo Usuario",
		}}

		resp, err := svc.FirebaseSignIn(context.Background(), "valid-token")
		if err != nil {
			t.Fatalf("FirebaseSignIn returned %v", err)
		}
		stored, _ := repo.GetByFirebaseUID(context.Background(), "fb-1")
		if stored == nil {
			t.Fatal("account not provisioned")
		}
		if stored.ID != resp.User.ID {
			t.Errorf("response user %q does not match stored %q", resp.User.ID, stored.ID)
		}
	})

	t.Run("links existing account by email", func(t *testing.T) {
		repo := newMemUserRepo()
		svc := newService(repo, newMemTokenCache())

		reg, err := svc.Register(context.Background(), RegisterInput{
			Email: "maria@example.com", Password: "secret123", FullName: "María",
		})
		if err != nil {
			t.Fatalf("Register returned %v", err)
		}

		svc.Verifier = &fakeVerifier{identity: &VerifiedIdentity{
			UID: "fb-2", Email: "maria@example.com",
		}}
		resp, err := svc.FirebaseSignIn(context.Background(), "valid-token")
		if err != nil {
			t.Fatalf("FirebaseSignIn returned %v", err)
		}
		if resp.User.ID != reg.User.ID {
			t.Errorf("signed into %q, want existing account %q", resp.User.ID, reg.User.ID)
		}
		stored, _ := repo.GetByID(context.Background(), reg.User.ID)
		if stored.FirebaseUID != "fb-2" {
			t.Errorf("firebase uid %q not linked", stored.FirebaseUID)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := newService(newMemUserRepo(), newMemTokenCache())
		svc.Verifier = &fakeVerifier{err: errors.New("expired")}
		if _, err := svc.FirebaseSignIn(context.Background(), "bad"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("got %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestProfile(t *testing.T) {
	repo := newMemUserRepo()
	purchases := &memPurchaseRepo{}
	records := &memRecordRepo{}
	svc := &DefaultUserService{
		Repo: repo, Purchases: purchases, Records: records, Tokens: newMemTokenCache(),
	}

	resp, err := svc.Register(context.Background(), RegisterInput{
		Email: "maria@example.com", Password: "secret123", FullName: "María",
	})
	if err != nil {
		t.Fatalf("Register returned %v", err)
	}
	userID := resp.User.ID

	purchases.purchases = append(purchases.purchases, models.Purchase{ID: "c1", UserID: userID})
	records.records = append(records.records, models.AppointmentRecord{ID: "a1", UserID: userID})

	t.Run("aggregates history", func(t *testing.T) {
		view, err := svc.Profile(context.Background(), userID)
		if err != nil {
			t.Fatalf("Profile returned %v", err)
		}
		if len(view.Purchases) != 1 || len(view.Appointments) != 1 {
			t.Errorf("got %d purchases and %d appointments, want 1 each",
				len(view.Purchases), len(view.Appointments))
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := svc.Profile(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("got %v, want ErrUserNotFound", err)
		}
	})

	t.Run("empty history marshals as lists", func(t *testing.T) {
		other, err := svc.Register(context.Background(), RegisterInput{
			Email: "otro@example.com", Password: "secret123", FullName: "Otro",
		})
		if err != nil {
			t.Fatalf("Register returned %v", err)
		}
		view, err := svc.Profile(context.Background(), other.User.ID)
		if err != nil {
			t.Fatalf("Profile returned %v", err)
		}
		if view.Purchases == nil || view.Appointments == nil {
			t.Error("history slices must be non-nil")
		}
	})
}

func TestUpdateAvatar(t *testing.T) {
	repo := newMemUserRepo()
	store := &fakeStorage{url: "https://cdn.example.com/avatar.png"}
	svc := newService(repo, newMemTokenCache())
	svc.Storage = store

	resp, err := svc.Register(context.Background(), RegisterInput{
		Email: "maria@example.com", Password: "secret123", FullName: "María",
	})
	if err != nil {
		t.Fatalf("Register returned %v", err)
	}

	url, err := svc.UpdateAvatar(context.Background(), resp.User.ID, "/tmp/avatar.png")
	if err != nil {
		t.Fatalf("UpdateAvatar returned %v", err)
	}
	if url != store.url {
		t.Errorf("url = %q, want %q", url, store.url)
	}
	stored, _ := repo.GetByID(context.Background(), resp.User.ID)
	if stored.AvatarURL != store.url {
		t.Errorf("avatar url %q not persisted", stored.AvatarURL)
	}

	if _, err := svc.UpdateAvatar(context.Background(), "ghost", "/tmp/avatar.png"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestRevokeToken(t *testing.T) {
	tokens := newMemTokenCache()
	svc := newService(newMemUserRepo(), tokens)

	resp, err := svc.Register(context.Background(), RegisterInput{
		Email: "maria@example.com", Password: "secret123", FullName: "María",
	})
	if err != nil {
		t.Fatalf("Register returned %v", err)
	}
	if err := svc.RevokeToken(context.Background(), resp.User.ID); err != nil {
		t.Fatalf("RevokeToken returned %v", err)
	}
	if hash, _ := tokens.TokenHash(context.Background(), resp.User.ID); hash != "" {
		t.Error("token hash still cached after revocation")
	}
}
