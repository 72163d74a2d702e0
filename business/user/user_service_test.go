package user

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"

	"smartshop/domain"
)

type stubUserRepo struct {
	users map[string]domain.User
}

func newStubRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]domain.User)}
}

func (r *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = "u1"
	}
	r.users[user.Email] = *user
	return nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, id string) (domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, errors.New("user not found")
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return u, nil
}

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := newStubRepo()
	svc := NewUserService(repo, validator.New())

	u, err := svc.Register(context.Background(), &domain.User{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Role != RoleCustomer {
		t.Errorf("expected customer role, got %q", u.Role)
	}
	if u.Password != "" {
		t.Error("password should be blanked in the response")
	}

	stored := repo.users["ada@example.com"]
	if stored.Password == "secret123" || stored.Password == "" {
		t.Error("stored password should be a hash")
	}
}

func TestRegister_RejectsBadInput(t *testing.T) {
	svc := NewUserService(newStubRepo(), validator.New())

	_, err := svc.Register(context.Background(), &domain.User{Email: "not-an-email", Password: "secret123"})
	if err == nil || err.Error() != "invalid email format" {
		t.Errorf("expected invalid email error, got %v", err)
	}

	_, err = svc.Register(context.Background(), &domain.User{Email: "ada@example.com", Password: "abc"})
	if err == nil || err.Error() != "password must be at least 6 characters" {
		t.Errorf("expected short password error, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newStubRepo()
	svc := NewUserService(repo, validator.New())

	if _, err := svc.Register(context.Background(), &domain.User{Email: "ada@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), &domain.User{Email: "ada@example.com", Password: "secret123"}); err == nil || err.Error() != "email already exists" {
		t.Errorf("expected duplicate email error, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newStubRepo()
	svc := NewUserService(repo, validator.New())

	if _, err := svc.Register(context.Background(), &domain.User{Email: "ada@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, u, err := svc.Login(context.Background(), "ada@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if u.Password != "" {
		t.Error("password should be blanked in the response")
	}

	if _, _, err := svc.Login(context.Background(), "ada@example.com", "wrong"); err == nil || err.Error() != "invalid credentials" {
		t.Errorf("expected invalid credentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "secret123"); err == nil || err.Error() != "invalid credentials" {
		t.Errorf("expected invalid credentials for unknown user, got %v", err)
	}
}
