package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"codeforge/internal/common"
	"codeforge/internal/common/security"
	"codeforge/internal/domain/model"
	"codeforge/internal/platform/config"
)

func initTestJWT(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()
}

type fakeUserRepo struct {
	users map[string]*model.User // by ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return common.ErrConflict
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func TestSignupAndLogin(t *testing.T) {
	initTestJWT(t)
	svc := NewAuthService(newFakeUserRepo())

	signup, err := svc.Signup(context.Background(), SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if signup.Token == "" {
		t.Fatal("signup should issue a token")
	}
	if signup.User.HashedPassword != "" {
		t.Fatal("password hash must not leave the service")
	}
	if signup.User.Role != model.RoleUser {
		t.Fatalf("new user role = %q, want %q", signup.User.Role, model.RoleUser)
	}

	for _, field := range []string{"alice@example.com", "alice"} {
		login, err := svc.Login(context.Background(), LoginRequest{LoginField: field, Password: "s3cret"})
		if err != nil {
			t.Fatalf("Login with %q: %v", field, err)
		}
		if login.User.ID != signup.User.ID {
			t.Fatalf("login returned user %s, want %s", login.User.ID, signup.User.ID)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	initTestJWT(t)
	svc := NewAuthService(newFakeUserRepo())

	if _, err := svc.Signup(context.Background(), SignupRequest{
		Username: "bob", Email: "bob@example.com", Password: "hunter2",
	}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{LoginField: "bob", Password: "wrong"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("wrong password err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{LoginField: "nobody", Password: "hunter2"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("unknown user err = %v, want ErrUnauthorized", err)
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	initTestJWT(t)
	svc := NewAuthService(newFakeUserRepo())

	req := SignupRequest{Username: "carol", Email: "carol@example.com", Password: "pw"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, err := svc.Signup(context.Background(), req); !errors.Is(err, common.ErrConflict) {
		t.Fatalf("duplicate signup err = %v, want ErrConflict", err)
	}
}
