package service

import (
	"testing"

	"github.com/mealweek/mealweek-api/internal/config"
	"github.com/mealweek/mealweek-api/internal/testutil"
)

func newUserService() *UserService {
	cfg := &config.Config{}
	cfg.EnvVars.JwtSecretKey = "test-secret"
	return NewUserService(cfg, testutil.NewMockUserRepo())
}

func TestCreateUser_Validation(t *testing.T) {
	svc := newUserService()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "ab", "", "password123"},
		{"long username", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "", "password123"},
		{"bad email", "alice", "not-an-email", "password123"},
		{"short password", "alice", "", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(tc.username, tc.email, tc.password)
			if _, ok := err.(ValidationError); !ok {
				t.Errorf("error type = %T, want ValidationError", err)
			}
		})
	}
}

func TestCreateUser_DuplicateUsernameRejected(t *testing.T) {
	svc := newUserService()

	if _, err := svc.CreateUser("alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	_, err := svc.CreateUser("alice", "other@example.com", "password123")
	if _, ok := err.(ValidationError); !ok {
		t.Errorf("error type = %T, want ValidationError for taken username", err)
	}
}

func TestLoginUser_RoundTrip(t *testing.T) {
	svc := newUserService()

	created, err := svc.CreateUser("alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	user, tokens, err := svc.LoginUser("alice", "password123")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if user.ID != created.ID {
		t.Errorf("user ID = %d, want %d", user.ID, created.ID)
	}
	if user.Auth != nil {
		t.Error("login response must not carry credentials")
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("login should issue both tokens")
	}

	// the refresh token exchanges for a fresh pair
	fresh, err := svc.RefreshToken(tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if fresh.AccessToken == "" {
		t.Error("refresh should issue a new access token")
	}
}

func TestLoginUser_WrongPassword(t *testing.T) {
	svc := newUserService()

	if _, err := svc.CreateUser("alice", "", "password123"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	_, _, err := svc.LoginUser("alice", "wrong-password")
	if _, ok := err.(ValidationError); !ok {
		t.Errorf("error type = %T, want ValidationError", err)
	}

	_, _, err = svc.LoginUser("nobody", "password123")
	if _, ok := err.(ValidationError); !ok {
		t.Errorf("unknown user error type = %T, want ValidationError", err)
	}
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newUserService()

	if _, err := svc.CreateUser("alice", "", "password123"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	_, tokens, err := svc.LoginUser("alice", "password123")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	// an access token must not be usable as a refresh token
	_, err = svc.RefreshToken(tokens.AccessToken)
	if _, ok := err.(ValidationError); !ok {
		t.Errorf("error type = %T, want ValidationError", err)
	}

	_, err = svc.RefreshToken("garbage")
	if _, ok := err.(ValidationError); !ok {
		t.Errorf("garbage token error type = %T, want ValidationError", err)
	}
}
