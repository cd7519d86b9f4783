package auth

import (
	"context"
	"testing"
	"time"

	"negocio/internal/core/apperror"
	"negocio/internal/docstore/memory"
)

func newService(t *testing.T) *Service {
	t.Helper()
	jwt := NewJWTService(JWTConfig{
		Secret:         "test-secret",
		Issuer:         "negocio",
		AccessTokenTTL: time.Hour,
	})
	return NewService(memory.New(), jwt)
}

func TestLoginRoundTrip(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "Admin", "Administrador", "secreto123")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Username != "admin" {
		t.Errorf("username not normalized: %q", user.Username)
	}
	if user.PasswordHash == "secreto123" || user.PasswordHash == "" {
		t.Error("password stored without hashing")
	}

	result, err := svc.Login(ctx, "admin", "secreto123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("empty token")
	}
	if result.UserID != user.ID {
		t.Errorf("UserID = %s, want %s", result.UserID, user.ID)
	}

	claims, err := svc.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "admin", "", "secreto123"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, wrongPassword := svc.Login(ctx, "admin", "incorrecta")
	_, unknownUser := svc.Login(ctx, "nadie", "incorrecta")

	// Both failure modes must look the same to a caller.
	if !apperror.IsCode(wrongPassword, apperror.CodeUnauthorized) {
		t.Errorf("wrong password: %v", wrongPassword)
	}
	if !apperror.IsCode(unknownUser, apperror.CodeUnauthorized) {
		t.Errorf("unknown user: %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Errorf("error messages differ: %q vs %q", wrongPassword, unknownUser)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, "", "", "secreto123"); !apperror.IsCode(err, apperror.CodeValidation) {
		t.Errorf("empty username: %v", err)
	}
	if _, err := svc.CreateUser(ctx, "admin", "", "corta"); !apperror.IsCode(err, apperror.CodeValidation) {
		t.Errorf("short password: %v", err)
	}

	if _, err := svc.CreateUser(ctx, "admin", "", "secreto123"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := svc.CreateUser(ctx, "ADMIN ", "", "secreto123"); !apperror.IsCode(err, apperror.CodeDuplicate) {
		t.Errorf("duplicate username: %v", err)
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	svc := newService(t)
	other := NewJWTService(JWTConfig{Secret: "other-secret", AccessTokenTTL: time.Hour})

	token, _, err := other.GenerateAccessToken("u1", "admin", "")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret accepted")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	jwtSvc := NewJWTService(JWTConfig{Secret: "test-secret", AccessTokenTTL: -time.Minute})

	token, _, err := jwtSvc.GenerateAccessToken("u1", "admin", "")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := jwtSvc.ValidateToken(token); err == nil {
		t.Fatal("expired token accepted")
	}
}
