package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-appointment-api/config"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (AuthUsecase, *stubAdminRepo, *stubDoctorRepo, *stubPatientRepo) {
	admins := newStubAdminRepo()
	doctors := newStubDoctorRepo()
	patients := newStubPatientRepo()

	tokenService := token.NewService(config.TokenConfig{Secret: "test-secret", Expiry: time.Hour})
	uc := NewAuthUsecase(testLogger(), admins, doctors, patients, tokenService)
	return uc, admins, doctors, patients
}

func hashFor(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hashed)
}

func TestLoginPatientAndResolveIdentity(t *testing.T) {
	uc, _, _, patients := newAuthFixture()

	patient := &entity.Patient{
		Name:     "Alice",
		Email:    "alice@mail.test",
		Password: hashFor(t, "secret123"),
		Phone:    "0811111111",
	}
	patients.Create(context.Background(), patient)

	resp, err := uc.LoginPatient(context.Background(), &dto.LoginRequest{Identifier: "alice@mail.test", Password: "secret123"})
	if err != nil {
		t.Fatalf("LoginPatient failed: %v", err)
	}
	if resp.Role != string(entity.RolePatient) || resp.Name != "Alice" {
		t.Errorf("unexpected token response: %+v", resp)
	}

	identity, err := uc.ResolveIdentity(context.Background(), resp.Token, entity.RolePatient)
	if err != nil {
		t.Fatalf("ResolveIdentity failed: %v", err)
	}
	if identity.Patient == nil || identity.Patient.Email != "alice@mail.test" {
		t.Errorf("expected resolved patient, got %+v", identity)
	}
}

func TestLoginAdmin(t *testing.T) {
	uc, admins, _, _ := newAuthFixture()
	admins.admins["root"] = &entity.Admin{Username: "root", Password: hashFor(t, "admin-pass")}

	resp, err := uc.LoginAdmin(context.Background(), &dto.LoginRequest{Identifier: "root", Password: "admin-pass"})
	if err != nil {
		t.Fatalf("LoginAdmin failed: %v", err)
	}
	if resp.Role != string(entity.RoleAdmin) {
		t.Errorf("expected admin role, got %s", resp.Role)
	}

	if !uc.VerifyToken(context.Background(), resp.Token, entity.RoleAdmin) {
		t.Errorf("expected admin token to verify")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	uc, _, _, patients := newAuthFixture()
	patients.Create(context.Background(), &entity.Patient{
		Email:    "alice@mail.test",
		Password: hashFor(t, "secret123"),
	})

	_, err := uc.LoginPatient(context.Background(), &dto.LoginRequest{Identifier: "alice@mail.test", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = uc.LoginPatient(context.Background(), &dto.LoginRequest{Identifier: "nobody@mail.test", Password: "secret123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown account, got %v", err)
	}
}

func TestResolveIdentityRejectsWrongRole(t *testing.T) {
	uc, _, _, patients := newAuthFixture()
	patients.Create(context.Background(), &entity.Patient{
		Email:    "alice@mail.test",
		Password: hashFor(t, "secret123"),
	})

	resp, err := uc.LoginPatient(context.Background(), &dto.LoginRequest{Identifier: "alice@mail.test", Password: "secret123"})
	if err != nil {
		t.Fatalf("LoginPatient failed: %v", err)
	}

	// The same subject does not exist in the doctor table, so the token
	// must not grant doctor access.
	if _, err := uc.ResolveIdentity(context.Background(), resp.Token, entity.RoleDoctor); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong role, got %v", err)
	}
	if uc.VerifyToken(context.Background(), resp.Token, entity.RoleAdmin) {
		t.Errorf("expected admin verification to fail")
	}
}

func TestDeletedAccountInvalidatesToken(t *testing.T) {
	uc, _, _, patients := newAuthFixture()

	patient := &entity.Patient{
		Email:    "alice@mail.test",
		Password: hashFor(t, "secret123"),
	}
	patients.Create(context.Background(), patient)

	resp, err := uc.LoginPatient(context.Background(), &dto.LoginRequest{Identifier: "alice@mail.test", Password: "secret123"})
	if err != nil {
		t.Fatalf("LoginPatient failed: %v", err)
	}
	if !uc.VerifyToken(context.Background(), resp.Token, entity.RolePatient) {
		t.Fatalf("expected token to verify before deletion")
	}

	patients.remove(patient.ID)

	if uc.VerifyToken(context.Background(), resp.Token, entity.RolePatient) {
		t.Errorf("expected token to stop verifying after account deletion")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if uc.VerifyToken(context.Background(), tok, entity.RolePatient) {
			t.Errorf("expected %q to fail verification", tok)
		}
	}
}

func TestRegisterPatient(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	req := &dto.RegisterPatientRequest{
		Name:     "Alice",
		Email:    "alice@mail.test",
		Password: "secret123",
		Phone:    "0811111111",
		Address:  "1 Main St",
	}
	resp, err := uc.RegisterPatient(context.Background(), req)
	if err != nil {
		t.Fatalf("RegisterPatient failed: %v", err)
	}
	if resp.Email != "alice@mail.test" {
		t.Errorf("unexpected response: %+v", resp)
	}

	if _, err := uc.RegisterPatient(context.Background(), req); !errors.Is(err, ErrPatientExists) {
		t.Fatalf("expected ErrPatientExists for duplicate email, got %v", err)
	}

	phoneDup := &dto.RegisterPatientRequest{
		Name:     "Bob",
		Email:    "bob@mail.test",
		Password: "secret123",
		Phone:    "0811111111",
	}
	if _, err := uc.RegisterPatient(context.Background(), phoneDup); !errors.Is(err, ErrPatientExists) {
		t.Fatalf("expected ErrPatientExists for duplicate phone, got %v", err)
	}

	// The stored password must never be the plaintext.
	login, err := uc.LoginPatient(context.Background(), &dto.LoginRequest{Identifier: "alice@mail.test", Password: "secret123"})
	if err != nil {
		t.Fatalf("login after registration failed: %v", err)
	}
	if login.Token == "" {
		t.Errorf("expected a signed token")
	}
}
