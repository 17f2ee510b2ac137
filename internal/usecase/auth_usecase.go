package usecase

import (
	"context"
	"errors"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/pkg/token"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid identifier or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrPatientExists      = errors.New("a patient with this email or phone already exists")
)

type AuthUsecase interface {
	LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	LoginDoctor(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	LoginPatient(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)

	// ResolveIdentity verifies the token and re-resolves its subject against
	// the account table for the expected role. It fails closed with
	// ErrInvalidToken on a malformed/expired token or a subject that no
	// longer has an account of that role, so deleting an account immediately
	// invalidates every token issued to it.
	ResolveIdentity(ctx context.Context, tokenString string, role entity.Role) (*entity.Identity, error)

	// VerifyToken reports whether the token resolves to an existing account
	// of the expected role.
	VerifyToken(ctx context.Context, tokenString string, role entity.Role) bool
}

type authUsecase struct {
	log          *logrus.Logger
	adminRepo    repository.AdminRepository
	doctorRepo   repository.DoctorRepository
	patientRepo  repository.PatientRepository
	tokenService *token.Service
}

func NewAuthUsecase(
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	tokenService *token.Service,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		adminRepo:    adminRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		tokenService: tokenService,
	}
}

func (u *authUsecase) LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	admin, err := u.adminRepo.FindByUsername(ctx, req.Identifier)
	if err != nil {
		u.log.Warnf("Failed to look up admin %s: %+v", req.Identifier, err)
		return nil, err
	}
	if admin == nil || !passwordMatches(admin.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	signed, err := u.tokenService.Generate(admin.Username)
	if err != nil {
		u.log.Warnf("Failed to sign token for admin %s: %+v", admin.Username, err)
		return nil, err
	}

	return &dto.TokenResponse{Token: signed, Role: string(entity.RoleAdmin), Name: admin.Username}, nil
}

func (u *authUsecase) LoginDoctor(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	doctor, err := u.doctorRepo.FindByEmail(ctx, req.Identifier)
	if err != nil {
		u.log.Warnf("Failed to look up doctor %s: %+v", req.Identifier, err)
		return nil, err
	}
	if doctor == nil || !passwordMatches(doctor.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	signed, err := u.tokenService.Generate(doctor.Email)
	if err != nil {
		u.log.Warnf("Failed to sign token for doctor %s: %+v", doctor.Email, err)
		return nil, err
	}

	return &dto.TokenResponse{Token: signed, Role: string(entity.RoleDoctor), Name: doctor.Name}, nil
}

func (u *authUsecase) LoginPatient(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	patient, err := u.patientRepo.FindByEmail(ctx, req.Identifier)
	if err != nil {
		u.log.Warnf("Failed to look up patient %s: %+v", req.Identifier, err)
		return nil, err
	}
	if patient == nil || !passwordMatches(patient.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	signed, err := u.tokenService.Generate(patient.Email)
	if err != nil {
		u.log.Warnf("Failed to sign token for patient %s: %+v", patient.Email, err)
		return nil, err
	}

	return &dto.TokenResponse{Token: signed, Role: string(entity.RolePatient), Name: patient.Name}, nil
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	existing, err := u.patientRepo.FindByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil {
		u.log.Warnf("Failed patient uniqueness check for %s: %+v", req.Email, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPatientExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrPatientExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *authUsecase) ResolveIdentity(ctx context.Context, tokenString string, role entity.Role) (*entity.Identity, error) {
	identifier, err := u.tokenService.ExtractIdentifier(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	switch role {
	case entity.RoleAdmin:
		admin, err := u.adminRepo.FindByUsername(ctx, identifier)
		if err != nil {
			u.log.Warnf("Failed to resolve admin %s: %+v", identifier, err)
			return nil, err
		}
		if admin == nil {
			return nil, ErrInvalidToken
		}
		return &entity.Identity{Role: entity.RoleAdmin, Admin: admin}, nil

	case entity.RoleDoctor:
		doctor, err := u.doctorRepo.FindByEmail(ctx, identifier)
		if err != nil {
			u.log.Warnf("Failed to resolve doctor %s: %+v", identifier, err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrInvalidToken
		}
		return &entity.Identity{Role: entity.RoleDoctor, Doctor: doctor}, nil

	case entity.RolePatient:
		patient, err := u.patientRepo.FindByEmail(ctx, identifier)
		if err != nil {
			u.log.Warnf("Failed to resolve patient %s: %+v", identifier, err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrInvalidToken
		}
		return &entity.Identity{Role: entity.RolePatient, Patient: patient}, nil
	}

	return nil, ErrInvalidToken
}

func (u *authUsecase) VerifyToken(ctx context.Context, tokenString string, role entity.Role) bool {
	_, err := u.ResolveIdentity(ctx, tokenString, role)
	return err == nil
}

func passwordMatches(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// isDuplicateKeyError recognizes a Postgres unique violation, the backstop
// behind the application-level uniqueness pre-checks.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
