package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/usecase"
	"clinic-appointment-api/pkg/response"
)

type contextKey string

const identityKey contextKey = "identity"

type AuthMiddleware struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthMiddleware(authUsecase usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUsecase: authUsecase}
}

// RequireRole authenticates the request for any of the allowed roles. The
// token carries only a subject identifier, so the account is re-resolved
// against its role table on every request; a token whose account has been
// deleted stops working immediately.
func (m *AuthMiddleware) RequireRole(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Authorization header is required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}
			tokenString := parts[1]

			for _, role := range allowedRoles {
				identity, err := m.authUsecase.ResolveIdentity(r.Context(), tokenString, role)
				if err != nil {
					continue
				}
				ctx := context.WithValue(r.Context(), identityKey, identity)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			response.Unauthorized(w, "Invalid or expired token")
		})
	}
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole(entity.RoleAdmin)(next)
}

func (m *AuthMiddleware) RequireDoctor(next http.Handler) http.Handler {
	return m.RequireRole(entity.RoleDoctor)(next)
}

func (m *AuthMiddleware) RequirePatient(next http.Handler) http.Handler {
	return m.RequireRole(entity.RolePatient)(next)
}

// GetIdentityFromContext extracts the resolved identity set by RequireRole.
func GetIdentityFromContext(ctx context.Context) (*entity.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*entity.Identity)
	return identity, ok
}

// GetPatientFromContext extracts the patient account behind the request, if
// the request was authenticated as a patient.
func GetPatientFromContext(ctx context.Context) (*entity.Patient, bool) {
	identity, ok := GetIdentityFromContext(ctx)
	if !ok || identity.Patient == nil {
		return nil, false
	}
	return identity.Patient, true
}

// GetDoctorFromContext extracts the doctor account behind the request, if
// the request was authenticated as a doctor.
func GetDoctorFromContext(ctx context.Context) (*entity.Doctor, bool) {
	identity, ok := GetIdentityFromContext(ctx)
	if !ok || identity.Doctor == nil {
		return nil, false
	}
	return identity.Doctor, true
}
