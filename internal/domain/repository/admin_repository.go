package repository

import (
	"context"

	"clinic-appointment-api/internal/domain/entity"
)

// AdminRepository reads back-office accounts. Admin records are provisioned
// out of band; the API only authenticates against them.
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*entity.Admin, error)
}
