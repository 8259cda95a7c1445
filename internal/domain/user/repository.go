package user

import (
	"context"

	"github.com/BruksfildServices01/appointease/internal/models"
)

type Repository interface {
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, role string) ([]models.User, error)
	Count(ctx context.Context, role string) (int64, error)
}
