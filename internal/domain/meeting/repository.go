package meeting

import (
	"context"

	"github.com/BruksfildServices01/appointease/internal/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Meeting, participantIDs []string) error
	Update(ctx context.Context, m *models.Meeting, participantIDs []string) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Meeting, error)

	// List returns every meeting, or only those participantID attends when
	// it is non-empty.
	List(ctx context.Context, participantID string) ([]models.Meeting, error)

	// CountUsers reports how many of ids exist, to reject unknown participants.
	CountUsers(ctx context.Context, ids []string) (int64, error)
}
