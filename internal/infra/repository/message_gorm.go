package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointease/internal/domain/message"
	"github.com/BruksfildServices01/appointease/internal/models"
)

type MessageGormRepository struct {
	db *gorm.DB
}

func NewMessageGormRepository(db *gorm.DB) *MessageGormRepository {
	return &MessageGormRepository{db: db}
}

var _ message.Repository = (*MessageGormRepository)(nil)

func (r *MessageGormRepository) Create(ctx context.Context, m *models.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MessageGormRepository) ListWith(ctx context.Context, userID string) ([]models.Message, error) {
	msgs := []models.Message{}
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *MessageGormRepository) ListAll(ctx context.Context) ([]models.Message, error) {
	msgs := []models.Message{}
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *MessageGormRepository) MarkSeen(ctx context.Context, senderID, receiverID string) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND seen = ?", receiverID, false)

	if senderID != "" {
		q = q.Where("sender_id = ?", senderID)
	}

	res := q.Update("seen", true)
	return res.RowsAffected, res.Error
}
