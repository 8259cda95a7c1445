package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/appointease/internal/domain/meeting"
	"github.com/BruksfildServices01/appointease/internal/models"
)

type MeetingGormRepository struct {
	db *gorm.DB
}

func NewMeetingGormRepository(db *gorm.DB) *MeetingGormRepository {
	return &MeetingGormRepository{db: db}
}

var _ meeting.Repository = (*MeetingGormRepository)(nil)

const participantsTable = "meeting_participants"

// replaceParticipants rewrites the join rows directly so gorm never upserts
// the referenced users.
func replaceParticipants(tx *gorm.DB, meetingID string, userIDs []string) error {
	if err := tx.Exec(
		"DELETE FROM "+participantsTable+" WHERE meeting_id = ?",
		meetingID,
	).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, map[string]any{"meeting_id": meetingID, "user_id": id})
	}
	return tx.Table(participantsTable).Create(rows).Error
}

func (r *MeetingGormRepository) Create(
	ctx context.Context,
	m *models.Meeting,
	participantIDs []string,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return err
		}
		return replaceParticipants(tx, m.ID, participantIDs)
	})
}

func (r *MeetingGormRepository) Update(
	ctx context.Context,
	m *models.Meeting,
	participantIDs []string,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return err
		}
		return replaceParticipants(tx, m.ID, participantIDs)
	})
}

func (r *MeetingGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := replaceParticipants(tx, id, nil); err != nil {
			return err
		}
		res := tx.Delete(&models.Meeting{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *MeetingGormRepository) Get(ctx context.Context, id string) (*models.Meeting, error) {
	var m models.Meeting
	if err := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("CreatedBy").
		Where("id = ?", id).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MeetingGormRepository) List(ctx context.Context, participantID string) ([]models.Meeting, error) {
	q := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("CreatedBy")

	if participantID != "" {
		q = q.Where(
			"id IN (?)",
			r.db.Table("meeting_participants").
				Select("meeting_id").
				Where("user_id = ?", participantID),
		)
	}

	ms := []models.Meeting{}
	if err := q.
		Order("date ASC").
		Order("start_time ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

func (r *MeetingGormRepository) CountUsers(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id IN ?", ids).
		Count(&n).Error
	return n, err
}
