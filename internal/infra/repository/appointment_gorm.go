package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/models"
)

// workingHoursID is the primary key of the singleton settings row.
const workingHoursID = 1

type AppointmentGormRepository struct {
	db *gorm.DB

	// set inside Transaction: reads of the schedule take row locks
	locking bool
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

func (r *AppointmentGormRepository) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	if r.locking {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

// GetWorkingHours creates the row with defaults on first use. Inside a
// transaction the row lock serializes every writer of the schedule.
func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.query(ctx).First(&wh, workingHoursID).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		if err != nil {
			return nil, err
		}
		return &wh, nil
	}

	// concurrent first callers may all get here; only one insert lands
	if err := r.seedWorkingHours(ctx); err != nil {
		return nil, err
	}
	if err := r.query(ctx).First(&wh, workingHoursID).Error; err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *AppointmentGormRepository) seedWorkingHours(ctx context.Context) error {
	defaults := domain.DefaultWorkingHours()
	defaults.ID = workingHoursID

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&defaults).Error
}

// SaveWorkingHours overwrites the schedule fields of the settings row.
func (r *AppointmentGormRepository) SaveWorkingHours(
	ctx context.Context,
	wh *models.WorkingHours,
) error {

	wh.ID = workingHoursID
	return r.db.WithContext(ctx).
		Model(wh).
		Select("start_time", "end_time", "break_start_time", "break_end_time", "slot_duration_minutes").
		Updates(wh).Error
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.query(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Preload("User")

	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Date != "" {
		q = q.Where("date = ?", filter.Date)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	aps := []models.Appointment{}
	if err := q.
		Order("date ASC").
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	aps := []models.Appointment{}
	if err := r.query(ctx).
		Where(
			"date = ? AND status IN ?",
			date,
			[]string{string(domain.StatusPending), string(domain.StatusApproved)},
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) MarkCompleted(
	ctx context.Context,
	ids []string,
	at time.Time,
) error {

	db := r.db.WithContext(ctx)

	if len(ids) > 0 {
		if err := db.
			Model(&models.Appointment{}).
			Where("id IN ? AND status = ?", ids, string(domain.StatusApproved)).
			Updates(map[string]any{
				"status":     string(domain.StatusCompleted),
				"updated_at": at,
			}).Error; err != nil {
			return err
		}
	}

	return db.
		Model(&models.WorkingHours{}).
		Where("id = ?", workingHoursID).
		Update("last_cleanup", at).Error
}

// --------------------------------------------------
// Reschedule requests
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateRescheduleRequest(
	ctx context.Context,
	req *models.RescheduleRequest,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error
}

func (r *AppointmentGormRepository) GetRescheduleRequest(
	ctx context.Context,
	id string,
) (*models.RescheduleRequest, error) {

	var req models.RescheduleRequest
	if err := r.query(ctx).
		Where("id = ?", id).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *AppointmentGormRepository) UpdateRescheduleRequest(
	ctx context.Context,
	req *models.RescheduleRequest,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(req).Error
}

func (r *AppointmentGormRepository) ListRescheduleRequests(
	ctx context.Context,
	status domain.RequestStatus,
) ([]models.RescheduleRequest, error) {

	q := r.db.WithContext(ctx).
		Preload("Appointment").
		Preload("RequestedBy")

	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	reqs := []models.RescheduleRequest{}
	if err := q.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// --------------------------------------------------
// Unit of work
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(repo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx, locking: true})
	})
}
