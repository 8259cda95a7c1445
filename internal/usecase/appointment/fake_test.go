package appointment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/audit"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
)

// memRepo is an in-memory Repository. Transaction holds txMu for the whole
// callback, like the row lock the gorm repository takes.
type memRepo struct {
	txMu *sync.Mutex
	mu   *sync.Mutex

	hours    *models.WorkingHours
	aps      map[string]models.Appointment
	requests map[string]models.RescheduleRequest
	seq      *int

	completedAt *time.Time
}

var _ domain.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	wh := domain.DefaultWorkingHours()
	seq := 0
	return &memRepo{
		txMu:     &sync.Mutex{},
		mu:       &sync.Mutex{},
		hours:    &wh,
		aps:      map[string]models.Appointment{},
		requests: map[string]models.RescheduleRequest{},
		seq:      &seq,
	}
}

func (r *memRepo) nextID(prefix string) string {
	*r.seq++
	return fmt.Sprintf("%s-%d", prefix, *r.seq)
}

func (r *memRepo) put(ap models.Appointment) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == "" {
		ap.ID = r.nextID("ap")
	}
	r.aps[ap.ID] = ap
	return ap
}

func (r *memRepo) GetWorkingHours(ctx context.Context) (*models.WorkingHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wh := *r.hours
	return &wh, nil
}

func (r *memRepo) SaveWorkingHours(ctx context.Context, wh *models.WorkingHours) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *wh
	r.hours = &saved
	return nil
}

func (r *memRepo) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.aps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &ap, nil
}

func (r *memRepo) ListAppointments(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, ap := range r.aps {
		if f.UserID != "" && ap.UserID != f.UserID {
			continue
		}
		if f.Date != "" && ap.Date != f.Date {
			continue
		}
		if f.Status != "" && ap.Status != string(f.Status) {
			continue
		}
		out = append(out, ap)
	}
	domain.SortByStart(out)
	return out, nil
}

func (r *memRepo) ListAppointmentsForDate(ctx context.Context, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, ap := range r.aps {
		if ap.Date == date && domain.Status(ap.Status).Blocking() {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *memRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == "" {
		ap.ID = r.nextID("ap")
	}
	r.aps[ap.ID] = *ap
	return nil
}

func (r *memRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.aps[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.aps[ap.ID] = *ap
	return nil
}

func (r *memRepo) MarkCompleted(ctx context.Context, ids []string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		ap, ok := r.aps[id]
		if ok && ap.Status == string(domain.StatusApproved) {
			ap.Status = string(domain.StatusCompleted)
			r.aps[id] = ap
		}
	}
	r.completedAt = &at
	return nil
}

func (r *memRepo) CreateRescheduleRequest(ctx context.Context, req *models.RescheduleRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		req.ID = r.nextID("rr")
	}
	r.requests[req.ID] = *req
	return nil
}

func (r *memRepo) GetRescheduleRequest(ctx context.Context, id string) (*models.RescheduleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &req, nil
}

func (r *memRepo) UpdateRescheduleRequest(ctx context.Context, req *models.RescheduleRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[req.ID] = *req
	return nil
}

func (r *memRepo) ListRescheduleRequests(ctx context.Context, status domain.RequestStatus) ([]models.RescheduleRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.RescheduleRequest{}
	for _, req := range r.requests {
		if status == "" || req.Status == string(status) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *memRepo) Transaction(ctx context.Context, fn func(repo domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

// ------------------------------------------------------

type recordingAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type recordingEvents struct {
	mu      sync.Mutex
	changes []notify.Change
}

func (e *recordingEvents) Publish(_ context.Context, c notify.Change) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.changes = append(e.changes, c)
}

func (e *recordingEvents) last() notify.Change {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.changes) == 0 {
		return notify.Change{}
	}
	return e.changes[len(e.changes)-1]
}

// fixedNow is 2030-05-10 08:00 UTC, before the first default slot.
var fixedNow = time.Date(2030, 5, 10, 8, 0, 0, 0, time.UTC)

func testDeps(repo *memRepo) (Deps, *recordingAudit, *recordingEvents) {
	a := &recordingAudit{}
	e := &recordingEvents{}
	return Deps{
		Repo:   repo,
		Audit:  a,
		Events: e,
		Now:    func() time.Time { return fixedNow },
	}, a, e
}

func approved(userID, date, start, end string) models.Appointment {
	return models.Appointment{
		UserID:    userID,
		Title:     "Consultation",
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.StatusApproved),
		Mode:      string(domain.ModeInPerson),
	}
}
