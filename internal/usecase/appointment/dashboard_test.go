package appointment

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/domain/meeting"
	"github.com/BruksfildServices01/appointease/internal/domain/user"
	"github.com/BruksfildServices01/appointease/internal/models"
)

type countingUsers struct {
	user.Repository
	n int64
}

func (u countingUsers) Count(ctx context.Context, role string) (int64, error) {
	return u.n, nil
}

type listedMeetings struct {
	meeting.Repository
	ms []models.Meeting
}

func (m listedMeetings) List(ctx context.Context, participantID string) ([]models.Meeting, error) {
	return m.ms, nil
}

type failingArchive struct{ calls int }

func (a *failingArchive) Archive(ctx context.Context, at time.Time, data []byte) (string, error) {
	a.calls++
	return "", errors.New("bucket unavailable")
}

func TestDashboard_ForUser(t *testing.T) {
	repo := newMemRepo()
	repo.put(approved("user-1", "2030-05-09", "10:00", "11:00"))
	repo.put(approved("user-1", "2030-05-11", "10:00", "11:00"))
	pending := approved("user-1", "2030-05-12", "10:00", "11:00")
	pending.Status = string(domain.StatusPending)
	repo.put(pending)
	repo.put(approved("user-2", "2030-05-11", "11:00", "12:00"))

	deps, _, _ := testDeps(repo)
	d, err := NewDashboard(deps, countingUsers{}, listedMeetings{}).ForUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.Stats{Total: 3, Pending: 1, Approved: 1, Completed: 1}
	if d.Stats != want {
		t.Fatalf("expected %+v, got %+v", want, d.Stats)
	}
	if len(d.Upcoming) != 1 || d.Upcoming[0].Date != "2030-05-11" {
		t.Fatalf("unexpected upcoming: %+v", d.Upcoming)
	}
}

func TestDashboard_ForAdmin(t *testing.T) {
	repo := newMemRepo()
	ap := repo.put(approved("user-1", "2030-05-11", "10:00", "11:00"))
	seedRequest(t, repo, ap, "2030-05-12", "14:00", "15:00")

	meetings := listedMeetings{ms: []models.Meeting{
		{ID: "past", Date: "2030-05-01", StartTime: "10:00", EndTime: "11:00"},
		{ID: "next", Date: "2030-05-20", StartTime: "10:00", EndTime: "11:00"},
	}}

	deps, _, _ := testDeps(repo)
	d, err := NewDashboard(deps, countingUsers{n: 4}, meetings).ForAdmin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Stats.Approved != 1 || d.PendingReschedule != 1 || d.Users != 4 {
		t.Fatalf("unexpected dashboard: %+v", d)
	}
	if len(d.UpcomingMeetings) != 1 || d.UpcomingMeetings[0].ID != "next" {
		t.Fatalf("unexpected meetings: %+v", d.UpcomingMeetings)
	}
}

func TestExportWorkbook_ArchiveFailureIsLogged(t *testing.T) {
	repo := newMemRepo()
	repo.put(approved("user-1", "2030-05-11", "10:00", "11:00"))

	var logs bytes.Buffer
	archive := &failingArchive{}
	deps, _, _ := testDeps(repo)

	data, err := NewExportWorkbook(deps, listedMeetings{}, archive, zerolog.New(&logs)).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected workbook bytes")
	}
	if archive.calls != 1 {
		t.Fatalf("expected one archive attempt, got %d", archive.calls)
	}
	if !bytes.Contains(logs.Bytes(), []byte("bucket unavailable")) {
		t.Fatalf("expected the archive error to be logged, got %s", logs.String())
	}
}
