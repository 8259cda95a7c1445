package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/appointease/internal/domain/appointment"
	"github.com/BruksfildServices01/appointease/internal/domain/meeting"
	"github.com/BruksfildServices01/appointease/internal/domain/user"
	"github.com/BruksfildServices01/appointease/internal/models"
)

const upcomingLimit = 5

type UserDashboard struct {
	Stats    domain.Stats         `json:"stats"`
	Upcoming []models.Appointment `json:"upcoming"`
}

type AdminDashboard struct {
	Stats             domain.Stats   `json:"stats"`
	PendingReschedule int            `json:"pending_reschedule_requests"`
	Users             int64          `json:"users"`
	UpcomingMeetings  []meeting.View `json:"upcoming_meetings"`
}

type Dashboard struct {
	Deps
	Users    user.Repository
	Meetings meeting.Repository
}

func NewDashboard(deps Deps, users user.Repository, meetings meeting.Repository) *Dashboard {
	return &Dashboard{Deps: deps, Users: users, Meetings: meetings}
}

func (uc *Dashboard) ForUser(ctx context.Context, userID string) (*UserDashboard, error) {
	aps, err := NewListAppointments(uc.Deps).Execute(ctx, domain.ListFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	return &UserDashboard{
		Stats:    domain.CountByStatus(aps),
		Upcoming: domain.UpcomingApproved(aps, uc.now(), upcomingLimit),
	}, nil
}

func (uc *Dashboard) ForAdmin(ctx context.Context) (*AdminDashboard, error) {
	aps, err := NewListAppointments(uc.Deps).Execute(ctx, domain.ListFilter{})
	if err != nil {
		return nil, err
	}

	pending, err := uc.Repo.ListRescheduleRequests(ctx, domain.RequestPending)
	if err != nil {
		return nil, err
	}

	users, err := uc.Users.Count(ctx, models.RoleUser)
	if err != nil {
		return nil, err
	}

	ms, err := uc.Meetings.List(ctx, "")
	if err != nil {
		return nil, err
	}

	upcoming := []meeting.View{}
	for _, v := range meeting.Annotate(ms, uc.now()) {
		if v.Status == meeting.StatusUpcoming {
			upcoming = append(upcoming, v)
		}
		if len(upcoming) == upcomingLimit {
			break
		}
	}

	return &AdminDashboard{
		Stats:             domain.CountByStatus(aps),
		PendingReschedule: len(pending),
		Users:             users,
		UpcomingMeetings:  upcoming,
	}, nil
}
