package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/appointease/internal/models"
)

// ===============================
// Query Surface
// ===============================

func ListByStatus(aps []models.Appointment, s Status) []models.Appointment {
	out := []models.Appointment{}
	for _, ap := range aps {
		if Status(ap.Status) == s {
			out = append(out, ap)
		}
	}
	return out
}

func ListPending(aps []models.Appointment) []models.Appointment {
	return ListByStatus(aps, StatusPending)
}

// UpcomingApproved returns approved appointments starting after now,
// soonest first. limit <= 0 means no limit.
func UpcomingApproved(aps []models.Appointment, now time.Time, limit int) []models.Appointment {
	out := []models.Appointment{}
	for _, ap := range aps {
		if Status(ap.Status) != StatusApproved {
			continue
		}
		start, err := StartsAt(ap, now.Location())
		if err != nil || !start.After(now) {
			continue
		}
		out = append(out, ap)
	}

	SortByStart(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SortByStart orders by date then start time. Both are zero padded so
// string order is chronological.
func SortByStart(aps []models.Appointment) {
	sort.SliceStable(aps, func(i, j int) bool {
		if aps[i].Date != aps[j].Date {
			return aps[i].Date < aps[j].Date
		}
		return aps[i].StartTime < aps[j].StartTime
	})
}

type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Completed int `json:"completed"`
}

func CountByStatus(aps []models.Appointment) Stats {
	var s Stats
	for _, ap := range aps {
		s.Total++
		switch Status(ap.Status) {
		case StatusPending:
			s.Pending++
		case StatusApproved:
			s.Approved++
		case StatusRejected:
			s.Rejected++
		case StatusCompleted:
			s.Completed++
		}
	}
	return s
}

// StatsByUser groups CountByStatus per owning user.
func StatsByUser(aps []models.Appointment) map[string]Stats {
	grouped := map[string][]models.Appointment{}
	for _, ap := range aps {
		grouped[ap.UserID] = append(grouped[ap.UserID], ap)
	}

	out := make(map[string]Stats, len(grouped))
	for uid, list := range grouped {
		out[uid] = CountByStatus(list)
	}
	return out
}
