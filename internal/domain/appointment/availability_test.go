package appointment

import (
	"testing"

	"github.com/BruksfildServices01/appointease/internal/models"
)

func standardHours(t *testing.T) WorkingHours {
	t.Helper()
	m := DefaultWorkingHours()
	wh, err := ParseWorkingHours(&m)
	if err != nil {
		t.Fatalf("parse default hours: %v", err)
	}
	return wh
}

func starts(slots []TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestComputeAvailableSlots_DefaultDay(t *testing.T) {
	slots := ComputeAvailableSlots("2030-05-10", standardHours(t), nil)

	want := []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"}
	if got := starts(slots); !equalStrings(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if slots[len(slots)-1].End != "17:00" {
		t.Fatalf("expected last slot to end at 17:00, got %s", slots[len(slots)-1].End)
	}
}

func TestComputeAvailableSlots_Exclusions(t *testing.T) {
	wh := standardHours(t)

	tests := []struct {
		name     string
		existing []models.Appointment
		want     []string
	}{
		{
			name: "pending blocks",
			existing: []models.Appointment{
				{ID: "a", Date: "2030-05-10", StartTime: "10:00", EndTime: "11:00", Status: "pending"},
			},
			want: []string{"09:00", "11:00", "13:00", "14:00", "15:00", "16:00"},
		},
		{
			name: "approved off-grid blocks both touched slots",
			existing: []models.Appointment{
				{ID: "a", Date: "2030-05-10", StartTime: "13:30", EndTime: "14:30", Status: "approved"},
			},
			want: []string{"09:00", "10:00", "11:00", "15:00", "16:00"},
		},
		{
			name: "adjacent does not block",
			existing: []models.Appointment{
				{ID: "a", Date: "2030-05-10", StartTime: "08:00", EndTime: "09:00", Status: "approved"},
			},
			want: []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"},
		},
		{
			name: "rejected and completed do not block",
			existing: []models.Appointment{
				{ID: "a", Date: "2030-05-10", StartTime: "09:00", EndTime: "10:00", Status: "rejected"},
				{ID: "b", Date: "2030-05-10", StartTime: "10:00", EndTime: "11:00", Status: "completed"},
			},
			want: []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"},
		},
		{
			name: "other dates ignored",
			existing: []models.Appointment{
				{ID: "a", Date: "2030-05-11", StartTime: "09:00", EndTime: "10:00", Status: "approved"},
			},
			want: []string{"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := starts(ComputeAvailableSlots("2030-05-10", wh, tt.existing))
			if !equalStrings(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestComputeAvailableSlots_EdgeCases(t *testing.T) {
	t.Run("partial trailing period is dropped", func(t *testing.T) {
		wh := WorkingHours{DayStart: 9 * 60, DayEnd: 11*60 + 30, BreakStart: 9 * 60, BreakEnd: 9 * 60, SlotDuration: 45}
		got := starts(ComputeAvailableSlots("2030-05-10", wh, nil))
		want := []string{"09:00", "09:45", "10:30"}
		if !equalStrings(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("zero-length break never excludes", func(t *testing.T) {
		wh := WorkingHours{DayStart: 9 * 60, DayEnd: 12 * 60, BreakStart: 10 * 60, BreakEnd: 10 * 60, SlotDuration: 60}
		got := starts(ComputeAvailableSlots("2030-05-10", wh, nil))
		want := []string{"09:00", "10:00", "11:00"}
		if !equalStrings(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("malformed config yields empty", func(t *testing.T) {
		for _, wh := range []WorkingHours{
			{DayStart: 17 * 60, DayEnd: 9 * 60, SlotDuration: 60},
			{DayStart: 9 * 60, DayEnd: 9 * 60, SlotDuration: 60},
			{DayStart: 9 * 60, DayEnd: 17 * 60, SlotDuration: 0},
		} {
			slots := ComputeAvailableSlots("2030-05-10", wh, nil)
			if slots == nil || len(slots) != 0 {
				t.Fatalf("expected empty non-nil slice for %+v, got %v", wh, slots)
			}
		}
	})
}

func TestComputeAvailableSlots_NeverIntersects(t *testing.T) {
	wh := standardHours(t)
	existing := []models.Appointment{
		{ID: "a", Date: "2030-05-10", StartTime: "09:15", EndTime: "09:45", Status: "pending"},
		{ID: "b", Date: "2030-05-10", StartTime: "14:00", EndTime: "16:00", Status: "approved"},
	}

	booked := blockingIntervals("2030-05-10", existing, "")
	for _, s := range ComputeAvailableSlots("2030-05-10", wh, existing) {
		start, _ := ParseClock(s.Start)
		end, _ := ParseClock(s.End)
		w := interval{start: start, end: end}

		if w.overlaps(wh.breakWindow()) {
			t.Fatalf("slot %v intersects the break", s)
		}
		if overlapsAny(w, booked) {
			t.Fatalf("slot %v intersects a booking", s)
		}
	}
}

func TestCheckWindowFree(t *testing.T) {
	existing := []models.Appointment{
		{ID: "a", Date: "2030-05-10", StartTime: "10:00", EndTime: "11:00", Status: "approved"},
	}

	if err := CheckWindowFree("2030-05-10", 10*60+30, 11*60+30, existing, ""); err != ErrSlotTaken {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if err := CheckWindowFree("2030-05-10", 10*60, 11*60, existing, "a"); err != nil {
		t.Fatalf("expected excluded appointment to be ignored, got %v", err)
	}
	if err := CheckWindowFree("2030-05-10", 11*60, 12*60, existing, ""); err != nil {
		t.Fatalf("expected adjacent window to be free, got %v", err)
	}
}
