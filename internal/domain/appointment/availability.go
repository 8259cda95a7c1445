package appointment

import (
	"github.com/BruksfildServices01/appointease/internal/models"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ComputeAvailableSlots tiles the working day for date into contiguous
// windows of the slot duration and keeps the ones that touch neither the
// break nor a pending/approved appointment on that date. A trailing period
// shorter than a slot is not emitted. Malformed hours yield no slots.
func ComputeAvailableSlots(
	date string,
	wh WorkingHours,
	existing []models.Appointment,
) []TimeSlot {

	slots := []TimeSlot{}
	if wh.Malformed() {
		return slots
	}

	booked := blockingIntervals(date, existing, "")

	for cur := wh.DayStart; cur.Add(wh.SlotDuration) <= wh.DayEnd; cur = cur.Add(wh.SlotDuration) {
		window := interval{start: cur, end: cur.Add(wh.SlotDuration)}

		// break
		if wh.hasBreak() && window.overlaps(wh.breakWindow()) {
			continue
		}

		if overlapsAny(window, booked) {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: window.start.String(),
			End:   window.end.String(),
		})
	}

	return slots
}

// CheckWindowFree returns ErrSlotTaken when [start, end) on date intersects
// any blocking appointment other than excludeID.
func CheckWindowFree(
	date string,
	start Clock,
	end Clock,
	existing []models.Appointment,
	excludeID string,
) error {
	if overlapsAny(interval{start: start, end: end}, blockingIntervals(date, existing, excludeID)) {
		return ErrSlotTaken
	}
	return nil
}

func blockingIntervals(date string, aps []models.Appointment, excludeID string) []interval {
	out := make([]interval, 0, len(aps))
	for _, ap := range aps {
		if ap.Date != date || !Status(ap.Status).Blocking() {
			continue
		}
		if excludeID != "" && ap.ID == excludeID {
			continue
		}

		start, err := ParseClock(ap.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(ap.EndTime)
		if err != nil {
			continue
		}
		out = append(out, interval{start: start, end: end})
	}
	return out
}

func overlapsAny(w interval, booked []interval) bool {
	for _, b := range booked {
		if w.overlaps(b) {
			return true
		}
	}
	return false
}

func containsStart(slots []TimeSlot, start Clock) bool {
	s := start.String()
	for _, slot := range slots {
		if slot.Start == s {
			return true
		}
	}
	return false
}
