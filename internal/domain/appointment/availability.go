package appointment

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BusinessHours bound the slots offered by availability listings.
type BusinessHours struct {
	Open  int
	Close int
	Step  int
}

// FreeSlots walks the day in Step increments and keeps every start where a
// booking of duration fits before Close without overlapping existing.
func FreeSlots(hours BusinessHours, duration int, existing []Interval) []TimeSlot {
	slots := []TimeSlot{}
	if duration <= 0 || hours.Step <= 0 {
		return slots
	}

	for cur := hours.Open; cur+duration <= hours.Close && FitsInDay(cur, duration); cur += hours.Step {
		candidate := NewInterval(cur, duration)

		conflict := false
		for _, ex := range existing {
			if candidate.Overlaps(ex) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: FormatClock(candidate.Start),
				End:   FormatClock(candidate.End),
			})
		}
	}

	return slots
}
