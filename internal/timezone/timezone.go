package timezone

import "time"

const DefaultTimezone = "Asia/Ulaanbaatar"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to the salon default, then UTC, when tz cannot be
// loaded.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Clock returns a clock fixed to tz.
func Clock(tz string) func() time.Time {
	loc := Location(tz)
	return func() time.Time { return time.Now().In(loc) }
}

// Today formats the current date in tz as YYYY-MM-DD.
func Today(tz string) string {
	return NowIn(tz).Format("2006-01-02")
}
