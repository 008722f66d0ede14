package reservation

import (
	"fmt"
	"time"
)

// Config holds a company's reservation policy. Every company has exactly one
// effective config; companies without a stored row fall back to DefaultConfig.
type Config struct {
	CompanyID           string
	MaxAdvanceDays      int
	MinDuration         time.Duration
	MaxDuration         time.Duration
	AllowWeekendBooking bool
	WorkStart           string
	WorkEnd             string
	RequireApproval     bool
	AutoApproval        bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultConfig returns the policy applied before an admin customizes one.
func DefaultConfig(companyID string) Config {
	return Config{
		CompanyID:           companyID,
		MaxAdvanceDays:      30,
		MinDuration:         15 * time.Minute,
		MaxDuration:         8 * time.Hour,
		AllowWeekendBooking: true,
		WorkStart:           "09:00",
		WorkEnd:             "18:00",
		RequireApproval:     false,
		AutoApproval:        true,
	}
}

// WorkingWindow resolves the working hours for a calendar day, in the day's
// own location. Returns an error if the stored clock strings are malformed.
func (c Config) WorkingWindow(day time.Time) (time.Time, time.Time, error) {
	start, err := atClock(day, c.WorkStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse work start: %w", err)
	}
	end, err := atClock(day, c.WorkEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse work end: %w", err)
	}
	return start, end, nil
}

func atClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
