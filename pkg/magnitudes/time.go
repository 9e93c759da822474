package magnitudes

import "time"

const (
	SecondsPerMinute = 60.0
	SecondsPerHour   = 3600.0
	SecondsPerDay    = 86400.0
)

// TimeUnit selects the unit of a time value.
type TimeUnit int

const (
	UnitSeconds TimeUnit = iota
	UnitMinutes
	UnitHours
	UnitDays
)

// Time is an interval stored in seconds.
type Time struct {
	seconds float64
}

// Seconds returns an interval of s seconds.
func Seconds(s float64) Time { return Time{seconds: s} }

// Minutes returns an interval of m minutes.
func Minutes(m float64) Time { return Time{seconds: m * SecondsPerMinute} }

// Hours returns an interval of h hours.
func Hours(h float64) Time { return Time{seconds: h * SecondsPerHour} }

// Days returns an interval of d days.
func Days(d float64) Time { return Time{seconds: d * SecondsPerDay} }

// FromDuration converts a time.Duration.
func FromDuration(d time.Duration) Time { return Time{seconds: d.Seconds()} }

// NewTime builds an interval from a value expressed in unit.
func NewTime(value float64, unit TimeUnit) Time {
	switch unit {
	case UnitMinutes:
		return Minutes(value)
	case UnitHours:
		return Hours(value)
	case UnitDays:
		return Days(value)
	default:
		return Seconds(value)
	}
}

func (t Time) InSeconds() float64 { return t.seconds }
func (t Time) InMinutes() float64 { return t.seconds / SecondsPerMinute }
func (t Time) InHours() float64   { return t.seconds / SecondsPerHour }
func (t Time) InDays() float64    { return t.seconds / SecondsPerDay }

func (t *Time) SetSeconds(s float64) { t.seconds = s }
func (t *Time) SetMinutes(m float64) { t.seconds = m * SecondsPerMinute }
func (t *Time) SetHours(h float64)   { t.seconds = h * SecondsPerHour }
func (t *Time) SetDays(d float64)    { t.seconds = d * SecondsPerDay }

// Duration converts t to a time.Duration, truncating below a nanosecond.
func (t Time) Duration() time.Duration {
	return time.Duration(t.seconds * float64(time.Second))
}
