// pkg/orbit/clock.go
package orbit

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// DefaultEpoch is the J2000.0 reference instant
var DefaultEpoch = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// Clock tracks simulated days elapsed since an epoch
type Clock struct {
	epochJD float64
	days    float64
}

// NewClock creates a clock starting at epoch
func NewClock(epoch time.Time) *Clock {
	return &Clock{epochJD: julian.TimeToJD(epoch)}
}

// Advance adds simulated days; negative values are ignored
func (c *Clock) Advance(days float64) {
	if days > 0 {
		c.days += days
	}
}

// ElapsedDays returns the simulated days since the epoch
func (c *Clock) ElapsedDays() float64 {
	return c.days
}

// JulianDate returns the current simulated Julian date
func (c *Clock) JulianDate() float64 {
	return c.epochJD + c.days
}

// Time returns the current simulated instant in UTC
func (c *Clock) Time() time.Time {
	return julian.JDToTime(c.JulianDate())
}
