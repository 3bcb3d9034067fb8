package chrono

import (
	"time"
	_ "time/tzdata"
)

var madrid *time.Location

func init() {
	var err error
	madrid, err = time.LoadLocation("Europe/Madrid")
	if err != nil {
		panic(err)
	}
}

// Madrid returns a [*time.Location] for Europe/Madrid, the timezone auction
// dates are published in.
func Madrid() *time.Location {
	return madrid
}

// TimeAPI is the interface that anything depending on the system clock should use.
type TimeAPI interface {
	// Now returns the current time in Europe/Madrid.
	Now() time.Time
}

// StandardTime is the standard implementation of TimeAPI using the standard library.
type StandardTime struct{}

func NewStandardTime() StandardTime {
	return StandardTime{}
}

func (StandardTime) Now() time.Time {
	return time.Now().In(madrid)
}

// FixedTime always returns the same instant, tests use it to pin run
// timestamps.
type FixedTime time.Time

func (f FixedTime) Now() time.Time {
	return time.Time(f).In(madrid)
}
