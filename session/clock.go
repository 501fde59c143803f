package session

import "time"

// Clock is the wall-clock source the frame loop measures elapsed time with.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
