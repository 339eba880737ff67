package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts wall time so day-keyed logic can be tested.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func provideClock() Clock {
	return SystemClock{}
}

var Module = fx.Module("clock",
	fx.Provide(provideClock),
)
