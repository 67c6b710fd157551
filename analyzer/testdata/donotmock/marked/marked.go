package marked

import "time"

// Clock tells the time.
//
//patchcheck:donotmock
type Clock interface {
	Now() time.Time
}

// Ticker counts ticks.
type Ticker interface {
	Tick() int
}
