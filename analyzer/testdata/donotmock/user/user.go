package user

import (
	"time"

	"test/donotmock/marked"
)

type fakeClock struct{ now time.Time } // want "Type fakeClock mocks test/donotmock/marked.Clock, which must not be mocked"

func (f fakeClock) Now() time.Time { return f.now }

type fakeTicker struct{ n int }

func (f *fakeTicker) Tick() int { f.n++; return f.n }

var (
	_ marked.Clock  = fakeClock{}
	_ marked.Ticker = (*fakeTicker)(nil)
)
