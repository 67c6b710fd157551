package advisory

import (
	. "strings"
	"time"
)

// Clock tells the time.
//
//patchcheck:donotmock
type Clock interface { // want Clock:"donotmock"
	Now() time.Time
}

type fixed struct{ t time.Time } // want "Type fixed mocks Clock, which must not be mocked"

func (f fixed) Now() time.Time { return f.t }

type stopped struct{ t time.Time } //nolint:donotmock

func (s stopped) Now() time.Time { return s.t }

func shout(s string) string {
	strings := "!"

	return ToUpper(s) + strings // want "Dot import of \"strings\": use 'strings.ToUpper'"
}
