package ledger

import "time"

// Clock abstracts wall-clock time so daily caps and session expiry are
// testable with a fixed time source.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the production Clock backed by time.Now.
var SystemClock Clock = systemClock{}
