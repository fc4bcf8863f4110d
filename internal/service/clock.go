package service

import "time"

// now is swapped out by tests that need deterministic timestamps.
var now = func() time.Time {
	return time.Now().UTC()
}
