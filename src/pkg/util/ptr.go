package util

import "time"

// Ptr returns a pointer to a copy of v, for inlining optional fields in
// struct literals (e.g. util.Ptr(openai.EffortLow)).
func Ptr[T any](v T) *T {
	return &v
}

// WaitForSeconds sleeps for the given number of seconds, accepting a
// fractional value so callers can pass a time.Duration.Seconds() result
// directly.
func WaitForSeconds(seconds float64) {
	time.Sleep(time.Duration(seconds * float64(time.Second)))
}
