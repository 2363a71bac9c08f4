package domain

import (
	"os"
	"strconv"
	"time"
)

// Clock returns the time written into generated file headers.
type Clock func() time.Time

// SystemClock returns the current time, or the time in SOURCE_DATE_EPOCH when it
// is set to a valid Unix timestamp so generated files are reproducible.
func SystemClock() time.Time {
	if epoch := os.Getenv("SOURCE_DATE_EPOCH"); epoch != "" {
		if secs, err := strconv.ParseInt(epoch, 10, 64); err == nil {
			return time.Unix(secs, 0).UTC()
		}
	}
	return time.Now()
}
