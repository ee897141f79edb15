package archiver

import (
	"strconv"
	"strings"
	"time"

	"github.com/anchore/srcjar/srcjar/srcjarerr"
)

var (
	// earliest and latest instants representable in a zip entry (DOS date/time, two second precision)
	minTimestamp = time.Date(1980, time.January, 1, 0, 0, 2, 0, time.UTC)
	maxTimestamp = time.Date(2099, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// ParseOutputTimestamp parses the reproducible build timestamp. An empty or single character value (a common way
// to disable the property when inherited) means the build is not reproducible and yields nil. Otherwise the value is
// either an integer number of seconds since the epoch or an ISO-8601 date time with an offset.
func ParseOutputTimestamp(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if len(value) < 2 {
		return nil, nil
	}

	var ts time.Time
	if isDigits(value) {
		seconds, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, &srcjarerr.InvalidTimestampError{Value: value, Reason: err.Error()}
		}
		ts = time.Unix(seconds, 0)
	} else {
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, &srcjarerr.InvalidTimestampError{Value: value, Reason: "expected an ISO-8601 date time with an offset (e.g. 2023-01-01T00:00:00Z) or seconds since the epoch"}
		}
		ts = parsed
	}

	ts = ts.UTC().Truncate(time.Second)
	if ts.Before(minTimestamp) || ts.After(maxTimestamp) {
		return nil, &srcjarerr.InvalidTimestampError{
			Value:  value,
			Reason: "must be between " + minTimestamp.Format(time.RFC3339) + " and " + maxTimestamp.Format(time.RFC3339),
		}
	}
	return &ts, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
