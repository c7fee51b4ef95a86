package common

import "time"

// TimestampLayout is fixed width so that ISO-8601 strings sort the same way
// lexically as chronologically. All stored ts columns use it, in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		// rows written by other tools may carry an offset or fewer digits
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}
