package timetable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lintang-b-s/tdnavigator/pkg"
)

// HourBucket extracts the hour of day from a timestamp like "12 Mai 23_56_09":
// the third whitespace separated token holds hour_minute_second.
func HourBucket(timestamp string) (int, error) {
	tokens := strings.Fields(timestamp)
	if len(tokens) < 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, timestamp)
	}

	hourPart, _, _ := strings.Cut(tokens[2], "_")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour >= pkg.HOURS_PER_DAY {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, timestamp)
	}
	return hour, nil
}
