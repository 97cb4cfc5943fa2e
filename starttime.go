package main

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// maxStartSeconds is the largest offset a time.Duration can hold.
const maxStartSeconds = math.MaxInt64 / int64(time.Second)

// parseStartTime parses a start offset written as H:MM:SS, MM:SS or SS.
// Fields are non-negative integers; sign characters and fractions are
// rejected, as are totals a time.Duration cannot represent.
func parseStartTime(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, usageErrorf("invalid start time %q: expected H:MM:SS, MM:SS or SS", s)
	}

	var total int64
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return 0, usageErrorf("invalid start time %q: %q is not a non-negative integer", s, p)
		}
		// total stays <= maxStartSeconds here, so total*60 + n cannot overflow.
		total = total*60 + int64(n)
		if total > maxStartSeconds {
			return 0, usageErrorf("invalid start time %q: out of range", s)
		}
	}
	return time.Duration(total) * time.Second, nil
}
