package format

import (
	"fmt"
	"strconv"
	"time"
)

// FormatExecutionDuration renders d in the largest unit that keeps it
// readable: whole microseconds below 1ms, whole milliseconds below 1s, and
// time.Duration's own form, rounded to the millisecond, above that.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}

// FormatRate renders a throughput such as "12,500/s". Durations too short
// to measure give "-".
func FormatRate(count int, d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	perSecond := int64(float64(count) / d.Seconds())
	return FormatNumberString(strconv.FormatInt(perSecond, 10)) + "/s"
}
