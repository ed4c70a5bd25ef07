package health

import "time"

// AgeMinutes returns whole minutes elapsed between lastUpdated and now,
// truncated to milliseconds then seconds then minutes, each step rounding
// toward negative infinity.
func AgeMinutes(now, lastUpdated time.Time) int64 {
	elapsedMs := now.UnixMilli() - lastUpdated.UnixMilli()
	return floorDiv(floorDiv(elapsedMs, 1000), 60)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
