package timezone

import (
	"fmt"
	"time"
)

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
}

// force timezone to be eastern because federal data sources publish
// dates relative to DC time, and our servers sometimes end up in other
// regions which will cause disturbances when manipulating dates
// based on <time.Time>.Year()/Month()/Day()/Hour()/...
func Now() time.Time {
	return time.Now().In(Location)
}

// GetCalendarYear returns the first and last day of the calendar year
// containing "now", evaluated in the pinned timezone.
func GetCalendarYear(now time.Time) (start, stop time.Time) {
	year := now.In(Location).Year()
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, Location)
	stop = time.Date(year, time.December, 31, 0, 0, 0, 0, Location)
	return start, stop
}

// FormatDate renders a time as the YYYY-MM-DD form every federal API
// in this codebase speaks.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), t.Month(), t.Day())
}
