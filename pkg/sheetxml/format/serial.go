package format

import (
	"fmt"
	"math"
	"time"

	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/errs"
)

// MaxSerial is the date serial of 9999-12-31, the last date a workbook can hold.
const MaxSerial = 2958465

const msPerDay = 24 * 60 * 60 * 1000

var (
	epoch1900 = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	// Serials before this date are one lower than the day count, because the
	// 1900 date system counts a nonexistent 1900-02-29 as serial 60.
	leapDay1900 = time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)
)

// SerialToTime converts a date serial into a wall-clock time in loc (UTC if
// nil). In the 1900 system serial 1 is 1900-01-01 and serial 60 reads as
// 1900-03-01. Negative serials and serials past MaxSerial are not dates and
// fail with errs.ErrInvalidArgument.
func SerialToTime(serial float64, date1904 bool, loc *time.Location) (time.Time, error) {
	if math.IsNaN(serial) || serial < 0 || serial >= MaxSerial+1 {
		return time.Time{}, fmt.Errorf("%w: date serial %v is out of range", errs.ErrInvalidArgument, serial)
	}
	if loc == nil {
		loc = time.UTC
	}

	epoch := epoch1900
	switch {
	case date1904:
		epoch = epoch1904
	case serial < 61:
		serial++
	}

	days := math.Floor(serial)
	ms := math.Round((serial - days) * msPerDay)
	t := epoch.AddDate(0, 0, int(days)).Add(time.Duration(ms) * time.Millisecond)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
}

// TimeToSerial converts the wall clock of t into a date serial.
func TimeToSerial(t time.Time, date1904 bool) float64 {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	epoch := epoch1900
	if date1904 {
		epoch = epoch1904
	}
	secs := float64(wall.Unix()-epoch.Unix()) + float64(wall.Nanosecond())/1e9
	serial := secs / 86400
	if !date1904 && wall.Before(leapDay1900) {
		serial--
	}
	return serial
}
