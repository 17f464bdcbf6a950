// Package timeutil converts between human-readable timestamps and the
// microseconds-since-epoch counters used as the time variant of values.
//
// Parsing is forgiving: text that looks like neither a date nor a
// time-of-day yields 0 rather than an error. Dates and date-times are
// interpreted in the local time zone; a bare time-of-day is an offset from
// midnight rather than an absolute instant.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Microsecond is the resolution of a timestamp counter.
	Microsecond uint64 = 1
	// Second is one second of timestamp counter.
	Second = 1000000 * Microsecond
	// Minute is one minute of timestamp counter.
	Minute = 60 * Second
	// Hour is one hour of timestamp counter.
	Hour = 60 * Minute
	// Day is one day of timestamp counter.
	Day = 24 * Hour
)

// Now returns the current local instant as a timestamp counter.
func Now() uint64 {
	return uint64(time.Now().UnixMicro())
}

// FromTime converts a time.Time to a timestamp counter.
func FromTime(t time.Time) uint64 {
	return uint64(t.UnixMicro())
}

// ToTime converts a timestamp counter to a local time.Time.
func ToTime(ts uint64) time.Time {
	return time.UnixMicro(int64(ts)).Local()
}

// Parse interprets s as a timestamp. Recognized forms are
//
//	2006-01-02 15:04:05
//	2006-01-02
//	15:04:05
//
// each optionally followed by a fractional-second suffix of up to six
// digits, e.g. "2006-01-02 15:04:05.123456". A trailing fraction longer
// than six digits is truncated. Text recognized as none of these yields 0.
func Parse(s string) uint64 {
	var frac uint64
	if k := strings.LastIndexByte(s, '.'); k >= 0 {
		f := s[k+1:] + "000000"
		n, err := strconv.Atoi(f[:6])
		if err != nil {
			return 0
		}
		frac = uint64(n)
		s = s[:k]
	}
	date := strings.ContainsRune(s, '-') && len(s) >= 10
	clock := strings.ContainsRune(s, ':') && len(s) >= 8
	switch {
	case date && clock:
		t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local)
		if err != nil {
			return 0
		}
		return FromTime(t) + frac
	case date:
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return 0
		}
		return FromTime(t) + frac
	case clock:
		t, err := time.Parse("15:04:05", s)
		if err != nil {
			return 0
		}
		off := uint64(t.Hour())*Hour + uint64(t.Minute())*Minute + uint64(t.Second())*Second
		return off + frac
	}
	return 0
}

// Format renders ts as a local "2006-01-02 15:04:05" date-time, with a
// six-digit fractional-second suffix when micros is true.
func Format(ts uint64, micros bool) string {
	t := ToTime(ts)
	if micros {
		return t.Format("2006-01-02 15:04:05") + fmt.Sprintf(".%06d", ts%Second)
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDate renders the date portion of ts in local time.
func FormatDate(ts uint64) string {
	return ToTime(ts).Format("2006-01-02")
}

// FormatTime renders the time-of-day portion of ts in local time, with a
// six-digit fractional-second suffix when micros is true.
func FormatTime(ts uint64, micros bool) string {
	t := ToTime(ts)
	if micros {
		return t.Format("15:04:05") + fmt.Sprintf(".%06d", ts%Second)
	}
	return t.Format("15:04:05")
}

// A Stopwatch measures elapsed intervals in timestamp counter units.
// The zero Stopwatch is running since the epoch; call Start to begin a
// measurement.
type Stopwatch struct {
	start uint64
}

// Start resets the stopwatch to the current instant.
func (w *Stopwatch) Start() {
	w.start = Now()
}

// Elapsed reports the counter units since the last Start.
func (w *Stopwatch) Elapsed() uint64 {
	return Now() - w.start
}

// Seconds reports the elapsed interval as floating-point seconds.
func (w *Stopwatch) Seconds() float64 {
	return float64(w.Elapsed()) / float64(Second)
}
