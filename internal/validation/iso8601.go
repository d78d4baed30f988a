package validation

import (
	"fmt"
	"time"
)

// ParseDate parses an ISO-8601 date with an optional time. Accepted dates are
// calendar dates in extended or basic form with reduced precision (2024-05-06,
// 20240506, 2024-05, 2024), week dates (2024-W19-1, 2024W191) and ordinal
// dates (2024-127). A time follows after "T" or a space: hours with optional
// minutes and seconds, a fraction after "." or ",", and an optional zone
// (Z, +02, +0200, +02:00). Values without a zone are UTC.
func ParseDate(value string) (time.Time, error) {
	s := &isoScanner{src: value}
	date, ok := s.date()
	if ok && !s.done() {
		if sep := s.peek(); sep == 'T' || sep == ' ' {
			s.pos++
			date, ok = s.clock(date)
		} else {
			ok = false
		}
	}
	if !ok || !s.done() {
		return time.Time{}, fmt.Errorf("invalid ISO-8601 date %q", value)
	}
	return date, nil
}

type isoScanner struct {
	src string
	pos int
}

func (s *isoScanner) done() bool { return s.pos >= len(s.src) }

func (s *isoScanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.src[s.pos]
}

// accept consumes c when it is next.
func (s *isoScanner) accept(c byte) bool {
	if s.peek() == c {
		s.pos++
		return true
	}
	return false
}

// digitRun counts the digits starting at the current position.
func (s *isoScanner) digitRun() int {
	n := 0
	for i := s.pos; i < len(s.src) && isDigit(s.src[i]); i++ {
		n++
	}
	return n
}

// number consumes exactly n digits.
func (s *isoScanner) number(n int) (int, bool) {
	if s.pos+n > len(s.src) {
		return 0, false
	}
	v := 0
	for _, c := range []byte(s.src[s.pos : s.pos+n]) {
		if !isDigit(c) {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	s.pos += n
	return v, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (s *isoScanner) date() (time.Time, bool) {
	sign := 1
	if s.accept('-') {
		sign = -1
	} else {
		s.accept('+')
	}
	year, ok := s.number(4)
	if !ok {
		return time.Time{}, false
	}
	year *= sign
	if s.done() {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}

	extended := s.accept('-')
	if s.accept('W') {
		return s.weekDate(year, extended)
	}

	switch run := s.digitRun(); {
	case run == 3:
		dayOfYear, _ := s.number(3)
		if dayOfYear < 1 || dayOfYear > 366 {
			return time.Time{}, false
		}
		t := time.Date(year, time.January, dayOfYear, 0, 0, 0, 0, time.UTC)
		return t, t.Year() == year
	case extended && run == 2:
		month, _ := s.number(2)
		day := 1
		if s.accept('-') {
			if day, ok = s.number(2); !ok {
				return time.Time{}, false
			}
		}
		return calendarDate(year, month, day)
	case !extended && run == 4:
		month, _ := s.number(2)
		day, _ := s.number(2)
		return calendarDate(year, month, day)
	default:
		// YYYYMM is not a valid basic form.
		return time.Time{}, false
	}
}

func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t, t.Month() == time.Month(month) && t.Day() == day
}

func (s *isoScanner) weekDate(year int, extended bool) (time.Time, bool) {
	week, ok := s.number(2)
	if !ok || week < 1 || week > 53 {
		return time.Time{}, false
	}
	weekday := 1
	if !s.done() && s.peek() != 'T' && s.peek() != ' ' {
		if extended && !s.accept('-') {
			return time.Time{}, false
		}
		if weekday, ok = s.number(1); !ok || weekday < 1 || weekday > 7 {
			return time.Time{}, false
		}
	}
	// Week 1 is the week holding January 4th; weeks start on Monday.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	return monday.AddDate(0, 0, (week-1)*7+weekday-1), true
}

// clock parses the time of day and zone following a date.
func (s *isoScanner) clock(date time.Time) (time.Time, bool) {
	hour, ok := s.number(2)
	if !ok || hour > 24 {
		return time.Time{}, false
	}
	var minute, second, nanos int
	colon := false
	if s.peek() == ':' || s.digitRun() >= 2 {
		colon = s.accept(':')
		if minute, ok = s.number(2); !ok || minute > 59 {
			return time.Time{}, false
		}
		if (colon && s.peek() == ':') || (!colon && s.digitRun() >= 2) {
			if colon {
				s.pos++
			}
			if second, ok = s.number(2); !ok || second > 59 {
				return time.Time{}, false
			}
		}
	}
	if c := s.peek(); c == '.' || c == ',' {
		s.pos++
		run := s.digitRun()
		if run == 0 {
			return time.Time{}, false
		}
		frac := s.src[s.pos : s.pos+run]
		s.pos += run
		for i := 0; i < 9; i++ {
			nanos *= 10
			if i < len(frac) {
				nanos += int(frac[i] - '0')
			}
		}
	}
	if hour == 24 && (minute != 0 || second != 0 || nanos != 0) {
		return time.Time{}, false
	}

	loc, ok := s.zone()
	if !ok {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, second, nanos, loc), true
}

func (s *isoScanner) zone() (*time.Location, bool) {
	switch c := s.peek(); c {
	case 0:
		return time.UTC, true
	case 'Z', 'z':
		s.pos++
		return time.UTC, true
	case '+', '-':
		s.pos++
		hours, ok := s.number(2)
		if !ok || hours > 23 {
			return nil, false
		}
		minutes := 0
		if !s.done() {
			s.accept(':')
			if minutes, ok = s.number(2); !ok || minutes > 59 {
				return nil, false
			}
		}
		offset := hours*3600 + minutes*60
		if c == '-' {
			offset = -offset
		}
		return time.FixedZone("", offset), true
	default:
		return nil, false
	}
}
