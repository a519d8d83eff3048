package booking

import "time"

// TimeSlot is a half-open interval [start, end) with start strictly before end.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrStartNotBeforeEnd
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps uses half-open semantics, so touching slots do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

// With returns the slot obtained by overriding the non-nil bounds.
func (ts TimeSlot) With(start, end *time.Time) (TimeSlot, error) {
	s, e := ts.start, ts.end
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}
	return NewTimeSlot(s, e)
}
