package domain

import "time"

// DateRange is a half-open interval [CheckIn, CheckOut)
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// IsValid returns true if CheckIn is strictly before CheckOut
func (r DateRange) IsValid() bool {
	return r.CheckIn.Before(r.CheckOut)
}

// Overlaps reports whether two half-open intervals intersect.
// Adjacent stays (one ends the day the other starts) do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// DateFormat is the calendar date layout used in requests and logs
const DateFormat = "2006-01-02"
