// Package rotation derives which platoon is rostered on a calendar date and
// whether the date is a pay day. The duty roster is a fixed 8-day cycle shared
// by four platoons, anchored to a known epoch date; pay days recur every 14
// days from their own epoch. Everything here is a pure function of the date in
// the roster timezone.
package rotation

import (
	"fmt"
	"strings"
	"time"

	"github.com/watchfour/shiftlog/internal/utils"
)

// Platoon is one of the four rotating shift crews.
type Platoon string

const (
	PlatoonA Platoon = "A"
	PlatoonB Platoon = "B"
	PlatoonC Platoon = "C"
	PlatoonD Platoon = "D"
)

const (
	// CycleDays is the length of the duty rotation.
	CycleDays = 8

	// PayPeriodDays is the length of the pay cycle.
	PayPeriodDays = 14
)

// sequence maps a cycle index (days since the rotation epoch, mod 8) to the
// rostered platoon. Each platoon works two days per cycle with a single day
// off between them: A on indices 0 and 2, D on 1 and 3, C on 4 and 6, B on 5
// and 7.
var sequence = [CycleDays]Platoon{
	PlatoonA, PlatoonD, PlatoonA, PlatoonD,
	PlatoonC, PlatoonB, PlatoonC, PlatoonB,
}

var (
	rotationEpoch = mustDate(2024, time.January, 5)
	payEpoch      = mustDate(2024, time.January, 11)
)

func mustDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, utils.RosterLocation())
}

// Letters returns the four platoon letters in display order.
func Letters() []Platoon {
	return []Platoon{PlatoonA, PlatoonB, PlatoonC, PlatoonD}
}

// Parse converts a user-supplied platoon letter into a Platoon.
func Parse(s string) (Platoon, error) {
	switch p := Platoon(strings.ToUpper(strings.TrimSpace(s))); p {
	case PlatoonA, PlatoonB, PlatoonC, PlatoonD:
		return p, nil
	default:
		return "", fmt.Errorf("invalid platoon %q: must be one of A, B, C, D", s)
	}
}

// CycleIndex returns the position of a date within the 8-day rotation,
// always in [0, 7] regardless of whether the date precedes the epoch.
func CycleIndex(t time.Time) int {
	d := utils.DaysBetween(rotationEpoch, t)
	return ((d % CycleDays) + CycleDays) % CycleDays
}

// On returns the platoon rostered on the given date. Total for any date,
// past or future.
func On(t time.Time) Platoon {
	return sequence[CycleIndex(t)]
}

// OnDay returns the platoon rostered on a YYYY-MM-DD date string.
func OnDay(day string) (Platoon, error) {
	t, err := utils.ParseDate(day)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", day, err)
	}
	return On(t), nil
}

// IsPayDay reports whether the given date is a pay day. Signed-correct for
// dates before the pay epoch.
func IsPayDay(t time.Time) bool {
	d := utils.DaysBetween(payEpoch, t)
	return ((d%PayPeriodDays)+PayPeriodDays)%PayPeriodDays == 0
}

// WorkIndices returns the two cycle indices on which a platoon is rostered,
// in ascending order.
func WorkIndices(p Platoon) [2]int {
	var out [2]int
	n := 0
	for i, letter := range sequence {
		if letter == p {
			out[n] = i
			n++
		}
	}
	return out
}

// NextShifts returns the next n dates on or after from where the platoon is
// rostered.
func NextShifts(p Platoon, from time.Time, n int) []time.Time {
	shifts := make([]time.Time, 0, n)
	day := utils.Normalize(from)
	for len(shifts) < n {
		if On(day) == p {
			shifts = append(shifts, day)
		}
		day = utils.AddDays(day, 1)
	}
	return shifts
}
