// Package calendar derives renderable day and month views from the rotation
// and the projected leave schedule. Nothing here is persisted.
package calendar

import (
	"time"

	"github.com/watchfour/shiftlog/internal/leave"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

// Day is one derived calendar cell. OnLeave lists the subgroups whose leave
// proper covers the date, in letter-then-number order.
type Day struct {
	Date    time.Time
	Platoon rotation.Platoon
	PayDay  bool
	OnLeave []string
}

// Month is a Monday-first grid of weeks. Cells outside the month are zero
// Days so renderers can leave them blank.
type Month struct {
	Year  int
	Month time.Month
	Weeks [][]Day
}

// DayOf derives a single calendar day, projecting leave from the date itself.
func DayOf(date time.Time, withLeave bool) Day {
	d := utils.Normalize(date)
	day := Day{Date: d, Platoon: rotation.On(d), PayDay: rotation.IsPayDay(d)}
	if withLeave {
		day.OnLeave = onLeave(d, projected(d))
	}
	return day
}

// MonthOf builds the grid for a month. Leave is projected from the earlier of
// ref and the month's first day, so rendering a past month still shows the
// periods that covered it.
func MonthOf(year int, m time.Month, ref time.Time, withLeave bool) Month {
	first := time.Date(year, m, 1, 0, 0, 0, 0, utils.RosterLocation())
	base := utils.Normalize(ref)
	if first.Before(base) {
		base = first
	}
	var periods []leave.Period
	if withLeave {
		periods = projected(base)
	}

	month := Month{Year: year, Month: m}
	week := make([]Day, int(first.Weekday()+6)%7)
	for d := first; d.Month() == m; d = utils.AddDays(d, 1) {
		day := Day{Date: d, Platoon: rotation.On(d), PayDay: rotation.IsPayDay(d)}
		if withLeave {
			day.OnLeave = onLeave(d, periods)
		}
		week = append(week, day)
		if len(week) == 7 {
			month.Weeks = append(month.Weeks, week)
			week = nil
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, Day{})
		}
		month.Weeks = append(month.Weeks, week)
	}
	return month
}

// YearOf builds all twelve months of a year with the leave overlay on.
func YearOf(year int, ref time.Time) []Month {
	months := make([]Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, MonthOf(year, m, ref, true))
	}
	return months
}

// projected flattens every subgroup's schedule into one slice, letters in
// rotation order so coverage lists come out deterministic.
func projected(ref time.Time) []leave.Period {
	var out []leave.Period
	for _, letter := range rotation.Letters() {
		sched := leave.Schedule(letter, ref)
		for _, id := range leave.GroupIDs(letter) {
			out = append(out, sched[id]...)
		}
	}
	return out
}

func onLeave(d time.Time, periods []leave.Period) []string {
	var ids []string
	for _, p := range periods {
		if p.Covers(d) {
			ids = append(ids, p.LeaveGroup)
		}
	}
	return ids
}
