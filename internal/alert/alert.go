// Package alert decides whether a day is a return-to-work or last-shifts day
// for a platoon, based on the projected leave schedule and the rotation.
package alert

import (
	"fmt"
	"time"

	"github.com/watchfour/shiftlog/internal/leave"
	"github.com/watchfour/shiftlog/internal/logger"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

type Type string

const (
	TypeReturnToWork Type = "return-to-work"
	TypeLastShifts   Type = "last-shifts"
)

// lastShiftLookbackDays bounds the walk from a leave date back to the two
// preceding work days. Work days come at most 6 days apart on the 8-day
// cycle, so 10 days always reaches a full pair.
const lastShiftLookbackDays = 10

// Info describes a single alert for one day. RelevantDate is the return
// date for a return-to-work alert and the leave date for a last-shifts one.
type Info struct {
	Type         Type
	Message      string
	LeaveGroup   string
	RelevantDate time.Time
	Platoon      rotation.Platoon
}

// Calculator computes at most one alert per day and platoon, memoizing
// results, misses included, in the injected cache until its window rolls
// over. A nil cache gets replaced by a fresh one so the zero-config path
// still memoizes.
type Calculator struct {
	cache *Cache

	// scanned, when set, is called once per uncached computation.
	scanned func()
}

func NewCalculator(cache *Cache) *Calculator {
	if cache == nil {
		cache = NewCache()
	}
	return &Calculator{cache: cache}
}

// ForDate returns the alert for the platoon on the given day, or nil when
// nothing is due. It never returns an error: a period that cannot be
// evaluated contributes no alert.
func (c *Calculator) ForDate(ref time.Time, platoon rotation.Platoon) *Info {
	day := utils.Normalize(ref)
	c.cache.ClearIfStale(time.Now())
	if info, ok := c.cache.Get(day, platoon); ok {
		return info
	}
	if c.scanned != nil {
		c.scanned()
	}
	info := c.compute(day, platoon)
	c.cache.Put(day, platoon, info)
	return info
}

// ForDay is the string-typed entry point used by the CLI and TUI. An
// unparseable day falls back to today and a bad platoon to the one rostered
// on the day, each with a logged warning, so a render never fails outright.
func (c *Calculator) ForDay(day string, platoon string) *Info {
	ref, err := utils.ParseDate(day)
	if err != nil {
		logger.Warn("invalid alert date, using today", "date", day, "error", err)
		ref = utils.NowInRosterZone()
	}
	p, err := rotation.Parse(platoon)
	if err != nil {
		logger.Warn("invalid platoon for alert, using the rostered one", "platoon", platoon, "error", err)
		p = rotation.On(ref)
	}
	return c.ForDate(ref, p)
}

func (c *Calculator) compute(day time.Time, platoon rotation.Platoon) *Info {
	if info := returnToWork(day); info != nil {
		return info
	}
	return lastShifts(day, platoon)
}

// returnToWork scans every ongoing leave period across all subgroups and
// fires on the day before the return date, provided the returning subgroup's
// platoon is the one rostered on the return date. First match wins.
func returnToWork(day time.Time) *Info {
	for _, letter := range rotation.Letters() {
		sched := leave.Schedule(letter, day)
		for _, id := range leave.GroupIDs(letter) {
			for _, p := range sched[id] {
				if !p.Ongoing(day) {
					continue
				}
				untilReturn := utils.DaysBetween(day, p.ReturnDate)
				if untilReturn != 0 && untilReturn != 1 {
					continue
				}
				if rotation.On(p.ReturnDate) != letter {
					continue
				}
				msg := fmt.Sprintf("Group %s returns to work tomorrow", p.LeaveGroup)
				if untilReturn == 0 {
					// Unreachable while Ongoing excludes the return date
					// itself.
					msg = fmt.Sprintf("Group %s returns to work today", p.LeaveGroup)
				}
				return &Info{
					Type:         TypeReturnToWork,
					Message:      msg,
					LeaveGroup:   p.LeaveGroup,
					RelevantDate: p.ReturnDate,
					Platoon:      letter,
				}
			}
		}
	}
	return nil
}

// lastShifts fires during the final stretch before each platoon's nearest
// upcoming leave: the last two work days and the day off between them. The
// two shift days test the current platoon context; the middle day tests the
// platoon rostered on that date, which for a day off never matches.
func lastShifts(day time.Time, current rotation.Platoon) *Info {
	for _, letter := range rotation.Letters() {
		p := leave.NearestUpcoming(letter, day)
		if p == nil {
			continue
		}
		earlier, later, ok := lastTwoShifts(letter, p.LeaveDate)
		if !ok {
			logger.Warn("no work days found before leave", "group", p.LeaveGroup, "leaveDate", utils.FormatDate(p.LeaveDate))
			continue
		}
		middle := utils.AddDays(earlier, 1)
		for _, trigger := range []time.Time{earlier, middle, later} {
			if !day.Equal(trigger) {
				continue
			}
			if trigger.Equal(middle) {
				if rotation.On(trigger) != letter {
					continue
				}
			} else if current != letter {
				continue
			}
			return &Info{
				Type:         TypeLastShifts,
				Message:      fmt.Sprintf("Last shifts before %s leave", p.LeaveGroup),
				LeaveGroup:   p.LeaveGroup,
				RelevantDate: p.LeaveDate,
				Platoon:      letter,
			}
		}
	}
	return nil
}

// lastTwoShifts walks back from the day before leaveDate looking for the two
// most recent days the letter is rostered, earliest first.
func lastTwoShifts(letter rotation.Platoon, leaveDate time.Time) (earlier, later time.Time, ok bool) {
	var found []time.Time
	for back := 1; back <= lastShiftLookbackDays && len(found) < 2; back++ {
		d := utils.AddDays(leaveDate, -back)
		if rotation.On(d) == letter {
			found = append(found, d)
		}
	}
	if len(found) != 2 {
		return time.Time{}, time.Time{}, false
	}
	return found[1], found[0], true
}
