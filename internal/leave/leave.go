// Package leave projects recurring annual-leave periods for platoon
// subgroups. Each of the 32 subgroups (8 per platoon) carries two interleaved
// leave cadences, Set-3 and Set-4, each repeating from a fixed historical
// anchor date at the platoon pair's cycle interval. Schedules are derived
// fresh on every call and never persisted.
package leave

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

// SetType distinguishes the two leave cadences of a subgroup.
type SetType string

const (
	Set3 SetType = "3"
	Set4 SetType = "4"
)

const (
	// SubgroupsPerPlatoon is the number of leave subgroups under each letter.
	SubgroupsPerPlatoon = 8

	// MaxUpcoming bounds how many periods a schedule reports per subgroup.
	MaxUpcoming = 4

	// candidatesPerSet is how many cycle occurrences each cadence emits
	// before filtering.
	candidatesPerSet = 5

	// lookbackCycles is the safety margin: enumeration starts this many
	// cycles before the one the reference date falls in, so a period that
	// spans the cycle boundary is still seen. A heuristic, not a proof; it
	// holds as long as duration plus notice stays under two intervals.
	lookbackCycles = 2
)

// SubgroupConfig anchors one subgroup's two leave cadences. Immutable
// reference data.
type SubgroupConfig struct {
	ID               string
	FirstCycleStart  time.Time
	SecondCycleStart time.Time
}

// CycleConfig holds the interval and the per-set duration and advance-notice
// constants for a platoon pair.
type CycleConfig struct {
	CycleIntervalDays     int
	Set3DurationDays      int
	Set3AdvanceNoticeDays int
	Set4DurationDays      int
	Set4AdvanceNoticeDays int
}

// Period is one projected leave occurrence for a subgroup.
//
// StartsOn = LeaveDate minus the set's advance notice; ReturnDate = LeaveDate
// plus the set's duration. The period counts as ongoing for any reference
// date in [StartsOn, ReturnDate).
type Period struct {
	LeaveGroup string
	LeaveDate  time.Time
	StartsOn   time.Time
	SetType    SetType
	ReturnDate time.Time
}

// Ongoing reports whether ref falls within [StartsOn, ReturnDate).
func (p Period) Ongoing(ref time.Time) bool {
	day := utils.Normalize(ref)
	return !day.Before(p.StartsOn) && day.Before(p.ReturnDate)
}

// Covers reports whether the leave proper, [LeaveDate, ReturnDate), includes
// the given date. The notice window does not count.
func (p Period) Covers(t time.Time) bool {
	day := utils.Normalize(t)
	return !day.Before(p.LeaveDate) && day.Before(p.ReturnDate)
}

// ConfigFor returns the cycle constants for a platoon letter.
func ConfigFor(letter rotation.Platoon) CycleConfig {
	switch letter {
	case rotation.PlatoonA, rotation.PlatoonC:
		return cycleAC
	default:
		return cycleBD
	}
}

// Subgroups returns the anchor configs for a platoon letter, in subgroup order.
func Subgroups(letter rotation.Platoon) []SubgroupConfig {
	out := make([]SubgroupConfig, 0, SubgroupsPerPlatoon)
	for _, sg := range subgroupConfigs {
		if strings.HasPrefix(sg.ID, string(letter)) {
			out = append(out, sg)
		}
	}
	return out
}

// GroupIDs returns the subgroup IDs for a platoon letter (e.g. A1..A8).
func GroupIDs(letter rotation.Platoon) []string {
	ids := make([]string, 0, SubgroupsPerPlatoon)
	for _, sg := range Subgroups(letter) {
		ids = append(ids, sg.ID)
	}
	return ids
}

// ParseGroupID splits a subgroup ID like "A3" into its platoon letter and
// subgroup number.
func ParseGroupID(id string) (rotation.Platoon, int, error) {
	s := strings.ToUpper(strings.TrimSpace(id))
	if len(s) < 2 {
		return "", 0, fmt.Errorf("invalid leave group %q: expected letter and number, e.g. A3", id)
	}
	letter, err := rotation.Parse(s[:1])
	if err != nil {
		return "", 0, fmt.Errorf("invalid leave group %q: %w", id, err)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 || n > SubgroupsPerPlatoon {
		return "", 0, fmt.Errorf("invalid leave group %q: subgroup must be 1-%d", id, SubgroupsPerPlatoon)
	}
	return letter, n, nil
}

// Schedule projects the upcoming leave periods for every subgroup of a
// platoon, relative to the given reference date. Each subgroup maps to at
// most MaxUpcoming periods, sorted ascending by leave date; only periods
// whose return date is on or after the reference date are kept. Deterministic
// for a given (letter, ref) pair.
func Schedule(letter rotation.Platoon, ref time.Time) map[string][]Period {
	cfg := ConfigFor(letter)
	refDay := utils.Normalize(ref)

	out := make(map[string][]Period, SubgroupsPerPlatoon)
	for _, sg := range Subgroups(letter) {
		periods := projectSet(sg.ID, sg.FirstCycleStart, Set3, cfg, refDay)
		periods = append(periods, projectSet(sg.ID, sg.SecondCycleStart, Set4, cfg, refDay)...)

		sort.Slice(periods, func(i, j int) bool {
			return periods[i].LeaveDate.Before(periods[j].LeaveDate)
		})
		if len(periods) > MaxUpcoming {
			periods = periods[:MaxUpcoming]
		}
		out[sg.ID] = periods
	}
	return out
}

// NearestUpcoming returns the platoon's next period whose leave date is
// strictly after the reference date, scanning all eight subgroups. Returns
// nil when nothing is upcoming inside the projection horizon.
func NearestUpcoming(letter rotation.Platoon, ref time.Time) *Period {
	refDay := utils.Normalize(ref)
	var nearest *Period
	for _, periods := range Schedule(letter, ref) {
		for i := range periods {
			p := periods[i]
			if !p.LeaveDate.After(refDay) {
				continue
			}
			if nearest == nil || p.LeaveDate.Before(nearest.LeaveDate) {
				nearest = &p
			}
		}
	}
	return nearest
}

// projectSet emits one cadence's candidate periods: starting lookbackCycles
// before the cycle the reference date falls in, candidatesPerSet occurrences
// spaced by the pair interval, filtered to those not fully in the past.
func projectSet(id string, anchor time.Time, set SetType, cfg CycleConfig, refDay time.Time) []Period {
	duration := cfg.Set3DurationDays
	notice := cfg.Set3AdvanceNoticeDays
	if set == Set4 {
		duration = cfg.Set4DurationDays
		notice = cfg.Set4AdvanceNoticeDays
	}

	elapsed := utils.DaysBetween(anchor, refDay)
	cycles := floorDiv(elapsed, cfg.CycleIntervalDays)

	periods := make([]Period, 0, candidatesPerSet)
	for i := 0; i < candidatesPerSet; i++ {
		leaveDate := utils.AddDays(anchor, (cycles-lookbackCycles+i)*cfg.CycleIntervalDays)
		p := Period{
			LeaveGroup: id,
			LeaveDate:  leaveDate,
			StartsOn:   utils.AddDays(leaveDate, -notice),
			SetType:    set,
			ReturnDate: utils.AddDays(leaveDate, duration),
		}
		if p.ReturnDate.Before(refDay) {
			continue
		}
		periods = append(periods, p)
	}
	return periods
}

// floorDiv divides rounding toward negative infinity, so cycle selection is
// correct for reference dates before the anchor.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
