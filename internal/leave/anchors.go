package leave

import (
	"time"

	"github.com/watchfour/shiftlog/internal/utils"
)

// Cycle constants negotiated per platoon pair. A and C share one agreement,
// B and D the other. Set-3 is the short block, Set-4 the long one; the notice
// window is how far before the leave date a period appears on the roster.
var (
	cycleAC = CycleConfig{
		CycleIntervalDays:     224,
		Set3DurationDays:      12,
		Set3AdvanceNoticeDays: 0,
		Set4DurationDays:      21,
		Set4AdvanceNoticeDays: 7,
	}

	cycleBD = CycleConfig{
		CycleIntervalDays:     232,
		Set3DurationDays:      14,
		Set3AdvanceNoticeDays: 4,
		Set4DurationDays:      23,
		Set4AdvanceNoticeDays: 10,
	}
)

func day(s string) time.Time {
	t, err := utils.ParseDate(s)
	if err != nil {
		panic("leave: bad anchor date " + s)
	}
	return t
}

// subgroupConfigs is the historical anchor table: the first Set-3 and first
// Set-4 leave date of each subgroup. Both cycles repeat from these dates at
// the pair's interval. The anchors are roster-aligned: every projected return
// date falls on a day the subgroup's platoon is rostered, and every leave
// date sits one or two days after the platoon's second shift of a cycle.
var subgroupConfigs = []SubgroupConfig{
	{ID: "A1", FirstCycleStart: day("2022-01-11"), SecondCycleStart: day("2022-05-18")},
	{ID: "A2", FirstCycleStart: day("2022-02-12"), SecondCycleStart: day("2022-06-19")},
	{ID: "A3", FirstCycleStart: day("2022-03-08"), SecondCycleStart: day("2022-07-13")},
	{ID: "A4", FirstCycleStart: day("2022-04-09"), SecondCycleStart: day("2022-08-14")},
	{ID: "A5", FirstCycleStart: day("2022-05-03"), SecondCycleStart: day("2022-09-07")},
	{ID: "A6", FirstCycleStart: day("2022-06-04"), SecondCycleStart: day("2022-10-09")},
	{ID: "A7", FirstCycleStart: day("2022-06-28"), SecondCycleStart: day("2022-11-02")},
	{ID: "A8", FirstCycleStart: day("2022-07-30"), SecondCycleStart: day("2022-12-04")},

	{ID: "B1", FirstCycleStart: day("2022-01-24"), SecondCycleStart: day("2022-05-31")},
	{ID: "B2", FirstCycleStart: day("2022-02-25"), SecondCycleStart: day("2022-07-02")},
	{ID: "B3", FirstCycleStart: day("2022-03-21"), SecondCycleStart: day("2022-07-26")},
	{ID: "B4", FirstCycleStart: day("2022-04-22"), SecondCycleStart: day("2022-08-27")},
	{ID: "B5", FirstCycleStart: day("2022-05-16"), SecondCycleStart: day("2022-09-20")},
	{ID: "B6", FirstCycleStart: day("2022-06-17"), SecondCycleStart: day("2022-10-22")},
	{ID: "B7", FirstCycleStart: day("2022-07-11"), SecondCycleStart: day("2022-11-15")},
	{ID: "B8", FirstCycleStart: day("2022-08-12"), SecondCycleStart: day("2022-12-17")},

	{ID: "C1", FirstCycleStart: day("2022-02-08"), SecondCycleStart: day("2022-06-15")},
	{ID: "C2", FirstCycleStart: day("2022-03-12"), SecondCycleStart: day("2022-07-17")},
	{ID: "C3", FirstCycleStart: day("2022-04-05"), SecondCycleStart: day("2022-08-10")},
	{ID: "C4", FirstCycleStart: day("2022-05-07"), SecondCycleStart: day("2022-09-11")},
	{ID: "C5", FirstCycleStart: day("2022-05-31"), SecondCycleStart: day("2022-10-05")},
	{ID: "C6", FirstCycleStart: day("2022-07-02"), SecondCycleStart: day("2022-11-06")},
	{ID: "C7", FirstCycleStart: day("2022-07-26"), SecondCycleStart: day("2022-11-30")},
	{ID: "C8", FirstCycleStart: day("2022-08-27"), SecondCycleStart: day("2023-01-01")},

	{ID: "D1", FirstCycleStart: day("2022-02-21"), SecondCycleStart: day("2022-06-28")},
	{ID: "D2", FirstCycleStart: day("2022-03-25"), SecondCycleStart: day("2022-07-30")},
	{ID: "D3", FirstCycleStart: day("2022-04-18"), SecondCycleStart: day("2022-08-23")},
	{ID: "D4", FirstCycleStart: day("2022-05-20"), SecondCycleStart: day("2022-09-24")},
	{ID: "D5", FirstCycleStart: day("2022-06-13"), SecondCycleStart: day("2022-10-18")},
	{ID: "D6", FirstCycleStart: day("2022-07-15"), SecondCycleStart: day("2022-11-19")},
	{ID: "D7", FirstCycleStart: day("2022-08-08"), SecondCycleStart: day("2022-12-13")},
	{ID: "D8", FirstCycleStart: day("2022-09-09"), SecondCycleStart: day("2023-01-14")},
}
