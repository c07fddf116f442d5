package alert

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

func mustParse(t *testing.T, day string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(day)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", day, err)
	}
	return d
}

// A1 is on leave 2024-06-25 through 2024-07-06 and returns 2024-07-07; A5
// leaves 2024-07-10, so A's last shifts before it fall on 2024-07-07 and
// 2024-07-09. The tests below lean on those fixtures.

func TestForDateReturnToWork(t *testing.T) {
	calc := NewCalculator(NewCache())
	for _, platoon := range rotation.Letters() {
		info := calc.ForDate(mustParse(t, "2024-07-06"), platoon)
		if info == nil {
			t.Fatalf("ForDate(2024-07-06, %s) = nil, want return-to-work alert", platoon)
		}
		if info.Type != TypeReturnToWork {
			t.Fatalf("alert type = %s, want %s", info.Type, TypeReturnToWork)
		}
		if info.LeaveGroup != "A1" {
			t.Errorf("LeaveGroup = %s, want A1", info.LeaveGroup)
		}
		if got := utils.FormatDate(info.RelevantDate); got != "2024-07-07" {
			t.Errorf("RelevantDate = %s, want 2024-07-07", got)
		}
		if info.Platoon != rotation.PlatoonA {
			t.Errorf("Platoon = %s, want A", info.Platoon)
		}
		if info.Message != "Group A1 returns to work tomorrow" {
			t.Errorf("Message = %q", info.Message)
		}
	}
}

func TestForDateLastShifts(t *testing.T) {
	tests := []struct {
		name string
		day  string
	}{
		{name: "earlier shift day", day: "2024-07-07"},
		{name: "later shift day", day: "2024-07-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := mustParse(t, tt.day)
			if got := returnToWork(day); got != nil {
				t.Fatalf("unexpected return-to-work alert on %s: %+v", tt.day, got)
			}
			info := NewCalculator(NewCache()).ForDate(day, rotation.PlatoonA)
			if info == nil {
				t.Fatalf("ForDate(%s, A) = nil, want last-shifts alert", tt.day)
			}
			if info.Type != TypeLastShifts {
				t.Fatalf("alert type = %s, want %s", info.Type, TypeLastShifts)
			}
			if info.LeaveGroup != "A5" {
				t.Errorf("LeaveGroup = %s, want A5", info.LeaveGroup)
			}
			if got := utils.FormatDate(info.RelevantDate); got != "2024-07-10" {
				t.Errorf("RelevantDate = %s, want 2024-07-10", got)
			}
			if info.Message != "Last shifts before A5 leave" {
				t.Errorf("Message = %q", info.Message)
			}
		})
	}
}

func TestForDateOtherPlatoonSeesNoLastShifts(t *testing.T) {
	// 2024-07-09 is a last-shift day for A; a C context gets nothing from it.
	info := NewCalculator(NewCache()).ForDate(mustParse(t, "2024-07-09"), rotation.PlatoonC)
	if info != nil && info.Type == TypeLastShifts && info.Platoon == rotation.PlatoonA {
		t.Errorf("A's last-shift alert leaked into a C context: %+v", info)
	}
}

func TestMiddleDayOffNeverAlerts(t *testing.T) {
	// 2024-07-08 is the day off between A's last two shifts before the A5
	// leave. The middle-day trigger tests the platoon rostered on the date,
	// which is never the vacationing letter, so nothing fires.
	info := NewCalculator(NewCache()).ForDate(mustParse(t, "2024-07-08"), rotation.PlatoonA)
	if info != nil {
		t.Errorf("ForDate(2024-07-08, A) = %+v, want nil", info)
	}
}

func TestReturnAlertsOnlyFireDayBefore(t *testing.T) {
	if testing.Short() {
		t.Skip("multi-year sweep")
	}

	calc := NewCalculator(NewCache())
	day := mustParse(t, "2023-06-01")
	end := mustParse(t, "2025-06-01")
	sawReturn := false
	for day.Before(end) {
		for _, platoon := range rotation.Letters() {
			info := calc.ForDate(day, platoon)
			if info == nil || info.Type != TypeReturnToWork {
				continue
			}
			sawReturn = true
			if gap := utils.DaysBetween(day, info.RelevantDate); gap != 1 {
				t.Fatalf("%s: return alert %d days before the return date, want 1", utils.FormatDate(day), gap)
			}
			if !strings.Contains(info.Message, "tomorrow") {
				t.Fatalf("%s: return alert message %q", utils.FormatDate(day), info.Message)
			}
			if got := rotation.On(info.RelevantDate); got != info.Platoon {
				t.Fatalf("%s: return alert for %s but %s is rostered on the return date", utils.FormatDate(day), info.Platoon, got)
			}
		}
		day = utils.AddDays(day, 1)
	}
	if !sawReturn {
		t.Error("sweep produced no return-to-work alerts at all")
	}
}

func TestForDateBeforeEpoch(t *testing.T) {
	info := NewCalculator(NewCache()).ForDate(mustParse(t, "2024-01-04"), rotation.PlatoonD)
	if info == nil {
		return
	}
	if info.Type != TypeReturnToWork && info.Type != TypeLastShifts {
		t.Errorf("unknown alert type %q", info.Type)
	}
	if info.Message == "" || info.LeaveGroup == "" {
		t.Errorf("incomplete alert: %+v", info)
	}
}

func TestForDateMemoizes(t *testing.T) {
	calc := NewCalculator(NewCache())
	scans := 0
	calc.scanned = func() { scans++ }

	day := mustParse(t, "2024-07-06")
	first := calc.ForDate(day, rotation.PlatoonA)
	second := calc.ForDate(day, rotation.PlatoonA)
	if scans != 1 {
		t.Errorf("two identical lookups ran %d scans, want 1", scans)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}

	calc.ForDate(day, rotation.PlatoonB)
	if scans != 2 {
		t.Errorf("distinct platoon lookup ran %d scans total, want 2", scans)
	}
}

func TestForDateMemoizesMisses(t *testing.T) {
	calc := NewCalculator(NewCache())
	scans := 0
	calc.scanned = func() { scans++ }

	day := mustParse(t, "2024-07-08")
	if info := calc.ForDate(day, rotation.PlatoonA); info != nil {
		t.Fatalf("expected quiet day, got %+v", info)
	}
	calc.ForDate(day, rotation.PlatoonA)
	if scans != 1 {
		t.Errorf("quiet day recomputed: %d scans, want 1", scans)
	}
}

func TestStaleCacheRecomputes(t *testing.T) {
	cache := NewCache()
	calc := NewCalculator(cache)
	scans := 0
	calc.scanned = func() { scans++ }

	day := mustParse(t, "2024-07-06")
	calc.ForDate(day, rotation.PlatoonA)
	cache.lastClear = time.Now().Add(-clearInterval - time.Minute)
	calc.ForDate(day, rotation.PlatoonA)
	if scans != 2 {
		t.Errorf("stale cache served a hit: %d scans, want 2", scans)
	}
}

func TestCacheClearIfStale(t *testing.T) {
	cache := NewCache()
	day := mustParse(t, "2024-07-06")
	cache.Put(day, rotation.PlatoonA, &Info{Type: TypeReturnToWork})
	cache.Put(day, rotation.PlatoonB, nil)

	cache.ClearIfStale(cache.lastClear.Add(clearInterval - time.Second))
	if _, ok := cache.Get(day, rotation.PlatoonA); !ok {
		t.Error("fresh cache was cleared early")
	}
	if info, ok := cache.Get(day, rotation.PlatoonB); !ok || info != nil {
		t.Error("cached miss not retrievable")
	}

	cache.ClearIfStale(cache.lastClear.Add(clearInterval))
	if _, ok := cache.Get(day, rotation.PlatoonA); ok {
		t.Error("stale cache not cleared")
	}
}

func TestNewCalculatorNilCache(t *testing.T) {
	calc := NewCalculator(nil)
	if calc.cache == nil {
		t.Fatal("nil cache not replaced")
	}
	if info := calc.ForDate(mustParse(t, "2024-07-06"), rotation.PlatoonA); info == nil {
		t.Error("calculator with default cache returned nil for a known alert day")
	}
}

func TestForDayFallsBack(t *testing.T) {
	calc := NewCalculator(NewCache())

	// Bad platoon string falls back to the platoon rostered on the day.
	got := calc.ForDay("2024-07-06", "Z")
	want := calc.ForDate(mustParse(t, "2024-07-06"), rotation.On(mustParse(t, "2024-07-06")))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ForDay with bad platoon = %+v, want %+v", got, want)
	}

	// Bad date falls back to today rather than erroring.
	today := utils.Today()
	got = calc.ForDay("not-a-date", "A")
	want = calc.ForDate(mustParse(t, today), rotation.PlatoonA)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ForDay with bad date = %+v, want %+v", got, want)
	}
}

func TestLastTwoShifts(t *testing.T) {
	tests := []struct {
		name        string
		letter      rotation.Platoon
		leaveDate   string
		wantEarlier string
		wantLater   string
	}{
		{name: "pair just before leave", letter: rotation.PlatoonA, leaveDate: "2024-07-10", wantEarlier: "2024-07-07", wantLater: "2024-07-09"},
		{name: "pair in previous cycle", letter: rotation.PlatoonD, leaveDate: "2024-01-05", wantEarlier: "2023-12-29", wantLater: "2023-12-31"},
		{name: "pair split across cycles", letter: rotation.PlatoonA, leaveDate: "2024-01-07", wantEarlier: "2023-12-30", wantLater: "2024-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			earlier, later, ok := lastTwoShifts(tt.letter, mustParse(t, tt.leaveDate))
			if !ok {
				t.Fatalf("lastTwoShifts(%s, %s) found no pair", tt.letter, tt.leaveDate)
			}
			if got := utils.FormatDate(earlier); got != tt.wantEarlier {
				t.Errorf("earlier = %s, want %s", got, tt.wantEarlier)
			}
			if got := utils.FormatDate(later); got != tt.wantLater {
				t.Errorf("later = %s, want %s", got, tt.wantLater)
			}
		})
	}
}
