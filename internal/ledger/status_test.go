package ledger

import (
	"testing"
	"time"

	"github.com/julianstephens/murojaah/internal/models"
)

const testSignup = "2024-01-10 08:00:00"

func at(day string, hour int) time.Time {
	d, err := ParseDayKey(day)
	if err != nil {
		panic(err)
	}
	return d.Add(time.Duration(hour) * time.Hour)
}

func done(days ...string) Records {
	r := Records{}
	for _, d := range days {
		r[d] = models.DayRecord{Day: d, Completed: true}
	}
	return r
}

func TestClassify(t *testing.T) {
	now := at("2024-01-15", 10)

	tests := []struct {
		name    string
		target  time.Time
		signup  string
		records Records
		want    models.DayStatus
	}{
		{
			name:    "missing signup means not loaded",
			target:  at("2024-01-12", 9),
			signup:  "",
			records: done("2024-01-12"),
			want:    models.StatusBeforeSignup,
		},
		{
			name:    "malformed signup means not loaded",
			target:  at("2024-01-20", 9),
			signup:  "not a timestamp",
			want:    models.StatusBeforeSignup,
		},
		{
			name:    "tomorrow is future even with a record",
			target:  at("2024-01-16", 0),
			signup:  testSignup,
			records: done("2024-01-16"),
			want:    models.StatusFuture,
		},
		{
			name:    "before signup ignores records",
			target:  at("2024-01-05", 12),
			signup:  testSignup,
			records: done("2024-01-05"),
			want:    models.StatusBeforeSignup,
		},
		{
			name:   "signup day counts even before signup hour",
			target: at("2024-01-10", 1),
			signup: testSignup,
			want:   models.StatusMissed,
		},
		{
			name:    "late signup still covers the whole day",
			target:  at("2024-01-10", 0),
			signup:  "2024-01-10 23:59:00",
			records: done("2024-01-10"),
			want:    models.StatusCompleted,
		},
		{
			name:    "completed record",
			target:  at("2024-01-13", 20),
			signup:  testSignup,
			records: done("2024-01-13"),
			want:    models.StatusCompleted,
		},
		{
			name:   "record present but not completed",
			target: at("2024-01-14", 20),
			signup: testSignup,
			records: Records{
				"2024-01-14": {Day: "2024-01-14", Completed: false, Note: "only read half"},
			},
			want: models.StatusMissed,
		},
		{
			name:   "today without record is missed",
			target: at("2024-01-15", 23),
			signup: testSignup,
			want:   models.StatusMissed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.target, tt.signup, now, tt.records)
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyIgnoresOtherDays(t *testing.T) {
	now := at("2024-01-15", 10)
	target := at("2024-01-13", 10)

	alone := Classify(target, testSignup, now, Records{})
	crowded := Classify(target, testSignup, now, done("2024-01-11", "2024-01-12", "2024-01-14", "2024-01-15"))
	if alone != crowded {
		t.Errorf("status depends on unrelated records: %q vs %q", alone, crowded)
	}
}

func TestClassifyAlwaysOneOfFourStatuses(t *testing.T) {
	valid := map[models.DayStatus]bool{
		models.StatusCompleted:    true,
		models.StatusMissed:       true,
		models.StatusBeforeSignup: true,
		models.StatusFuture:       true,
	}
	now := at("2024-01-15", 10)
	records := done("2024-01-11", "2024-01-13", "2024-01-20")

	day := at("2023-12-01", 6)
	for i := 0; i < 90; i++ {
		for _, signup := range []string{"", testSignup} {
			if got := Classify(day, signup, now, records); !valid[got] {
				t.Fatalf("Classify(%s) returned unknown status %q", DayKey(day), got)
			}
		}
		day = day.AddDate(0, 0, 1)
	}
}

func TestClassifyMonotonicInTime(t *testing.T) {
	target := at("2024-01-20", 9)
	records := done("2024-01-20")

	passed := false
	now := at("2024-01-12", 0)
	for i := 0; i < 20*24; i++ {
		status := Classify(target, testSignup, now, records)
		if status == models.StatusCompleted || status == models.StatusMissed {
			passed = true
		}
		if passed && status == models.StatusFuture {
			t.Fatalf("status reverted to future at %v", now)
		}
		now = now.Add(time.Hour)
	}
	if !passed {
		t.Error("target never left the future")
	}
}

func TestMonthStatuses(t *testing.T) {
	now := at("2024-01-15", 10)
	statuses := MonthStatuses(at("2024-01-01", 0), testSignup, now, done("2024-01-12", "2024-01-13"))

	if len(statuses) != 31 {
		t.Fatalf("len(statuses) = %d, want 31", len(statuses))
	}
	want := map[string]models.DayStatus{
		"2024-01-01": models.StatusBeforeSignup,
		"2024-01-09": models.StatusBeforeSignup,
		"2024-01-10": models.StatusMissed,
		"2024-01-12": models.StatusCompleted,
		"2024-01-13": models.StatusCompleted,
		"2024-01-15": models.StatusMissed,
		"2024-01-16": models.StatusFuture,
		"2024-01-31": models.StatusFuture,
	}
	for day, status := range want {
		if statuses[day] != status {
			t.Errorf("statuses[%s] = %q, want %q", day, statuses[day], status)
		}
	}
}

func TestMonthStatusesWithoutSignup(t *testing.T) {
	statuses := MonthStatuses(at("2024-02-10", 0), "", at("2024-02-15", 0), done("2024-02-01"))
	if len(statuses) != 29 {
		t.Fatalf("len(statuses) = %d, want 29", len(statuses))
	}
	for day, status := range statuses {
		if status != models.StatusBeforeSignup {
			t.Errorf("statuses[%s] = %q, want before-signup", day, status)
		}
	}
}

func TestStreak(t *testing.T) {
	now := at("2024-01-15", 10)

	tests := []struct {
		name    string
		records Records
		signup  string
		want    int
	}{
		{
			name: "today not recorded breaks the chain",
			records: Records{
				"2024-01-12": {Completed: true},
				"2024-01-13": {Completed: true},
				"2024-01-14": {Completed: false},
			},
			signup: testSignup,
			want:   0,
		},
		{
			name:    "three consecutive days ending today",
			records: done("2024-01-13", "2024-01-14", "2024-01-15"),
			signup:  testSignup,
			want:    3,
		},
		{
			name:    "gap stops the walk",
			records: done("2024-01-11", "2024-01-12", "2024-01-14", "2024-01-15"),
			signup:  testSignup,
			want:    2,
		},
		{
			name:    "stops at signup day",
			records: done("2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11", "2024-01-12", "2024-01-13", "2024-01-14", "2024-01-15"),
			signup:  testSignup,
			want:    6,
		},
		{
			name:    "no signup",
			records: done("2024-01-15"),
			signup:  "",
			want:    0,
		},
		{
			name:    "empty records",
			records: Records{},
			signup:  testSignup,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.records, tt.signup, now); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakCapsAtLookback(t *testing.T) {
	now := at("2024-06-30", 12)
	records := Records{}
	day := now
	for i := 0; i < 500; i++ {
		records[DayKey(day)] = models.DayRecord{Completed: true}
		day = day.AddDate(0, 0, -1)
	}

	if got := Streak(records, "2022-01-01 00:00:00", now); got != 365 {
		t.Errorf("Streak() = %d, want 365", got)
	}
}

func TestStreakResetsOnUncompletedToday(t *testing.T) {
	now := at("2024-01-15", 10)
	records := done("2024-01-13", "2024-01-14", "2024-01-15")
	if got := Streak(records, testSignup, now); got != 3 {
		t.Fatalf("Streak() = %d, want 3", got)
	}

	records["2024-01-15"] = models.DayRecord{Completed: false}
	if got := Streak(records, testSignup, now); got != 0 {
		t.Errorf("Streak() after unmarking today = %d, want 0", got)
	}
}

func TestWeeklyRate(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		signup  string
		records Records
		want    int
	}{
		{
			name: "two eligible days none completed",
			now:  at("2024-01-15", 10),
			records: Records{
				"2024-01-12": {Completed: true},
				"2024-01-13": {Completed: true},
				"2024-01-14": {Completed: false},
			},
			signup: testSignup,
			want:   0,
		},
		{
			name:    "one of two",
			now:     at("2024-01-15", 10),
			records: done("2024-01-15"),
			signup:  testSignup,
			want:    50,
		},
		{
			name:    "pre-signup days excluded from denominator",
			now:     at("2024-01-13", 10), // week of Jan 7, signup on the 10th
			records: done("2024-01-07", "2024-01-10", "2024-01-11"),
			signup:  testSignup,
			want:    50, // 2 of 4 eligible days (10, 11, 12, 13)
		},
		{
			name:    "rounds to nearest percent",
			now:     at("2024-01-16", 10), // Sun 14, Mon 15, Tue 16
			records: done("2024-01-14", "2024-01-15"),
			signup:  testSignup,
			want:    67,
		},
		{
			name:    "days after today are ignored",
			now:     at("2024-01-14", 10),
			records: done("2024-01-14", "2024-01-15", "2024-01-16"),
			signup:  testSignup,
			want:    100,
		},
		{
			name:    "signed up today with nothing done",
			now:     at("2024-01-10", 20),
			records: Records{},
			signup:  testSignup,
			want:    0,
		},
		{
			name:    "signup after today has no eligible days",
			now:     at("2024-01-15", 10),
			records: done("2024-01-15"),
			signup:  "2024-01-20 08:00:00",
			want:    0,
		},
		{
			name:    "no signup",
			now:     at("2024-01-15", 10),
			records: done("2024-01-15"),
			signup:  "",
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeeklyRate(tt.records, tt.signup, tt.now); got != tt.want {
				t.Errorf("WeeklyRate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeeklyRateWithinBounds(t *testing.T) {
	records := done("2024-01-10", "2024-01-12", "2024-01-13", "2024-01-16", "2024-01-17", "2024-01-21")
	now := at("2024-01-08", 12)
	for i := 0; i < 21; i++ {
		rate := WeeklyRate(records, testSignup, now)
		if rate < 0 || rate > 100 {
			t.Fatalf("WeeklyRate(%s) = %d, out of [0,100]", DayKey(now), rate)
		}
		now = now.AddDate(0, 0, 1)
	}
}

func TestWindows(t *testing.T) {
	now := at("2024-01-15", 10)

	start, end := WeekWindow(now)
	if start != "2024-01-14" || end != "2024-01-15" {
		t.Errorf("WeekWindow() = (%s, %s), want (2024-01-14, 2024-01-15)", start, end)
	}

	start, end = StreakWindow(now)
	if start != "2023-01-16" || end != "2024-01-15" {
		t.Errorf("StreakWindow() = (%s, %s), want (2023-01-16, 2024-01-15)", start, end)
	}
}
