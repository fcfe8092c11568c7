package calendar

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestBusinessDaysExcludesWeekends(t *testing.T) {
	days := BusinessDays(2024, 3, nil, nil)
	for _, d := range days {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			t.Errorf("weekend day %v included", d)
		}
		if IsPublicHoliday(d) {
			t.Errorf("public holiday %v included", d)
		}
	}
	if len(days) > 31 {
		t.Fatalf("more business days than days in month: %d", len(days))
	}
	// 2024年3月：平日21日、うち3/20（春分の日）が祝日
	if len(days) != 20 {
		t.Errorf("expected 20 business days in 2024-03, got %d", len(days))
	}
}

func TestBusinessDaysExclude(t *testing.T) {
	base := BusinessDays(2024, 6, nil, nil)
	excluded := BusinessDays(2024, 6, []string{"2024/06/03"}, nil)
	if len(excluded) != len(base)-1 {
		t.Fatalf("expected one day excluded: base=%d excluded=%d", len(base), len(excluded))
	}
	for _, d := range excluded {
		if d.Equal(date(2024, 6, 3)) {
			t.Fatal("excluded date still present")
		}
	}
}

func TestBusinessDaysExtraHolidays(t *testing.T) {
	base := BusinessDays(2024, 6, nil, nil)
	extra := BusinessDays(2024, 6, nil, []time.Time{date(2024, 6, 4), date(2024, 6, 5)})
	if len(extra) != len(base)-2 {
		t.Fatalf("expected two days excluded: base=%d extra=%d", len(base), len(extra))
	}
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	cases := []struct {
		in   time.Time
		n    int
		want time.Time
	}{
		{date(2021, 1, 31), 1, date(2021, 2, 28)},
		{date(2020, 1, 31), 1, date(2020, 2, 29)}, // うるう年
		{date(2024, 3, 15), 2, date(2024, 5, 15)},
		{date(2024, 10, 31), -1, date(2024, 9, 30)},
		{date(2024, 12, 1), 1, date(2025, 1, 1)},
	}
	for _, c := range cases {
		if got := AddMonths(c.in, c.n); !got.Equal(c.want) {
			t.Errorf("AddMonths(%v, %d) = %v, want %v", c.in, c.n, got, c.want)
		}
	}
}

func TestFirstDayFromYM(t *testing.T) {
	got := FirstDayFromYM("202403")
	if got == nil || !got.Equal(date(2024, 3, 1)) {
		t.Fatalf("FirstDayFromYM(202403) = %v", got)
	}
	for _, bad := range []string{"", "2024", "20241", "2024ab", "202413"} {
		if d := FirstDayFromYM(bad); d != nil {
			t.Errorf("FirstDayFromYM(%q) = %v, want nil", bad, d)
		}
	}
}

func TestLastDayOfMonth(t *testing.T) {
	if got := LastDayOfMonth(date(2024, 2, 10)); !got.Equal(date(2024, 2, 29)) {
		t.Fatalf("LastDayOfMonth 2024-02 = %v", got)
	}
	if got := LastDayOfMonth(date(2023, 12, 1)); !got.Equal(date(2023, 12, 31)) {
		t.Fatalf("LastDayOfMonth 2023-12 = %v", got)
	}
}

func TestMonthsBetween(t *testing.T) {
	if got := MonthsBetween(2024, 3, 2024, 3); got != 1 {
		t.Errorf("same month = %d, want 1", got)
	}
	if got := MonthsBetween(2024, 3, 2024, 5); got != 3 {
		t.Errorf("2024/03-2024/05 = %d, want 3", got)
	}
	if got := MonthsBetween(2023, 11, 2024, 2); got != 4 {
		t.Errorf("2023/11-2024/02 = %d, want 4", got)
	}
}

func TestPublicHolidays(t *testing.T) {
	holidays := []time.Time{
		date(2024, 1, 1),  // 元日
		date(2024, 1, 8),  // 成人の日（第2月曜）
		date(2024, 2, 23), // 天皇誕生日
		date(2024, 3, 20), // 春分の日
		date(2024, 5, 3),
		date(2024, 5, 6), // 5/5こどもの日の振替
		date(2024, 9, 16),
		date(2024, 9, 22), // 秋分の日
	}
	for _, d := range holidays {
		if !IsPublicHoliday(d) {
			t.Errorf("%v should be a public holiday", d)
		}
	}
	workdays := []time.Time{
		date(2024, 3, 21),
		date(2024, 6, 3),
		date(2024, 1, 15), // 第3月曜（成人の日ではない）
	}
	for _, d := range workdays {
		if IsPublicHoliday(d) {
			t.Errorf("%v should not be a public holiday", d)
		}
	}
}
