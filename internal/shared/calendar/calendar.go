package calendar

import (
	"math"
	"sort"
	"time"
)

// BusinessDays 指定年月の営業日（平日∧祝日でない∧除外日でない）を昇順で返す。
// exclude は "YYYY/MM/DD" 形式の文字列、extra は休日テーブル等から渡す追加休日。
func BusinessDays(year, month int, exclude []string, extra []time.Time) []time.Time {
	excluded := make(map[string]bool, len(exclude)+len(extra))
	for _, s := range exclude {
		excluded[s] = true
	}
	for _, d := range extra {
		excluded[d.Format("2006/01/02")] = true
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := LastDayOfMonth(first)

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if IsPublicHoliday(d) {
			continue
		}
		if excluded[d.Format("2006/01/02")] {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// AddMonths 月を加算する。加算先の月に同じ日が存在しない場合は月末に丸める
// （例：1月31日 + 1ヶ月 → 2月28日/29日）。
func AddMonths(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, d.Location()).AddDate(0, n, 0)
	lastDay := daysInMonth(first.Year(), first.Month())
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, d.Location())
}

// FirstDayFromYM "YYYYMM" 形式の文字列から月初日を取得する。形式不正の場合は nil。
func FirstDayFromYM(ym string) *time.Time {
	if len(ym) != 6 {
		return nil
	}
	t, err := time.Parse("200601", ym)
	if err != nil {
		return nil
	}
	return &t
}

// LastDayOfMonth 指定日の属する月の月末日を返す。
func LastDayOfMonth(d time.Time) time.Time {
	return AddMonths(time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()), 1).AddDate(0, 0, -1)
}

// MonthsBetween 両端を含む月数（2024/03〜2024/05 → 3）。
func MonthsBetween(year1, month1, year2, month2 int) int {
	return (year2-year1)*12 + (month2 - month1) + 1
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// IsPublicHoliday 日本の祝日判定（固定日・ハッピーマンデー・春秋分・振替休日）。
func IsPublicHoliday(d time.Time) bool {
	if isHoliday(d) {
		return true
	}
	// 振替休日：祝日が日曜に当たる場合、直後の祝日でない日
	if d.Weekday() == time.Monday {
		prev := d.AddDate(0, 0, -1)
		for isHoliday(prev) {
			if prev.Weekday() == time.Sunday {
				return true
			}
			prev = prev.AddDate(0, 0, -1)
		}
	}
	return false
}

func isHoliday(d time.Time) bool {
	y, m, day := d.Year(), int(d.Month()), d.Day()
	switch {
	case m == 1 && day == 1: // 元日
		return true
	case m == 2 && day == 11: // 建国記念の日
		return true
	case m == 2 && day == 23 && y >= 2020: // 天皇誕生日
		return true
	case m == 4 && day == 29: // 昭和の日
		return true
	case m == 5 && (day == 3 || day == 4 || day == 5): // 憲法記念日・みどりの日・こどもの日
		return true
	case m == 8 && day == 11 && y >= 2016: // 山の日
		return true
	case m == 11 && (day == 3 || day == 23): // 文化の日・勤労感謝の日
		return true
	}
	// ハッピーマンデー
	switch {
	case m == 1 && isNthMonday(d, 2): // 成人の日
		return true
	case m == 7 && isNthMonday(d, 3): // 海の日
		return true
	case m == 9 && isNthMonday(d, 3): // 敬老の日
		return true
	case m == 10 && isNthMonday(d, 2): // スポーツの日
		return true
	}
	// 春分・秋分（簡易計算、1980〜2099年）
	if m == 3 && day == vernalEquinoxDay(y) {
		return true
	}
	if m == 9 && day == autumnalEquinoxDay(y) {
		return true
	}
	return false
}

func isNthMonday(d time.Time, n int) bool {
	return d.Weekday() == time.Monday && (d.Day()-1)/7+1 == n
}

func vernalEquinoxDay(year int) int {
	return int(math.Floor(20.8431 + 0.242194*float64(year-1980) - math.Floor(float64(year-1980)/4)))
}

func autumnalEquinoxDay(year int) int {
	return int(math.Floor(23.2488 + 0.242194*float64(year-1980) - math.Floor(float64(year-1980)/4)))
}
