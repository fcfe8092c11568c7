package strutil

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Comma 金額を3桁区切りでフォーマットする（例：320000 → "320,000"）
func Comma(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return sign + strings.Join(parts, ",")
}

// Hours 時間数を表示用に整形する。整数なら小数部を出さない（160 → "160"、7.75 → "7.75"）
func Hours(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.Truncate(0).String()
	}
	return d.String()
}
