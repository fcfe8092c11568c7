package service

import (
	"strings"
	"testing"
	"time"

	"github.com/YangWanjun/ebusiness/internal/partner/entity"
)

func TestNextOrderNo(t *testing.T) {
	publishDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	prefix := orderNoPrefix(publishDate, "A")
	if prefix != "EB20240301A" {
		t.Fatalf("orderNoPrefix = %s, want EB20240301A", prefix)
	}

	cases := []struct {
		maxNo string
		want  string
	}{
		{"", "EB20240301A01"},
		{"EB20240301A01", "EB20240301A02"},
		{"EB20240301A02", "EB20240301A03"},
		{"EB20240301A09", "EB20240301A10"},
	}
	for _, c := range cases {
		if got := NextOrderNo(prefix, c.maxNo); got != c.want {
			t.Errorf("NextOrderNo(%s, %q) = %s, want %s", prefix, c.maxNo, got, c.want)
		}
	}

	// 営業担当者のイニシャル未設定は「-」
	if got := orderNoPrefix(publishDate, ""); got != "EB20240301-" {
		t.Errorf("orderNoPrefix without initial = %s, want EB20240301-", got)
	}
}

func TestPaymentDeadline(t *testing.T) {
	// 2024年3月開始 → 翌4月の第6営業日（4/6・4/7は週末）
	got := PaymentDeadline(2024, 3, nil)
	if want := time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("PaymentDeadline(2024, 3) = %v, want %v", got, want)
	}

	// 2023年12月開始 → 翌1月は元日と成人の日（1/8）を飛ばして1/10
	got = PaymentDeadline(2023, 12, nil)
	if want := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("PaymentDeadline(2023, 12) = %v, want %v", got, want)
	}

	// 翌月が全休の場合は翌月1日
	var holidays []time.Time
	for d := 1; d <= 30; d++ {
		holidays = append(holidays, time.Date(2024, 4, d, 0, 0, 0, 0, time.UTC))
	}
	got = PaymentDeadline(2024, 3, holidays)
	if want := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("PaymentDeadline all-holiday = %v, want %v", got, want)
	}
}

func TestApplyAllowancesSingleMonth(t *testing.T) {
	contract := newContract(entity.CalculateTypeFixed160, 320000)
	contract.AllowanceOther = 20000
	pricing := &Pricing{Contract: contract, BusinessDays: 20}

	heading := &entity.BpMemberOrderHeading{}
	applyAllowances(heading, pricing, 1)

	if heading.AllowanceBase != 320000 {
		t.Errorf("AllowanceBase = %d, want 320000", heading.AllowanceBase)
	}
	if heading.AllowanceTimeMin.String() != "160" {
		t.Errorf("AllowanceTimeMin = %s, want 160", heading.AllowanceTimeMin)
	}
	if heading.AllowanceAbsenteeism != 2000 {
		t.Errorf("AllowanceAbsenteeism = %d, want 2000", heading.AllowanceAbsenteeism)
	}
	if heading.AllowanceOther != 20000 {
		t.Errorf("AllowanceOther = %d, want 20000", heading.AllowanceOther)
	}
}

func TestApplyAllowancesMultiMonth(t *testing.T) {
	// 3ヶ月分：月額コスト（基本給＋その他）×3の一括金額
	contract := newContract(entity.CalculateTypeFixed160, 320000)
	contract.AllowanceOther = 20000
	pricing := &Pricing{Contract: contract, BusinessDays: 20}

	heading := &entity.BpMemberOrderHeading{}
	applyAllowances(heading, pricing, 3)

	if heading.AllowanceBase != 1020000 {
		t.Errorf("AllowanceBase = %d, want 1020000", heading.AllowanceBase)
	}
	if !strings.Contains(heading.AllowanceBaseMemo, "340,000") || !strings.Contains(heading.AllowanceBaseMemo, "3ヶ月分") {
		t.Errorf("AllowanceBaseMemo = %q, want monthly cost and months", heading.AllowanceBaseMemo)
	}
	if !heading.AllowanceTimeMin.IsZero() {
		t.Errorf("multi-month AllowanceTimeMin = %s, want 0", heading.AllowanceTimeMin)
	}
	if heading.AllowanceAbsenteeism != 0 {
		t.Errorf("multi-month AllowanceAbsenteeism = %d, want 0", heading.AllowanceAbsenteeism)
	}
}

func TestParseYM(t *testing.T) {
	if _, _, err := parseYM("2024", "03"); err != nil {
		t.Errorf("parseYM(2024, 03) = %v, want nil", err)
	}
	if _, _, err := parseYM("2024", "13"); err == nil {
		t.Error("parseYM(2024, 13) should fail")
	}
	if _, _, err := parseYM("24", "03"); err == nil {
		t.Error("parseYM(24, 03) should fail")
	}
}
