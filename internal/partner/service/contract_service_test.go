package service

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/YangWanjun/ebusiness/internal/partner/entity"
)

func newContract(calculateType string, base int64) *entity.BpContract {
	return &entity.BpContract{
		CalculateType:    calculateType,
		AllowanceBase:    base,
		AllowanceTimeMin: decimal.NewFromInt(140),
		AllowanceTimeMax: decimal.NewFromInt(180),
		IsShowFormula:    true,
	}
}

func TestPricingTimeMin(t *testing.T) {
	cases := []struct {
		calculateType string
		businessDays  int
		want          string
	}{
		{entity.CalculateTypeFixed160, 20, "160"},
		{entity.CalculateTypeBizDays8, 21, "168"},
		{entity.CalculateTypeBizDays79, 20, "158"},
		{entity.CalculateTypeBizDays775, 20, "155"},
		{entity.CalculateTypeOther, 20, "140"}, // 契約の設定値
	}
	for _, c := range cases {
		p := &Pricing{Contract: newContract(c.calculateType, 320000), BusinessDays: c.businessDays}
		if got := p.TimeMin(); got.String() != c.want {
			t.Errorf("TimeMin(type=%s, days=%d) = %s, want %s", c.calculateType, c.businessDays, got, c.want)
		}
	}
}

func TestPricingTimeMinHourlyPayIsZero(t *testing.T) {
	contract := newContract(entity.CalculateTypeFixed160, 320000)
	contract.IsHourlyPay = true
	p := &Pricing{Contract: contract, BusinessDays: 20}
	if !p.TimeMin().IsZero() {
		t.Errorf("hourly pay TimeMin = %s, want 0", p.TimeMin())
	}
	if p.TimeMemo() != "" {
		t.Errorf("hourly pay TimeMemo = %q, want empty", p.TimeMemo())
	}
	if p.Absenteeism() != 0 {
		t.Errorf("hourly pay Absenteeism = %d, want 0", p.Absenteeism())
	}
}

func TestPricingAbsenteeism(t *testing.T) {
	// 320000÷160=2000、10円単位なのでそのまま
	p := &Pricing{Contract: newContract(entity.CalculateTypeFixed160, 320000), BusinessDays: 20}
	if got := p.Absenteeism(); got != 2000 {
		t.Errorf("Absenteeism = %d, want 2000", got)
	}

	// 500000÷168=2976.19… → floor 2976 → 10円未満切り捨て 2970
	p = &Pricing{Contract: newContract(entity.CalculateTypeBizDays8, 500000), BusinessDays: 21}
	if got := p.Absenteeism(); got != 2970 {
		t.Errorf("Absenteeism = %d, want 2970", got)
	}

	// その他の計算種類は契約の設定値をそのまま使う
	contract := newContract(entity.CalculateTypeOther, 320000)
	contract.AllowanceAbsenteeism = 1500
	p = &Pricing{Contract: contract, BusinessDays: 20}
	if got := p.Absenteeism(); got != 1500 {
		t.Errorf("Absenteeism = %d, want 1500", got)
	}
}

func TestPricingOvertime(t *testing.T) {
	// 320000÷180=1777.7… → floor 1777 → 1770
	p := &Pricing{Contract: newContract(entity.CalculateTypeFixed160, 320000), BusinessDays: 20}
	if got := p.Overtime(); got != 1770 {
		t.Errorf("Overtime = %d, want 1770", got)
	}
}

func TestPricingCost(t *testing.T) {
	contract := newContract(entity.CalculateTypeFixed160, 320000)
	contract.AllowanceOther = 20000
	p := &Pricing{Contract: contract, BusinessDays: 20}
	if got := p.Cost(); got != 340000 {
		t.Errorf("Cost = %d, want 340000", got)
	}

	contract.IsHourlyPay = true
	if got := p.Cost(); got != 320000 {
		t.Errorf("hourly Cost = %d, want 320000", got)
	}
}

func TestPricingTimeMemo(t *testing.T) {
	p := &Pricing{Contract: newContract(entity.CalculateTypeBizDays8, 320000), BusinessDays: 21}
	memo := p.TimeMemo()
	if !strings.Contains(memo, "168") || !strings.Contains(memo, "180") {
		t.Errorf("TimeMemo = %q, want min/max hours", memo)
	}
	if !strings.Contains(memo, "営業日数21日×8h") {
		t.Errorf("TimeMemo = %q, want derivation formula", memo)
	}

	// 固定160時間は導出式なし
	p = &Pricing{Contract: newContract(entity.CalculateTypeFixed160, 320000), BusinessDays: 21}
	if strings.Contains(p.TimeMemo(), "営業日数") {
		t.Errorf("fixed type TimeMemo = %q, should not contain formula", p.TimeMemo())
	}
}

func TestPricingAbsenteeismMemo(t *testing.T) {
	contract := newContract(entity.CalculateTypeFixed160, 320000)
	p := &Pricing{Contract: contract, BusinessDays: 20}
	memo := p.AbsenteeismMemo()
	if !strings.Contains(memo, "2,000") {
		t.Errorf("AbsenteeismMemo = %q, want unit price", memo)
	}
	if !strings.Contains(memo, "320,000") {
		t.Errorf("AbsenteeismMemo = %q, want formula with base", memo)
	}

	contract.IsShowFormula = false
	memo = p.AbsenteeismMemo()
	if strings.Contains(memo, "÷") {
		t.Errorf("AbsenteeismMemo = %q, formula should be hidden", memo)
	}
}

func TestPricingCalculateTypeComment(t *testing.T) {
	p := &Pricing{Contract: newContract(entity.CalculateTypeBizDays8, 320000), BusinessDays: 20}
	if p.CalculateTypeComment() == "" {
		t.Error("variable type should have a comment")
	}
	p = &Pricing{Contract: newContract(entity.CalculateTypeFixed160, 320000), BusinessDays: 20}
	if p.CalculateTypeComment() != "" {
		t.Errorf("fixed type comment = %q, want empty", p.CalculateTypeComment())
	}
	p = &Pricing{Contract: newContract(entity.CalculateTypeOther, 320000), BusinessDays: 20}
	if p.CalculateTypeComment() != "" {
		t.Errorf("other type comment = %q, want empty", p.CalculateTypeComment())
	}
}
