package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/YangWanjun/ebusiness/internal/partner/entity"
	"github.com/YangWanjun/ebusiness/internal/partner/repository"
	"github.com/YangWanjun/ebusiness/internal/shared/bizerr"
	"github.com/YangWanjun/ebusiness/internal/shared/calendar"
	"github.com/YangWanjun/ebusiness/internal/shared/strutil"
)

// HolidaySource 会社休日の取得元（マスタの休日テーブル）
type HolidaySource interface {
	ListByMonth(ctx context.Context, year, month int) ([]time.Time, error)
}

// ContractService ＢＰ契約の解決と単価計算
type ContractService struct {
	contractRepo *repository.ContractRepository
	holidays     HolidaySource
}

func NewContractService(contractRepo *repository.ContractRepository, holidays HolidaySource) *ContractService {
	return &ContractService{contractRepo: contractRepo, holidays: holidays}
}

// Resolve 対象年月に有効な契約をちょうど1件解決する。
// 0件・複数件はどちらもエラー（曖昧な契約を黙って選ばない）。
func (s *ContractService) Resolve(ctx context.Context, partnerID, memberID string, year, month int) (*entity.BpContract, error) {
	lastDay := calendar.LastDayOfMonth(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
	contracts, err := s.contractRepo.ListEffective(ctx, partnerID, memberID, lastDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	switch len(contracts) {
	case 0:
		return nil, bizerr.New("%d年%02d月に有効なＢＰ契約が見つかりません。", year, month)
	case 1:
		return &contracts[0], nil
	default:
		return nil, bizerr.New("%d年%02d月に有効なＢＰ契約が複数存在します。契約期間を確認してください。", year, month)
	}
}

// ResolveByMember 要員IDだけで対象年月に有効な契約を解決する。協力会社が
// 未指定の場面（ＢＰ注文書の生成）で使う。契約の Partner も合わせて読み込む。
func (s *ContractService) ResolveByMember(ctx context.Context, memberID string, year, month int) (*entity.BpContract, error) {
	lastDay := calendar.LastDayOfMonth(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
	contracts, err := s.contractRepo.FindEffectiveByMember(ctx, memberID, lastDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	switch len(contracts) {
	case 0:
		return nil, bizerr.New("%d年%02d月に有効なＢＰ契約が見つかりません。", year, month)
	case 1:
		return &contracts[0], nil
	default:
		return nil, bizerr.New("%d年%02d月に有効なＢＰ契約が複数存在します。契約期間を確認してください。", year, month)
	}
}

// PricingFor 契約と対象年月から単価計算オブジェクトを作る。
// 営業日数は法定祝日に会社休日を加えて求める。
func (s *ContractService) PricingFor(ctx context.Context, contract *entity.BpContract, year, month int) (*Pricing, error) {
	var extra []time.Time
	if s.holidays != nil {
		var err error
		extra, err = s.holidays.ListByMonth(ctx, year, month)
		if err != nil {
			return nil, fmt.Errorf("failed to list holidays: %w", err)
		}
	}
	days := calendar.BusinessDays(year, month, nil, extra)
	return &Pricing{Contract: contract, BusinessDays: len(days)}, nil
}

// Pricing 契約1件・対象月1つ分の単価計算。時間計算種類によって
// 基準時間と超過・不足単価の導出方法が変わる。
type Pricing struct {
	Contract     *entity.BpContract
	BusinessDays int
}

// Cost 月あたりのコスト。時給契約は基本給のみ、それ以外は基本給＋その他手当。
// 複数月の注文書では月数を乗じて使う。
func (p *Pricing) Cost() int64 {
	c := p.Contract
	if c.IsHourlyPay {
		return c.AllowanceBase
	}
	return c.AllowanceBase + c.AllowanceOther
}

// TimeMin 基準時間（下限）
func (p *Pricing) TimeMin() decimal.Decimal {
	c := p.Contract
	if c.IsHourlyPay || c.IsFixedCost {
		return decimal.Zero
	}
	switch c.CalculateType {
	case entity.CalculateTypeFixed160:
		return decimal.NewFromInt(160)
	case entity.CalculateTypeBizDays8:
		return decimal.NewFromInt(int64(p.BusinessDays) * 8)
	case entity.CalculateTypeBizDays79:
		return decimal.NewFromFloat(7.9).Mul(decimal.NewFromInt(int64(p.BusinessDays)))
	case entity.CalculateTypeBizDays775:
		return decimal.NewFromFloat(7.75).Mul(decimal.NewFromInt(int64(p.BusinessDays)))
	default:
		return c.AllowanceTimeMin
	}
}

// TimeMax 基準時間（上限）。変動計算種類でも契約の設定値をそのまま使う。
func (p *Pricing) TimeMax() decimal.Decimal {
	c := p.Contract
	if c.IsHourlyPay || c.IsFixedCost {
		return decimal.Zero
	}
	return c.AllowanceTimeMax
}

// TimeMemo 基準時間の説明文。変動計算種類の場合は導出式を付ける。
func (p *Pricing) TimeMemo() string {
	c := p.Contract
	if c.IsHourlyPay || c.IsFixedCost {
		return ""
	}
	min := p.TimeMin()
	max := p.TimeMax()
	memo := fmt.Sprintf("基準時間：%s〜%sh/月", strutil.Hours(min), strutil.Hours(max))
	switch c.CalculateType {
	case entity.CalculateTypeBizDays8:
		memo += fmt.Sprintf("（%sh＝営業日数%d日×8h）", strutil.Hours(min), p.BusinessDays)
	case entity.CalculateTypeBizDays79:
		memo += fmt.Sprintf("（%sh＝営業日数%d日×7.9h）", strutil.Hours(min), p.BusinessDays)
	case entity.CalculateTypeBizDays775:
		memo += fmt.Sprintf("（%sh＝営業日数%d日×7.75h）", strutil.Hours(min), p.BusinessDays)
	}
	return memo
}

// Absenteeism 不足時間単価（絶対値）。変動計算種類では基本給÷基準時間を
// 10円未満切り捨てで導出する。
func (p *Pricing) Absenteeism() int64 {
	c := p.Contract
	if c.IsHourlyPay || c.IsFixedCost {
		return 0
	}
	switch c.CalculateType {
	case entity.CalculateTypeFixed160, entity.CalculateTypeBizDays8,
		entity.CalculateTypeBizDays79, entity.CalculateTypeBizDays775:
		min := p.TimeMin()
		if min.IsZero() {
			return 0
		}
		unit := decimal.NewFromInt(c.AllowanceBase).Div(min).Floor().IntPart()
		return roundDown10(unit)
	default:
		return c.AllowanceAbsenteeism
	}
}

// AbsenteeismMemo 不足時間単価の説明文
func (p *Pricing) AbsenteeismMemo() string {
	c := p.Contract
	if c.IsHourlyPay || c.IsFixedCost {
		return ""
	}
	unit := p.Absenteeism()
	if unit == 0 {
		return c.AllowanceAbsenteeismMemo
	}
	memo := fmt.Sprintf("不足単価：￥%s/h", strutil.Comma(unit))
	if c.IsShowFormula && p.isVariableType() {
		memo += fmt.Sprintf("（￥%s÷%sh）", strutil.Comma(c.AllowanceBase), strutil.Hours(p.TimeMin()))
	}
	return memo
}

// Overtime 超過時間単価。変動計算種類では基本給÷基準時間（上限）を
// 10円未満切り捨てで導出する。
func (p *Pricing) Overtime() int64 {
	c := p.Contract
	if c.IsHourlyPay || c.IsFixedCost {
		return 0
	}
	switch c.CalculateType {
	case entity.CalculateTypeFixed160, entity.CalculateTypeBizDays8,
		entity.CalculateTypeBizDays79, entity.CalculateTypeBizDays775:
		max := p.TimeMax()
		if max.IsZero() {
			return 0
		}
		unit := decimal.NewFromInt(c.AllowanceBase).Div(max).Floor().IntPart()
		return roundDown10(unit)
	default:
		return c.AllowanceOvertime
	}
}

// OvertimeMemo 超過時間単価の説明文
func (p *Pricing) OvertimeMemo() string {
	c := p.Contract
	if c.IsHourlyPay || c.IsFixedCost {
		return ""
	}
	unit := p.Overtime()
	if unit == 0 {
		return c.AllowanceOvertimeMemo
	}
	memo := fmt.Sprintf("超過単価：￥%s/h", strutil.Comma(unit))
	if c.IsShowFormula && p.isVariableType() {
		memo += fmt.Sprintf("（￥%s÷%sh）", strutil.Comma(c.AllowanceBase), strutil.Hours(p.TimeMax()))
	}
	return memo
}

// CalculateTypeComment 変動計算種類の固定注記
func (p *Pricing) CalculateTypeComment() string {
	switch p.Contract.CalculateType {
	case entity.CalculateTypeBizDays8, entity.CalculateTypeBizDays79, entity.CalculateTypeBizDays775:
		return "※基準時間（下限）は対象月の営業日数により算出します。"
	default:
		return ""
	}
}

func (p *Pricing) isVariableType() bool {
	switch p.Contract.CalculateType {
	case entity.CalculateTypeFixed160, entity.CalculateTypeBizDays8,
		entity.CalculateTypeBizDays79, entity.CalculateTypeBizDays775:
		return true
	default:
		return false
	}
}

// roundDown10 10円未満を切り捨てる
func roundDown10(v int64) int64 {
	return v / 10 * 10
}
