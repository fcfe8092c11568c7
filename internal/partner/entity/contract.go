package entity

import (
	"time"

	"github.com/shopspring/decimal"

	memberentity "github.com/YangWanjun/ebusiness/internal/member/entity"
)

// 時間計算種類
const (
	CalculateTypeFixed160   = "01" // 固定160時間
	CalculateTypeBizDays8   = "02" // 営業日数 × 8時間
	CalculateTypeBizDays79  = "03" // 営業日数 × 7.9時間
	CalculateTypeBizDays775 = "04" // 営業日数 × 7.75時間
	CalculateTypeOther      = "99" // その他（契約に設定した値を使う）
)

// ContractEndMax 契約終了日の無期限を表す番兵値
var ContractEndMax = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// BpContract ＢＰ要員の支払契約。同一 (協力会社, 要員) について
// ある時点で有効な契約はちょうど1件でなければならない。
type BpContract struct {
	ID                       string          `json:"id" gorm:"primaryKey;size:32"`
	PartnerID                string          `json:"partner_id" gorm:"size:32;not null;index"`
	MemberID                 string          `json:"member_id" gorm:"size:32;not null;index"`
	ContractNo               string          `json:"contract_no" gorm:"size:20"`
	ContractDate             *time.Time      `json:"contract_date,omitempty" gorm:"type:date"`
	StartDate                time.Time       `json:"start_date" gorm:"type:date;not null"`
	EndDate                  time.Time       `json:"end_date" gorm:"type:date;not null;default:'9999-12-31'"`
	IsHourlyPay              bool            `json:"is_hourly_pay" gorm:"default:false"`
	IsFixedCost              bool            `json:"is_fixed_cost" gorm:"default:false"`
	AllowanceBase            int64           `json:"allowance_base" gorm:"default:0"` // 基本給（月額）
	AllowanceBaseMemo        string          `json:"allowance_base_memo,omitempty" gorm:"size:255"`
	AllowanceTimeMin         decimal.Decimal `json:"allowance_time_min" gorm:"type:decimal(5,2);default:160"` // 基準時間（下限）
	AllowanceTimeMax         decimal.Decimal `json:"allowance_time_max" gorm:"type:decimal(5,2);default:180"` // 基準時間（上限）
	CalculateType            string          `json:"calculate_type" gorm:"size:2;default:'99'"`
	AllowanceOvertime        int64           `json:"allowance_overtime" gorm:"default:0"` // 残業手当（時間単価）
	AllowanceOvertimeMemo    string          `json:"allowance_overtime_memo,omitempty" gorm:"size:255"`
	AllowanceAbsenteeism     int64           `json:"allowance_absenteeism" gorm:"default:0"` // 欠勤控除（時間単価）
	AllowanceAbsenteeismMemo string          `json:"allowance_absenteeism_memo,omitempty" gorm:"size:255"`
	AllowanceOther           int64           `json:"allowance_other" gorm:"default:0"` // その他手当
	AllowanceOtherMemo       string          `json:"allowance_other_memo,omitempty" gorm:"size:255"`
	IsShowFormula            bool            `json:"is_show_formula" gorm:"default:true"` // 備考に計算式を出力する
	Comment                  string          `json:"comment,omitempty" gorm:"size:255"`
	IsDeleted                bool            `json:"is_deleted" gorm:"default:false"`
	DeletedAt                *time.Time      `json:"deleted_at,omitempty"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`

	// Relations
	Partner *Partner             `json:"partner,omitempty" gorm:"foreignKey:PartnerID"`
	Member  *memberentity.Member `json:"member,omitempty" gorm:"foreignKey:MemberID"`
}

func (BpContract) TableName() string {
	return "eb_bp_contract"
}

// IsOpenEnded 契約終了日が無期限かどうか
func (c *BpContract) IsOpenEnded() bool {
	return !c.EndDate.Before(ContractEndMax)
}
